package commands

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"Vineyard/internal/cli/bootstrap"
	"Vineyard/internal/cli/session"
	"Vineyard/internal/config"
)

// ErrNoAccessToken — в сессии нет access-токена.
var ErrNoAccessToken = errors.New("no access token in session: run set-tokens first")

// sessionEnv — открытая сессия клиента и всё, что нужно командам.
type sessionEnv struct {
	store   *session.Store
	logger  *zap.SugaredLogger
	cleanup func() error
}

func (e *sessionEnv) Close() {
	if err := e.cleanup(); err != nil {
		e.logger.Warnw("close session storage", "error", err)
	}
	_ = e.logger.Sync()
}

func openSessionEnv(cfg *config.Config) (*sessionEnv, error) {
	logger := bootstrap.NewLogger(cfg)
	st, _, cleanup, err := bootstrap.OpenSession(cfg, logger)
	if err != nil {
		if isMalformed(err) {
			return nil, fmt.Errorf("%w (run logout to reset it)", err)
		}
		return nil, err
	}
	return &sessionEnv{store: st, logger: logger, cleanup: cleanup}, nil
}

// accessToken возвращает токен из аргумента либо из сессии.
func accessToken(env *sessionEnv, args []string) (string, error) {
	if len(args) > 0 && args[0] != "" {
		return args[0], nil
	}
	tok := env.store.Read().AccessToken()
	if tok == "" {
		return "", ErrNoAccessToken
	}
	return tok, nil
}

func isMalformed(err error) bool {
	return errors.Is(err, session.ErrMalformedState)
}

// discardCorrupt перезаписывает испорченное состояние пустым.
func discardCorrupt(cfg *config.Config) error {
	kv, cleanup, err := bootstrap.OpenKV(cfg)
	if err != nil {
		return err
	}
	defer cleanup()
	if err := session.Discard(kv); err != nil {
		return fmt.Errorf("reset session: %w", err)
	}
	fmt.Fprintln(Out, "Corrupt session state discarded")
	return nil
}
