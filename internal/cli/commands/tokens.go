package commands

import (
	"context"
	"fmt"

	fsrepo "Vineyard/internal/cli/repo/fs"
	"Vineyard/internal/cli/session"
	"Vineyard/internal/cli/table"
	"Vineyard/internal/config"
)

type setTokensCmd struct{}

func (setTokensCmd) Name() string        { return "set-tokens" }
func (setTokensCmd) Description() string { return "Store an access/refresh token pair" }
func (setTokensCmd) Usage() string       { return "set-tokens <access> [refresh]" }

func (setTokensCmd) Run(_ context.Context, cfg *config.Config, args []string) error {
	if len(args) < 1 || len(args) > 2 || args[0] == "" {
		return ErrUsage
	}
	env, err := openSessionEnv(cfg)
	if err != nil {
		return err
	}
	defer env.Close()

	refresh := ""
	if len(args) == 2 {
		refresh = args[1]
	}
	env.store.Update(session.NewState(args[0], refresh))
	if err := env.store.Err(); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	fmt.Fprintln(Out, "Tokens saved")
	return nil
}

type sessionCmd struct{}

func (sessionCmd) Name() string        { return "session" }
func (sessionCmd) Description() string { return "Show the stored token pair" }
func (sessionCmd) Usage() string       { return "session" }

var sessionColumns = []table.Column{
	{Key: "token", Label: "Token"},
	{Key: "value", Label: "Value"},
}

func (sessionCmd) Run(_ context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	env, err := openSessionEnv(cfg)
	if err != nil {
		return err
	}
	defer env.Close()

	st := env.store.Read()
	rows := []table.Row{
		{"token": "access", "value": abbreviate(st.AccessToken())},
		{"token": "refresh", "value": abbreviate(st.RefreshToken())},
	}
	if err := table.Render(Out, sessionColumns, rows); err != nil {
		return err
	}
	// имя из последнего whoami хранит только файловый бэкенд
	if cfg.SessionBackend == config.BackendFS {
		if login, err := (fsrepo.KVStore{Dir: cfg.SessionDir}).LoadLogin(); err == nil {
			fmt.Fprintf(Out, "Last user: %s\n", login)
		}
	}
	return nil
}

type logoutCmd struct{}

func (logoutCmd) Name() string        { return "logout" }
func (logoutCmd) Description() string { return "Forget the stored tokens" }
func (logoutCmd) Usage() string       { return "logout" }

func (logoutCmd) Run(_ context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	env, err := openSessionEnv(cfg)
	if err == nil {
		defer env.Close()
		env.store.Update(session.State{})
		if err := env.store.Err(); err != nil {
			return fmt.Errorf("saving session: %w", err)
		}
		fmt.Fprintln(Out, "Logged out")
		return nil
	}
	if !isMalformed(err) {
		return err
	}
	return discardCorrupt(cfg)
}

// abbreviate скрывает середину токена при выводе.
func abbreviate(tok string) string {
	if len(tok) <= 16 {
		return tok
	}
	return tok[:8] + "..." + tok[len(tok)-4:]
}

func init() {
	RegisterCmd(setTokensCmd{})
	RegisterCmd(sessionCmd{})
	RegisterCmd(logoutCmd{})
}
