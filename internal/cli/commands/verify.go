package commands

import (
	"context"
	"fmt"

	"Vineyard/internal/cli/auth"
	"Vineyard/internal/cli/bootstrap"
	"Vineyard/internal/config"
)

type verifyCmd struct{}

func (verifyCmd) Name() string        { return "verify" }
func (verifyCmd) Description() string { return "Check the access token against the server" }
func (verifyCmd) Usage() string       { return "verify [token]" }

func (verifyCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) > 1 {
		return ErrUsage
	}
	// явный токен проверяется без обращения к сессии
	token := ""
	if len(args) == 1 && args[0] != "" {
		token = args[0]
	} else {
		env, err := openSessionEnv(cfg)
		if err != nil {
			return err
		}
		defer env.Close()
		if token, err = accessToken(env, nil); err != nil {
			return err
		}
	}
	ok, err := auth.Verify(ctx, bootstrap.NewClient(cfg), token)
	if err != nil {
		return fmt.Errorf("verify request: %w", err)
	}
	if ok {
		fmt.Fprintln(Out, "valid")
	} else {
		fmt.Fprintln(Out, "invalid")
	}
	return nil
}

func init() { RegisterCmd(verifyCmd{}) }
