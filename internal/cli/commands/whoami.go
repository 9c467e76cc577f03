package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"Vineyard/internal/cli/api"
	"Vineyard/internal/cli/auth"
	"Vineyard/internal/cli/bootstrap"
	"Vineyard/internal/cli/nav"
	fsrepo "Vineyard/internal/cli/repo/fs"
	"Vineyard/internal/cli/table"
	"Vineyard/internal/config"
)

type whoamiCmd struct{}

func (whoamiCmd) Name() string        { return "whoami" }
func (whoamiCmd) Description() string { return "Show the user behind the stored access token" }
func (whoamiCmd) Usage() string       { return "whoami" }

var identityColumns = []table.Column{
	{Key: "username", Label: "Username"},
	{Key: "role", Label: "Role"},
}

func (whoamiCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	env, err := openSessionEnv(cfg)
	if err != nil {
		return err
	}
	defer env.Close()

	token, err := accessToken(env, nil)
	if err != nil {
		return err
	}
	id, err := bootstrap.NewClient(cfg).Me(ctx, token)
	if err != nil {
		var se *api.StatusError
		if errors.As(err, &se) && se.Code == http.StatusUnauthorized {
			return errors.New("access token rejected by server")
		}
		return err
	}
	// последний пользователь запоминается только файловым хранилищем
	if cfg.SessionBackend == config.BackendFS {
		if err := (fsrepo.KVStore{Dir: cfg.SessionDir}).SaveLogin(id.Username); err != nil {
			env.logger.Warnw("save last login", "error", err)
		}
	}
	return table.Render(Out, identityColumns, []table.Row{{"username": id.Username, "role": id.Role}})
}

type gotoCmd struct{}

func (gotoCmd) Name() string { return "goto" }
func (gotoCmd) Description() string {
	return "Navigate to a path if the current user has the role (default student)"
}
func (gotoCmd) Usage() string { return "goto <path> [role]" }

func (gotoCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return ErrUsage
	}
	target := args[0]
	role := auth.RoleStudent
	if len(args) == 2 {
		role = args[1]
	}
	env, err := openSessionEnv(cfg)
	if err != nil {
		return err
	}
	defer env.Close()

	token, err := accessToken(env, nil)
	if err != nil {
		return err
	}

	router := nav.NewRouter("/")
	remove := router.OnNavigate(func(from, to string) {
		env.logger.Debugw("navigate", "from", from, "to", to)
		fmt.Fprintf(Out, "Navigated to %s\n", to)
	})
	defer remove()

	ok, err := auth.NavigateIfRole(ctx, bootstrap.NewClient(cfg), router, token, target, role)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintf(Out, "Staying at %s\n", router.Current())
	}
	return nil
}

func init() {
	RegisterCmd(whoamiCmd{})
	RegisterCmd(gotoCmd{})
}
