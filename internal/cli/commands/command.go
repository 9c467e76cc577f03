package commands

import (
	"Vineyard/internal/config"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// ErrUsage is returned by a command when arguments are invalid and usage should be shown.
var ErrUsage = errors.New("usage")

// Command represents a CLI subcommand.
type Command interface {
	// Name — имя команды в командной строке, например "whoami".
	Name() string
	// Description — строка для help.
	Description() string
	// Usage — точная строка использования, например "goto <path> [role]".
	Usage() string
	// Run выполняет команду; args не содержат имени команды.
	Run(ctx context.Context, cfg *config.Config, args []string) error
}

// registry holds available commands by name.
var registry = map[string]Command{}

// Out — общий writer для вывода CLI. По умолчанию os.Stdout, но в тестах может переназначаться.
var Out io.Writer = os.Stdout

// RegisterCmd adds a command to the registry from the command's init().
// Registering the same name twice is a programming error.
func RegisterCmd(cmd Command) {
	if _, dup := registry[cmd.Name()]; dup {
		panic("commands: duplicate command " + cmd.Name())
	}
	registry[cmd.Name()] = cmd
}

// Get returns a command by name.
func Get(name string) (Command, bool) {
	c, ok := registry[name]
	return c, ok
}

// List returns all registered commands sorted by name.
func List() []Command {
	list := make([]Command, 0, len(registry))
	for _, c := range registry {
		list = append(list, c)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name() < list[j].Name() })
	return list
}

// FormatGlobalUsage builds a help text for all commands.
func FormatGlobalUsage() string {
	lines := []string{
		"Vineyard CLI",
		"",
		"Usage:",
		"  vineyard [--api-url URL] [--session-backend fs|sqlite|redis|memory|none] <command> [args]",
		"",
		"Commands:",
	}
	for _, c := range List() {
		lines = append(lines, fmt.Sprintf("  %-28s %s", c.Usage(), c.Description()))
	}
	return strings.Join(lines, "\n") + "\n"
}
