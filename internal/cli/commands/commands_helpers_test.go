package commands

import (
	"bytes"
	"testing"

	"Vineyard/internal/config"
)

// testConfig возвращает конфиг клиента с файловым хранилищем сессии в temp.
func testConfig(t *testing.T, serverURL string) *config.Config {
	t.Helper()
	return &config.Config{
		ServerURL:      serverURL,
		SessionBackend: config.BackendFS,
		SessionDir:     t.TempDir(),
		LogLevel:       "error",
	}
}

// перехват вывода на время теста
func withStdoutCapture(t *testing.T, fn func()) string {
	t.Helper()
	old := Out
	var buf bytes.Buffer
	Out = &buf
	defer func() { Out = old }()
	fn()
	return buf.String()
}

// registerForTest регистрирует команду на время теста.
func registerForTest(t *testing.T, c Command) {
	t.Helper()
	RegisterCmd(c)
	t.Cleanup(func() { delete(registry, c.Name()) })
}
