package fs

import (
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"Vineyard/internal/cli/repo"
)

// KVStore — файловое key-value хранилище клиента: один файл на ключ.
// Dir пустой означает <UserConfigDir>/Vineyard.
type KVStore struct {
	Dir string
}

var _ repo.KeyValueStore = KVStore{}

var keyRe = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

func (s KVStore) configDir() (string, error) {
	p := s.Dir
	if p == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return "", err
		}
		p = filepath.Join(dir, "Vineyard")
	}
	if err := os.MkdirAll(p, 0o700); err != nil {
		return "", err
	}
	return p, nil
}

func (s KVStore) keyPath(key string) (string, error) {
	if key == "" {
		return "", repo.ErrEmptyKey
	}
	if !keyRe.MatchString(key) {
		return "", errors.New("invalid key: " + key)
	}
	dir, err := s.configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, key), nil
}

// Read читает значение ключа из файла. Отсутствующий файл — не ошибка.
func (s KVStore) Read(key string) (string, bool, error) {
	p, err := s.keyPath(key)
	if err != nil {
		return "", false, err
	}
	b, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}
		return "", false, err
	}
	return string(b), true, nil
}

// Write атомарно заменяет файл ключа.
func (s KVStore) Write(key, value string) error {
	p, err := s.keyPath(key)
	if err != nil {
		return err
	}
	tmp := p + ".tmp"
	if err := os.WriteFile(tmp, []byte(value), 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, p)
}

// SaveLogin сохраняет имя пользователя последнего успешного whoami.
func (s KVStore) SaveLogin(login string) error {
	login = strings.TrimSpace(login)
	if login == "" {
		return errors.New("empty login")
	}
	return s.Write("last_login", login)
}

// LoadLogin читает сохранённое имя пользователя.
func (s KVStore) LoadLogin() (string, error) {
	v, ok, err := s.Read("last_login")
	if err != nil {
		return "", err
	}
	if !ok || v == "" {
		return "", errors.New("no stored login")
	}
	return v, nil
}
