package sqlite

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"time"

	"Vineyard/internal/cli/repo"

	_ "modernc.org/sqlite"
)

// KVStoreSQLite — key-value хранилище клиента в локальной БД SQLite.
type KVStoreSQLite struct {
	db *sql.DB
}

var _ repo.KeyValueStore = (*KVStoreSQLite)(nil)

// Open открывает (и создаёт при необходимости) файл БД по указанному пути.
// Пустой путь означает <UserConfigDir>/Vineyard/client.sqlite.
// Вторым значением возвращается путь к БД.
func Open(path string) (*KVStoreSQLite, string, error) {
	if path == "" {
		cfgDir, err := os.UserConfigDir()
		if err != nil {
			return nil, "", err
		}
		path = filepath.Join(cfgDir, "Vineyard", "client.sqlite")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, "", err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, "", err
	}
	return &KVStoreSQLite{db: db}, path, nil
}

// Close закрывает соединение с БД.
func (r *KVStoreSQLite) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

// Migrate гарантирует наличие таблицы kv.
func (r *KVStoreSQLite) Migrate() error {
	_, err := r.db.Exec(initialDDL())
	return err
}

// Read возвращает значение ключа.
func (r *KVStoreSQLite) Read(key string) (string, bool, error) {
	if key == "" {
		return "", false, repo.ErrEmptyKey
	}
	var v string
	err := r.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&v)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, err
	}
	return v, true, nil
}

// Write вставляет или заменяет значение ключа.
func (r *KVStoreSQLite) Write(key, value string) error {
	if key == "" {
		return repo.ErrEmptyKey
	}
	_, err := r.db.Exec(
		`INSERT INTO kv(key, value, updated_at) VALUES(?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().Unix(),
	)
	return err
}
