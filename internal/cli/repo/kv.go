package repo

import "errors"

// ErrEmptyKey возвращается хранилищами при попытке обратиться к пустому ключу.
var ErrEmptyKey = errors.New("empty key")

// KeyValueStore описывает постоянное key-value хранилище клиента.
// Read возвращает ok=false, если ключ отсутствует.
type KeyValueStore interface {
	Read(key string) (value string, ok bool, err error)
	Write(key, value string) error
}

// Availability is implemented by stores that may be backed by nothing.
type Availability interface {
	Available() bool
}

// IsAvailable reports whether kv is backed by real storage.
func IsAvailable(kv KeyValueStore) bool {
	if kv == nil {
		return false
	}
	if a, ok := kv.(Availability); ok {
		return a.Available()
	}
	return true
}

type unavailable struct{}

// Unavailable is the store used when the process has no persistent storage.
// It never touches anything: reads report absent, writes are dropped.
var Unavailable KeyValueStore = unavailable{}

func (unavailable) Read(string) (string, bool, error) { return "", false, nil }
func (unavailable) Write(string, string) error        { return nil }
func (unavailable) Available() bool                   { return false }
