// Package session хранит пару access/refresh токенов клиента и зеркалирует
// каждое её изменение в постоянное key-value хранилище.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"Vineyard/internal/cli/repo"
)

// StorageKey — ключ, под которым состояние лежит в хранилище.
const StorageKey = "auth"

// ErrMalformedState означает, что сохранённое значение не является JSON состояния.
var ErrMalformedState = errors.New("malformed persisted session state")

// State — пара токенов. Оба поля независимо могут отсутствовать (nil).
type State struct {
	Access  *string `json:"access"`
	Refresh *string `json:"refresh"`
}

// NewState builds a State; empty strings become absent tokens.
func NewState(access, refresh string) State {
	var s State
	if access != "" {
		s.Access = &access
	}
	if refresh != "" {
		s.Refresh = &refresh
	}
	return s
}

// AccessToken returns the access token or "" when absent.
func (s State) AccessToken() string {
	if s.Access == nil {
		return ""
	}
	return *s.Access
}

// RefreshToken returns the refresh token or "" when absent.
func (s State) RefreshToken() string {
	if s.Refresh == nil {
		return ""
	}
	return *s.Refresh
}

// Equal compares token values, not pointers.
func (s State) Equal(o State) bool {
	return eqPtr(s.Access, o.Access) && eqPtr(s.Refresh, o.Refresh)
}

func eqPtr(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// clone отвязывает состояние от указателей вызывающего кода.
func (s State) clone() State {
	var c State
	if s.Access != nil {
		v := *s.Access
		c.Access = &v
	}
	if s.Refresh != nil {
		v := *s.Refresh
		c.Refresh = &v
	}
	return c
}

// Observer получает новое состояние.
type Observer func(State)

type subscriber struct {
	id int
	fn Observer
}

// Store — наблюдаемый контейнер State.
//
// Уведомления доставляются синхронно внутри Update в порядке подписки.
// Update и Subscribe сериализованы между собой; наблюдатель не должен
// вызывать Update или Subscribe из уведомления.
type Store struct {
	updateMu sync.Mutex

	mu      sync.RWMutex
	value   State
	subs    []subscriber
	nextID  int
	lastErr error

	kv     repo.KeyValueStore
	logger *zap.SugaredLogger
}

// Option настраивает Store.
type Option func(*Store)

// WithLogger задаёт логгер для ошибок записи в хранилище.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// Open reads the persisted state from kv and returns a store that writes every
// new state back under StorageKey. A nil or unavailable kv yields an empty
// state and is never touched.
func Open(kv repo.KeyValueStore, opts ...Option) (*Store, error) {
	s := &Store{kv: kv, logger: zap.NewNop().Sugar()}
	for _, o := range opts {
		o(s)
	}

	if repo.IsAvailable(kv) {
		raw, ok, err := kv.Read(StorageKey)
		if err != nil {
			return nil, fmt.Errorf("read session: %w", err)
		}
		if ok && raw != "" {
			st, err := decode(raw)
			if err != nil {
				return nil, err
			}
			s.value = st
		}
	}

	// встроенный наблюдатель: всегда первый, сразу пишет загруженное значение
	s.Subscribe(s.persist)
	return s, nil
}

// Discard overwrites a persisted value with the empty state without parsing it.
func Discard(kv repo.KeyValueStore) error {
	if !repo.IsAvailable(kv) {
		return nil
	}
	b, err := json.Marshal(State{})
	if err != nil {
		return err
	}
	return kv.Write(StorageKey, string(b))
}

func decode(raw string) (State, error) {
	var st State
	if err := json.Unmarshal([]byte(raw), &st); err != nil {
		return State{}, fmt.Errorf("%w: %v", ErrMalformedState, err)
	}
	return st, nil
}

// Read returns the current state.
func (s *Store) Read() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value.clone()
}

// Subscribe calls fn with the current state and then after every Update.
// The returned function stops notifications; calling it twice is harmless.
func (s *Store) Subscribe(fn Observer) (unsubscribe func()) {
	// первое значение не должно обогнать уведомление параллельного Update
	s.updateMu.Lock()
	defer s.updateMu.Unlock()

	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs = append(s.subs, subscriber{id: id, fn: fn})
	cur := s.value.clone()
	s.mu.Unlock()

	fn(cur)

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			for i, sub := range s.subs {
				if sub.id == id {
					s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
					return
				}
			}
		})
	}
}

// Update replaces the whole state and notifies all subscribers in order.
// When it returns the new state has been handed to the persister.
func (s *Store) Update(next State) {
	s.updateMu.Lock()
	defer s.updateMu.Unlock()

	s.mu.Lock()
	s.value = next.clone()
	subs := make([]subscriber, len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	for _, sub := range subs {
		sub.fn(next.clone())
	}
}

// Err returns the error of the most recent persist attempt, nil on success.
func (s *Store) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

func (s *Store) persist(st State) {
	if !repo.IsAvailable(s.kv) {
		return
	}
	var err error
	b, mErr := json.Marshal(st)
	if mErr != nil {
		err = mErr
	} else {
		err = s.kv.Write(StorageKey, string(b))
	}
	if err != nil {
		s.logger.Warnw("session: persist failed", "key", StorageKey, "error", err)
	}
	s.mu.Lock()
	s.lastErr = err
	s.mu.Unlock()
}
