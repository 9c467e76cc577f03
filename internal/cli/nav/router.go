package nav

import (
	"errors"
	"strings"
	"sync"
)

// ErrInvalidPath — путь перехода должен начинаться с "/".
var ErrInvalidPath = errors.New("navigation path must start with /")

// Router хранит текущий маршрут клиента и историю переходов.
type Router struct {
	mu        sync.Mutex
	history   []string
	listeners []listener
	nextID    int
}

type listener struct {
	id int
	fn func(from, to string)
}

// NewRouter returns a router positioned at start ("/" when empty).
func NewRouter(start string) *Router {
	if start == "" {
		start = "/"
	}
	return &Router{history: []string{start}}
}

// Navigate pushes path onto the history and notifies listeners.
func (r *Router) Navigate(path string) error {
	if !strings.HasPrefix(path, "/") {
		return ErrInvalidPath
	}
	r.mu.Lock()
	from := r.history[len(r.history)-1]
	r.history = append(r.history, path)
	ls := make([]listener, len(r.listeners))
	copy(ls, r.listeners)
	r.mu.Unlock()

	for _, l := range ls {
		l.fn(from, path)
	}
	return nil
}

// Back returns to the previous route. It reports false at the start of history.
func (r *Router) Back() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.history) < 2 {
		return false
	}
	r.history = r.history[:len(r.history)-1]
	return true
}

// Current returns the active route.
func (r *Router) Current() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.history[len(r.history)-1]
}

// History returns a copy of all visited routes, oldest first.
func (r *Router) History() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.history))
	copy(out, r.history)
	return out
}

// OnNavigate registers fn to be called after every successful Navigate.
func (r *Router) OnNavigate(fn func(from, to string)) (remove func()) {
	r.mu.Lock()
	id := r.nextID
	r.nextID++
	r.listeners = append(r.listeners, listener{id: id, fn: fn})
	r.mu.Unlock()

	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		for i, l := range r.listeners {
			if l.id == id {
				r.listeners = append(r.listeners[:i:i], r.listeners[i+1:]...)
				return
			}
		}
	}
}
