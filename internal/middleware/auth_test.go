package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"Vineyard/internal/tokens"
)

func authProbe(t *testing.T, wantID int64, wantOK bool) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := GetUserIDFromContext(r.Context())
		if ok != wantOK || id != wantID {
			t.Fatalf("user id in context: got (%d,%v), want (%d,%v)", id, ok, wantID, wantOK)
		}
		w.WriteHeader(http.StatusOK)
	})
}

// Тест: валидный access-токен — user_id попадает в контекст
func TestWithAuth_ValidBearerSetsUserID(t *testing.T) {
	const secret = "test-secret"
	tok, err := tokens.Sign(secret, 77, tokens.TypeAccess, time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rr := httptest.NewRecorder()
	WithAuth(secret)(authProbe(t, 77, true)).ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
}

// Тест: отсутствие заголовка — user_id не устанавливается
func TestWithAuth_NoHeaderLeavesAnonymous(t *testing.T) {
	rr := httptest.NewRecorder()
	WithAuth("any")(authProbe(t, 0, false)).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
}

// Тест: невалидный токен или refresh-токен — user_id не устанавливается
func TestWithAuth_InvalidOrRefreshToken(t *testing.T) {
	wrongSecret, _ := tokens.Sign("secret-A", 5, tokens.TypeAccess, time.Minute)
	refresh, _ := tokens.Sign("secret-B", 5, tokens.TypeRefresh, time.Minute)
	for _, tok := range []string{wrongSecret, refresh, "garbage"} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		rr := httptest.NewRecorder()
		WithAuth("secret-B")(authProbe(t, 0, false)).ServeHTTP(rr, req)
		if rr.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rr.Code)
		}
	}
}

func TestBearerToken(t *testing.T) {
	cases := map[string]string{
		"Bearer abc":   "abc",
		"bearer  abc ": "abc",
		"Basic abc":    "",
		"Bearer":       "",
		"":             "",
	}
	for h, want := range cases {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if h != "" {
			req.Header.Set("Authorization", h)
		}
		if got := BearerToken(req); got != want {
			t.Fatalf("BearerToken(%q) = %q, want %q", h, got, want)
		}
	}
}
