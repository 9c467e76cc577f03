package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Vineyard/internal/cli/api"
	"Vineyard/internal/cli/nav"
)

// identityServer отвечает на /api/me/ заданным статусом и телом.
func identityServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/me/" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer tok" {
			t.Fatalf("missing bearer token")
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(ts.Close)
	return ts
}

func TestNavigateIfRole_Match(t *testing.T) {
	ts := identityServer(t, http.StatusOK, `{"username":"s","role":"student"}`)
	r := nav.NewRouter("/")

	ok, err := NavigateIfRole(context.Background(), api.NewClient(ts.URL), r, "tok", "/dashboard", RoleStudent)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "/dashboard", r.Current())
}

func TestNavigateIfRole_DefaultRoleIsStudent(t *testing.T) {
	ts := identityServer(t, http.StatusOK, `{"role":"student"}`)
	r := nav.NewRouter("/")

	ok, err := NavigateIfRole(context.Background(), api.NewClient(ts.URL), r, "tok", "/dashboard", "")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestNavigateIfRole_NoNavigation(t *testing.T) {
	cases := []struct {
		name    string
		status  int
		body    string
		role    string
		wantErr bool
	}{
		{"role mismatch", http.StatusOK, `{"role":"teacher"}`, RoleStudent, false},
		{"unauthorized", http.StatusUnauthorized, `{"detail":"x"}`, RoleStudent, false},
		{"server error", http.StatusInternalServerError, ``, RoleStudent, false},
		{"malformed body", http.StatusOK, `<html>`, RoleStudent, true},
		{"missing role", http.StatusOK, `{}`, RoleStudent, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ts := identityServer(t, tc.status, tc.body)
			r := nav.NewRouter("/")
			ok, err := NavigateIfRole(context.Background(), api.NewClient(ts.URL), r, "tok", "/dashboard", tc.role)
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.False(t, ok)
			assert.Equal(t, "/", r.Current())
		})
	}
}

func TestNavigateIfRole_NetworkErrorPropagates(t *testing.T) {
	r := nav.NewRouter("/")
	ok, err := NavigateIfRole(context.Background(), api.NewClient("http://127.0.0.1:1"), r, "tok", "/dashboard", RoleStudent)
	assert.Error(t, err)
	assert.False(t, ok)
	assert.Equal(t, []string{"/"}, r.History())
}

type failingNav struct{}

func (failingNav) Navigate(string) error { return errors.New("no route") }

func TestNavigateIfRole_NavigatorError(t *testing.T) {
	ts := identityServer(t, http.StatusOK, `{"role":"head"}`)
	ok, err := NavigateIfRole(context.Background(), api.NewClient(ts.URL), failingNav{}, "tok", "/admin", RoleHead)
	assert.Error(t, err)
	assert.False(t, ok)
}

type stubVerifier map[string]bool

func (s stubVerifier) VerifyToken(_ context.Context, token string) (bool, error) {
	return s[token], nil
}

func TestVerify(t *testing.T) {
	v := stubVerifier{"abc": true}
	ok, err := Verify(context.Background(), v, "abc")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = Verify(context.Background(), v, "xyz")
	require.NoError(t, err)
	assert.False(t, ok)
}
