package handlers_test

import (
	"Vineyard/internal/config"
	"Vineyard/internal/handlers"
	"Vineyard/internal/model"
	"Vineyard/internal/repo"
	"Vineyard/internal/service"
	"Vineyard/internal/tokens"
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "test-secret"

// Minimal mocks
type hMockUserRepo struct{ mock.Mock }

func (m *hMockUserRepo) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	args := m.Called(ctx, user)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *hMockUserRepo) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	args := m.Called(ctx, id)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *hMockUserRepo) ExistsBy(ctx context.Context, column, value string) (bool, error) {
	args := m.Called(ctx, column, value)
	return args.Bool(0), args.Error(1)
}

var _ repo.UserRepository = (*hMockUserRepo)(nil)

// --- Helpers ---
func newHandlersTestRouter(t *testing.T) (*handlers.Handler, *hMockUserRepo) {
	t.Helper()
	cfg := &config.Config{AuthSecret: testSecret}
	ur := &hMockUserRepo{}
	h := handlers.NewHandler(service.NewUserService(ur), zap.NewNop().Sugar(), cfg, prometheus.NewRegistry())
	return h, ur
}

func signed(t *testing.T, userID int64, typ string) string {
	t.Helper()
	tok, err := tokens.Sign(testSecret, userID, typ, time.Minute)
	require.NoError(t, err)
	return tok
}

func addBearer(req *http.Request, token string) {
	req.Header.Set("Authorization", "Bearer "+token)
}
