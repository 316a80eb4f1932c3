package restapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"walletctl/internal/domain/entity"
	"walletctl/internal/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubWalletService struct {
	wallets    []entity.WalletSnapshot
	listErr    error
	inspection entity.WalletInspection
	inspectErr error
}

func (s *stubWalletService) Create(context.Context) (entity.CreateWalletResult, error) {
	panic("unexpected Create call over HTTP")
}

func (s *stubWalletService) List(context.Context) ([]entity.WalletSnapshot, error) {
	return s.wallets, s.listErr
}

func (s *stubWalletService) Inspect(context.Context, string) (entity.WalletInspection, error) {
	return s.inspection, s.inspectErr
}

func newTestRouter(svc *stubWalletService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return SetupRouter(NewWalletHandler(svc, logger.NewSlogAdapter()), zap.NewNop())
}

func TestListWalletsEndpoint(t *testing.T) {
	svc := &stubWalletService{wallets: []entity.WalletSnapshot{
		{ID: "wallet-1", DefaultAddress: "0xA", Balances: map[string]decimal.Decimal{"eth": decimal.NewFromInt(1)}},
	}}
	router := newTestRouter(svc)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/wallets", nil)
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status_message":"ok"`)
	assert.Contains(t, rec.Body.String(), `"default_address":"0xA"`)
}

func TestListWalletsEndpointUpstreamFailure(t *testing.T) {
	router := newTestRouter(&stubWalletService{listErr: errors.New("custody unreachable")})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/wallets", nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestGetWalletEndpoint(t *testing.T) {
	svc := &stubWalletService{inspection: entity.WalletInspection{
		Record:   entity.WalletRecord{Address: "0xA", Network: "base-sepolia", WalletID: "wallet-1"},
		Snapshot: entity.WalletSnapshot{ID: "wallet-1", DefaultAddress: "0xA"},
	}}
	router := newTestRouter(svc)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/wallets/0xA", nil)
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"wallet_id":"wallet-1"`)
}

func TestGetWalletEndpointNotFound(t *testing.T) {
	router := newTestRouter(&stubWalletService{
		inspectErr: &entity.NotFoundError{Kind: "wallet record", Key: "0xMissing"},
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/wallets/0xMissing", nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMetricsEndpointExposed(t *testing.T) {
	router := newTestRouter(&stubWalletService{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
