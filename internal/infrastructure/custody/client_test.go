package custody

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"walletctl/internal/domain/entity"
	"walletctl/internal/infrastructure/configloader"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(baseURL string) *Client {
	return NewClient(
		configloader.CustodyConfig{
			BaseURL:              baseURL,
			RequestTimeoutMillis: 2000,
			RateLimit:            1000,
			BurstLimit:           1000,
		},
		&configloader.Credentials{Name: "operator-key", PrivateKey: "secret-pem"},
		zap.NewNop(),
	)
}

func TestGetWalletMapsPayloadAndBalances(t *testing.T) {
	var gotKeyName, gotAuth string
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/wallets/wallet-1", func(w http.ResponseWriter, r *http.Request) {
		gotKeyName = r.Header.Get("X-Api-Key-Name")
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{
			"id": "wallet-1",
			"network_id": "base-sepolia",
			"default_address": "0xAbC",
			"can_sign": true,
			"server_signer_status": "active_seed"
		}`))
	})
	mux.HandleFunc("/v1/wallets/wallet-1/balances", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"data": [
			{"asset_id": "ETH", "amount": "1.5"},
			{"asset_id": "usdc", "amount": "10"},
			{"asset_id": "weird", "amount": "not-a-number"}
		]}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	wallet, err := newTestClient(srv.URL).GetWallet(context.Background(), "wallet-1")

	require.NoError(t, err)
	assert.Equal(t, "operator-key", gotKeyName)
	assert.Equal(t, "Bearer secret-pem", gotAuth)
	assert.Equal(t, "wallet-1", wallet.ID)
	assert.Equal(t, "base-sepolia", wallet.Network)
	assert.Equal(t, "0xAbC", wallet.DefaultAddress)
	assert.True(t, wallet.CanSign)
	assert.Equal(t, "active_seed", wallet.ServerSignerStatus)
	assert.True(t, wallet.BalanceOf("eth").Equal(decimal.RequireFromString("1.5")), "asset keys are lowercased")
	assert.True(t, wallet.BalanceOf("usdc").Equal(decimal.RequireFromString("10")))
	assert.Len(t, wallet.Balances, 2, "unparseable amounts are dropped")
}

func TestListWallets(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/wallets", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"data": [
			{"id": "wallet-1", "network_id": "base-sepolia", "default_address": "0xA"},
			{"id": "wallet-2", "network_id": "base-sepolia", "default_address": "0xB"}
		]}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	wallets, err := newTestClient(srv.URL).ListWallets(context.Background())

	require.NoError(t, err)
	require.Len(t, wallets, 2)
	assert.Equal(t, "0xA", wallets[0].DefaultAddress)
	assert.Equal(t, "0xB", wallets[1].DefaultAddress)
}

func TestCreateWalletSendsNetwork(t *testing.T) {
	var gotMethod, gotBody string
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/wallets", func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		buf, _ := io.ReadAll(r.Body)
		gotBody = string(buf)
		w.Write([]byte(`{"id": "wallet-9", "network_id": "base-sepolia", "default_address": "0xNew"}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	wallet, err := newTestClient(srv.URL).CreateWallet(context.Background(), "base-sepolia")

	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.JSONEq(t, `{"network_id": "base-sepolia"}`, gotBody)
	assert.Equal(t, "wallet-9", wallet.ID)
}

func TestCreateTransferSendsSubmission(t *testing.T) {
	var gotBody string
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/wallets/wallet-1/transfers", func(w http.ResponseWriter, r *http.Request) {
		buf, _ := io.ReadAll(r.Body)
		gotBody = string(buf)
		w.Write([]byte(`{
			"id": "transfer-7",
			"wallet_id": "wallet-1",
			"asset_id": "usdc",
			"amount": "25",
			"destination": "0xDest",
			"status": "pending"
		}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	transfer, err := newTestClient(srv.URL).CreateTransfer(context.Background(), "wallet-1", entity.TransferSubmission{
		Amount:      decimal.RequireFromString("25"),
		Asset:       "USDC",
		Destination: "0xDest",
		Gasless:     true,
	})

	require.NoError(t, err)
	assert.JSONEq(t, `{"amount": "25", "asset_id": "usdc", "destination": "0xDest", "gasless": true}`, gotBody)
	assert.Equal(t, "transfer-7", transfer.ID)
	assert.Equal(t, entity.TransferPending, transfer.Status.State)
	assert.Equal(t, "pending", transfer.Status.Raw)
}

func TestGetTransferFailurePayload(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/wallets/wallet-1/transfers/transfer-7", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{
			"id": "transfer-7",
			"wallet_id": "wallet-1",
			"asset_id": "eth",
			"amount": "1",
			"status": "TransferStatus.FAILED",
			"error": "insufficient gas"
		}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	transfer, err := newTestClient(srv.URL).GetTransfer(context.Background(), "wallet-1", "transfer-7")

	require.NoError(t, err)
	assert.Equal(t, entity.TransferFailed, transfer.Status.State)
	assert.Equal(t, "insufficient gas", transfer.FailureReason)
}

func TestNotFoundMapsToTypedError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	_, err := newTestClient(srv.URL).GetWallet(context.Background(), "wallet-missing")

	var notFound *entity.NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestErrorStatusSurfacesBody(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/wallets", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"message": "backend exploded"}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	_, err := newTestClient(srv.URL).ListWallets(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
	assert.Contains(t, err.Error(), "backend exploded")
}
