package custody

import (
	"context"
	"fmt"
	"strings"
	"time"

	"walletctl/internal/app/port"
	"walletctl/internal/domain/entity"
	"walletctl/internal/infrastructure/configloader"
	"walletctl/internal/pkg/metrics"

	jsoniter "github.com/json-iterator/go"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Client is the fasthttp implementation of port.CustodyClient. All requests
// carry the API key credentials and pass through a shared rate limiter so a
// tight polling loop cannot exhaust the service quota.
type Client struct {
	client  *fasthttp.Client
	baseURL string
	creds   *configloader.Credentials
	timeout time.Duration
	limiter *rate.Limiter
	logger  *zap.Logger
}

var _ port.CustodyClient = (*Client)(nil)

// NewClient creates a new custody API client.
func NewClient(cfg configloader.CustodyConfig, creds *configloader.Credentials, logger *zap.Logger) *Client {
	return &Client{
		client:  &fasthttp.Client{},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		creds:   creds,
		timeout: time.Duration(cfg.RequestTimeoutMillis) * time.Millisecond,
		limiter: rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.BurstLimit),
		logger:  logger.Named("CustodyClient"),
	}
}

// ListWallets fetches all wallets known to the custody service. The listing
// carries no balances; use GetWallet for an authoritative snapshot.
func (c *Client) ListWallets(ctx context.Context) ([]entity.WalletSnapshot, error) {
	body, err := c.do(ctx, "list_wallets", fasthttp.MethodGet, "/v1/wallets", nil)
	if err != nil {
		return nil, err
	}

	var list walletListPayload
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, fmt.Errorf("failed to unmarshal wallet list: %w", err)
	}

	snapshots := make([]entity.WalletSnapshot, 0, len(list.Data))
	for _, w := range list.Data {
		snapshots = append(snapshots, w.toSnapshot(nil))
	}
	c.logger.Debug("Fetched wallet list", zap.Int("count", len(snapshots)))
	return snapshots, nil
}

// GetWallet fetches one wallet together with its current balances.
func (c *Client) GetWallet(ctx context.Context, walletID string) (entity.WalletSnapshot, error) {
	body, err := c.do(ctx, "get_wallet", fasthttp.MethodGet, "/v1/wallets/"+walletID, nil)
	if err != nil {
		return entity.WalletSnapshot{}, err
	}

	var w walletPayload
	if err := json.Unmarshal(body, &w); err != nil {
		return entity.WalletSnapshot{}, fmt.Errorf("failed to unmarshal wallet %s: %w", walletID, err)
	}

	balancesBody, err := c.do(ctx, "get_balances", fasthttp.MethodGet, "/v1/wallets/"+walletID+"/balances", nil)
	if err != nil {
		return entity.WalletSnapshot{}, err
	}

	var balances balanceListPayload
	if err := json.Unmarshal(balancesBody, &balances); err != nil {
		return entity.WalletSnapshot{}, fmt.Errorf("failed to unmarshal balances for wallet %s: %w", walletID, err)
	}

	return w.toSnapshot(balances.Data), nil
}

// CreateWallet creates a wallet on the named network.
func (c *Client) CreateWallet(ctx context.Context, network string) (entity.WalletSnapshot, error) {
	payload, err := json.Marshal(createWalletRequest{NetworkID: network})
	if err != nil {
		return entity.WalletSnapshot{}, fmt.Errorf("failed to marshal create wallet request: %w", err)
	}

	body, err := c.do(ctx, "create_wallet", fasthttp.MethodPost, "/v1/wallets", payload)
	if err != nil {
		return entity.WalletSnapshot{}, err
	}

	var w walletPayload
	if err := json.Unmarshal(body, &w); err != nil {
		return entity.WalletSnapshot{}, fmt.Errorf("failed to unmarshal created wallet: %w", err)
	}
	c.logger.Info("Wallet created",
		zap.String("walletID", w.ID),
		zap.String("network", w.NetworkID),
		zap.String("address", w.DefaultAddress))
	return w.toSnapshot(nil), nil
}

// RequestFaucet asks the service to seed a test-network wallet.
func (c *Client) RequestFaucet(ctx context.Context, walletID string) error {
	_, err := c.do(ctx, "request_faucet", fasthttp.MethodPost, "/v1/wallets/"+walletID+"/faucet", nil)
	return err
}

// CreateTransfer submits a transfer for the wallet.
func (c *Client) CreateTransfer(ctx context.Context, walletID string, sub entity.TransferSubmission) (entity.TransferSnapshot, error) {
	payload, err := json.Marshal(createTransferRequest{
		Amount:      sub.Amount.String(),
		AssetID:     strings.ToLower(sub.Asset),
		Destination: sub.Destination,
		Gasless:     sub.Gasless,
	})
	if err != nil {
		return entity.TransferSnapshot{}, fmt.Errorf("failed to marshal create transfer request: %w", err)
	}

	body, err := c.do(ctx, "create_transfer", fasthttp.MethodPost, "/v1/wallets/"+walletID+"/transfers", payload)
	if err != nil {
		return entity.TransferSnapshot{}, err
	}

	var t transferPayload
	if err := json.Unmarshal(body, &t); err != nil {
		return entity.TransferSnapshot{}, fmt.Errorf("failed to unmarshal created transfer: %w", err)
	}
	c.logger.Info("Transfer created",
		zap.String("transferID", t.ID),
		zap.String("walletID", walletID),
		zap.String("status", t.Status))
	return t.toSnapshot(), nil
}

// GetTransfer fetches a fresh snapshot of an in-flight transfer.
func (c *Client) GetTransfer(ctx context.Context, walletID, transferID string) (entity.TransferSnapshot, error) {
	body, err := c.do(ctx, "get_transfer", fasthttp.MethodGet, "/v1/wallets/"+walletID+"/transfers/"+transferID, nil)
	if err != nil {
		return entity.TransferSnapshot{}, err
	}

	var t transferPayload
	if err := json.Unmarshal(body, &t); err != nil {
		return entity.TransferSnapshot{}, fmt.Errorf("failed to unmarshal transfer %s: %w", transferID, err)
	}
	return t.toSnapshot(), nil
}

// ListTransfers fetches the transfer history of a wallet.
func (c *Client) ListTransfers(ctx context.Context, walletID string) ([]entity.TransferSnapshot, error) {
	body, err := c.do(ctx, "list_transfers", fasthttp.MethodGet, "/v1/wallets/"+walletID+"/transfers", nil)
	if err != nil {
		return nil, err
	}

	var list transferListPayload
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, fmt.Errorf("failed to unmarshal transfer list for wallet %s: %w", walletID, err)
	}

	snapshots := make([]entity.TransferSnapshot, 0, len(list.Data))
	for _, t := range list.Data {
		snapshots = append(snapshots, t.toSnapshot())
	}
	return snapshots, nil
}

// do executes one request against the custody API and returns the response
// body. 404 responses are mapped to entity.NotFoundError so callers can
// classify them without inspecting status codes.
func (c *Client) do(ctx context.Context, operation, method, path string, body []byte) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter wait cancelled: %w", err)
	}

	requestURL := c.baseURL + path

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.SetRequestURI(requestURL)
	req.Header.SetMethod(method)
	req.Header.SetContentTypeBytes([]byte("application/json"))
	req.Header.Set("X-Api-Key-Name", c.creds.Name)
	req.Header.Set("Authorization", "Bearer "+c.creds.PrivateKey)
	if len(body) > 0 {
		req.SetBody(body)
	}

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	var err error
	if deadline, ok := ctx.Deadline(); ok {
		err = c.client.DoDeadline(req, resp, deadline)
	} else {
		err = c.client.DoTimeout(req, resp, c.timeout)
	}
	if err != nil {
		metrics.CustodyRequestsTotal.WithLabelValues(operation, "transport_error").Inc()
		c.logger.Error("Custody API request failed",
			zap.String("url", requestURL),
			zap.Error(err))
		return nil, fmt.Errorf("failed to execute request to %s: %w", requestURL, err)
	}

	rawBody := append([]byte(nil), resp.Body()...)

	switch status := resp.StatusCode(); {
	case status == fasthttp.StatusNotFound:
		metrics.CustodyRequestsTotal.WithLabelValues(operation, "not_found").Inc()
		return nil, &entity.NotFoundError{Kind: "custody resource", Key: path}
	case status < 200 || status >= 300:
		metrics.CustodyRequestsTotal.WithLabelValues(operation, "error").Inc()
		c.logger.Error("Custody API returned error status",
			zap.String("url", requestURL),
			zap.Int("statusCode", status),
			zap.ByteString("responseBody", rawBody))
		return nil, fmt.Errorf("custody API request to %s failed with status %d: %s", requestURL, status, string(rawBody))
	}

	metrics.CustodyRequestsTotal.WithLabelValues(operation, "ok").Inc()
	return rawBody, nil
}
