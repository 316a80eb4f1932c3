package custody

import (
	"strings"

	"walletctl/internal/domain/entity"

	"github.com/shopspring/decimal"
)

// Wire payloads for the custody service API. Amounts travel as strings and
// are parsed into decimals at this boundary.

type walletPayload struct {
	ID                 string `json:"id"`
	NetworkID          string `json:"network_id"`
	DefaultAddress     string `json:"default_address"`
	CanSign            bool   `json:"can_sign"`
	ServerSignerStatus string `json:"server_signer_status"`
}

type walletListPayload struct {
	Data []walletPayload `json:"data"`
}

type balancePayload struct {
	AssetID string `json:"asset_id"`
	Amount  string `json:"amount"`
}

type balanceListPayload struct {
	Data []balancePayload `json:"data"`
}

type transferPayload struct {
	ID              string `json:"id"`
	WalletID        string `json:"wallet_id"`
	AssetID         string `json:"asset_id"`
	Amount          string `json:"amount"`
	Destination     string `json:"destination"`
	Status          string `json:"status"`
	TransactionHash string `json:"transaction_hash,omitempty"`
	Error           string `json:"error,omitempty"`
}

type transferListPayload struct {
	Data []transferPayload `json:"data"`
}

type createWalletRequest struct {
	NetworkID string `json:"network_id"`
}

type createTransferRequest struct {
	Amount      string `json:"amount"`
	AssetID     string `json:"asset_id"`
	Destination string `json:"destination"`
	Gasless     bool   `json:"gasless"`
}

func (p walletPayload) toSnapshot(balances []balancePayload) entity.WalletSnapshot {
	snap := entity.WalletSnapshot{
		ID:                 p.ID,
		Network:            p.NetworkID,
		DefaultAddress:     p.DefaultAddress,
		CanSign:            p.CanSign,
		ServerSignerStatus: p.ServerSignerStatus,
		Balances:           make(map[string]decimal.Decimal, len(balances)),
	}
	for _, b := range balances {
		amount, err := decimal.NewFromString(b.Amount)
		if err != nil {
			// An unparseable amount is treated as absent rather than zeroing
			// out the whole snapshot.
			continue
		}
		snap.Balances[strings.ToLower(b.AssetID)] = amount
	}
	return snap
}

func (p transferPayload) toSnapshot() entity.TransferSnapshot {
	amount, err := decimal.NewFromString(p.Amount)
	if err != nil {
		amount = decimal.Zero
	}
	return entity.TransferSnapshot{
		ID:              p.ID,
		WalletID:        p.WalletID,
		Asset:           strings.ToLower(p.AssetID),
		Amount:          amount,
		Destination:     p.Destination,
		Status:          entity.ParseTransferStatus(p.Status),
		TransactionHash: p.TransactionHash,
		FailureReason:   p.Error,
	}
}
