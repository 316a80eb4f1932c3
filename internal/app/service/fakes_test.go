package service

import (
	"context"
	"sync"

	"walletctl/internal/domain/entity"
)

// fakeCustody is a scripted port.CustodyClient. Transfer polling consumes
// pollStatuses one status per GetTransfer call and sticks at the last entry.
type fakeCustody struct {
	mu sync.Mutex

	listWallets []entity.WalletSnapshot
	listErr     error

	walletsByID map[string]entity.WalletSnapshot

	createdWallet   entity.WalletSnapshot
	createWalletErr error
	createdNetworks []string

	faucetErr   error
	faucetCalls int

	createTransferErr error
	submissions       []entity.TransferSubmission
	initialStatus     string

	pollStatuses []string
	pollCalls    int

	history    []entity.TransferSnapshot
	historyErr error
}

func (f *fakeCustody) ListWallets(context.Context) ([]entity.WalletSnapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listWallets, f.listErr
}

func (f *fakeCustody) GetWallet(_ context.Context, walletID string) (entity.WalletSnapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if w, ok := f.walletsByID[walletID]; ok {
		return w, nil
	}
	return entity.WalletSnapshot{}, &entity.NotFoundError{Kind: "wallet", Key: walletID}
}

func (f *fakeCustody) CreateWallet(_ context.Context, network string) (entity.WalletSnapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createdNetworks = append(f.createdNetworks, network)
	if f.createWalletErr != nil {
		return entity.WalletSnapshot{}, f.createWalletErr
	}
	return f.createdWallet, nil
}

func (f *fakeCustody) RequestFaucet(context.Context, string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.faucetCalls++
	return f.faucetErr
}

func (f *fakeCustody) CreateTransfer(_ context.Context, walletID string, sub entity.TransferSubmission) (entity.TransferSnapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createTransferErr != nil {
		return entity.TransferSnapshot{}, f.createTransferErr
	}
	f.submissions = append(f.submissions, sub)
	status := f.initialStatus
	if status == "" {
		status = "pending"
	}
	return entity.TransferSnapshot{
		ID:          "transfer-1",
		WalletID:    walletID,
		Asset:       sub.Asset,
		Amount:      sub.Amount,
		Destination: sub.Destination,
		Status:      entity.ParseTransferStatus(status),
	}, nil
}

func (f *fakeCustody) GetTransfer(_ context.Context, walletID, transferID string) (entity.TransferSnapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pollCalls++
	idx := f.pollCalls - 1
	if idx >= len(f.pollStatuses) {
		idx = len(f.pollStatuses) - 1
	}
	status := "pending"
	if idx >= 0 {
		status = f.pollStatuses[idx]
	}
	snap := entity.TransferSnapshot{
		ID:       transferID,
		WalletID: walletID,
		Status:   entity.ParseTransferStatus(status),
	}
	if snap.Status.State == entity.TransferComplete {
		snap.TransactionHash = "0xhash"
	}
	if snap.Status.State == entity.TransferFailed {
		snap.FailureReason = "out of gas"
	}
	return snap, nil
}

func (f *fakeCustody) ListTransfers(context.Context, string) ([]entity.TransferSnapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.history, f.historyErr
}

func (f *fakeCustody) transferCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.submissions)
}

func (f *fakeCustody) pollCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pollCalls
}

// fakeDirectory is a scripted port.WalletDirectory. Refresh consumes
// snapshots one per call and sticks at the last entry.
type fakeDirectory struct {
	mu sync.Mutex

	resolved   entity.WalletSnapshot
	resolveErr error

	snapshots    []entity.WalletSnapshot
	refreshCalls int
}

func (d *fakeDirectory) ResolveByAddress(context.Context, string) (entity.WalletSnapshot, error) {
	if d.resolveErr != nil {
		return entity.WalletSnapshot{}, d.resolveErr
	}
	return d.resolved, nil
}

func (d *fakeDirectory) Refresh(context.Context, string) (entity.WalletSnapshot, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.refreshCalls++
	idx := d.refreshCalls - 1
	if idx >= len(d.snapshots) {
		idx = len(d.snapshots) - 1
	}
	if idx < 0 {
		return d.resolved, nil
	}
	return d.snapshots[idx], nil
}

// fakeRecords is an in-memory port.RecordStore.
type fakeRecords struct {
	mu      sync.Mutex
	records map[string]entity.WalletRecord
	saveErr error
}

func newFakeRecords() *fakeRecords {
	return &fakeRecords{records: make(map[string]entity.WalletRecord)}
}

func (r *fakeRecords) Save(record entity.WalletRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return r.saveErr
	}
	r.records[record.Address] = record
	return nil
}

func (r *fakeRecords) Load(address string) (entity.WalletRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if record, ok := r.records[address]; ok {
		return record, nil
	}
	return entity.WalletRecord{}, &entity.NotFoundError{Kind: "wallet record", Key: address}
}

// fakeNetworks is an in-memory port.NetworkDefinitionProvider.
type fakeNetworks struct {
	defs map[string]entity.NetworkDefinition
}

func (n *fakeNetworks) GetAllNetworkDefinitions() []entity.NetworkDefinition {
	defs := make([]entity.NetworkDefinition, 0, len(n.defs))
	for _, d := range n.defs {
		defs = append(defs, d)
	}
	return defs
}

func (n *fakeNetworks) GetNetworkDefinitionByName(identifier string) (entity.NetworkDefinition, bool) {
	d, ok := n.defs[identifier]
	return d, ok
}

// confirmerFunc adapts a function to port.Confirmer.
type confirmerFunc func(req entity.TransferRequest, gasless bool) bool

func (f confirmerFunc) Confirm(req entity.TransferRequest, gasless bool) bool {
	return f(req, gasless)
}

func approveAll() confirmerFunc {
	return func(entity.TransferRequest, bool) bool { return true }
}

func declineAll() confirmerFunc {
	return func(entity.TransferRequest, bool) bool { return false }
}
