package recordstore

import (
	"fmt"
	"os"
	"path/filepath"

	"walletctl/internal/app/port"
	"walletctl/internal/domain/entity"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// FileRecordStore implements port.RecordStore with one JSON file per wallet
// address under the configured storage directory. Records are written on
// wallet creation and never deleted by the tool.
type FileRecordStore struct {
	dir    string
	logger port.Logger
}

var _ port.RecordStore = (*FileRecordStore)(nil)

// NewFileRecordStore creates the store, making sure the storage directory
// exists.
func NewFileRecordStore(dir string, logger port.Logger) (*FileRecordStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create wallet storage directory %s: %w", dir, err)
	}
	return &FileRecordStore{dir: dir, logger: logger}, nil
}

// Save writes the record keyed by address, silently overwriting any existing
// record. The write goes through a temp file and rename so a crash never
// leaves a half-written record behind.
func (s *FileRecordStore) Save(record entity.WalletRecord) error {
	data, err := json.MarshalIndent(record, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to marshal wallet record for %s: %w", record.Address, err)
	}

	target := s.pathFor(record.Address)
	tmp, err := os.CreateTemp(s.dir, "record-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file in %s: %w", s.dir, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write wallet record for %s: %w", record.Address, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp record file for %s: %w", record.Address, err)
	}
	if err := os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to move wallet record into place for %s: %w", record.Address, err)
	}

	s.logger.Info("Wallet record saved", "address", record.Address, "path", target)
	return nil
}

// Load fetches the record for an address, failing with entity.NotFoundError
// when no record file exists.
func (s *FileRecordStore) Load(address string) (entity.WalletRecord, error) {
	data, err := os.ReadFile(s.pathFor(address))
	if err != nil {
		if os.IsNotExist(err) {
			return entity.WalletRecord{}, &entity.NotFoundError{Kind: "wallet record", Key: address}
		}
		return entity.WalletRecord{}, fmt.Errorf("failed to read wallet record for %s: %w", address, err)
	}

	var record entity.WalletRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return entity.WalletRecord{}, fmt.Errorf("failed to unmarshal wallet record for %s: %w", address, err)
	}
	return record, nil
}

func (s *FileRecordStore) pathFor(address string) string {
	return filepath.Join(s.dir, address+".json")
}
