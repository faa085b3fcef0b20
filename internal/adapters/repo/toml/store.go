package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"github.com/eventer/runsheet-cli/internal/domain"
	"github.com/eventer/runsheet-cli/internal/ports"
)

const (
	ledgerPathKey   = "ledger.path"
	ledgerFileMode  = 0o600
	ledgerDirMode   = 0o700
	configDir       = ".runsheet"
	ledgerFile      = "ledger.toml"
	tempFilePattern = ".ledger-*.toml.tmp"
)

// Store persists the session end ledger as one TOML file with instants as
// RFC 3339 strings. Load never fails on corrupt content: a file this tool
// cannot read is treated as an empty ledger so a damaged device cache can
// not take the board down.
type Store struct {
	ledgerPath string
	mu         *sync.RWMutex
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var _ ports.LedgerStore = (*Store)(nil)

func NewStore(cfg *viper.Viper) (*Store, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	cfg.SetDefault(ledgerPathKey, filepath.Join(homeDir, configDir, ledgerFile))

	ledgerPath := cfg.GetString(ledgerPathKey)
	if ledgerPath == "" {
		return nil, errors.New("ledger path is empty")
	}
	ledgerPath, err = normalizeLedgerPath(ledgerPath)
	if err != nil {
		return nil, err
	}

	return &Store{ledgerPath: ledgerPath, mu: lockForPath(ledgerPath)}, nil
}

func (s *Store) Load(ctx context.Context) ([]domain.SessionEndRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.ledgerPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read ledger file: %w", err)
	}

	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		// Corrupt local state is discarded, not propagated.
		return nil, nil
	}
	if !file.versionSupported() {
		return nil, nil
	}

	records := make([]domain.SessionEndRecord, 0, len(file.Sessions))
	for _, entry := range file.Sessions {
		if record, ok := fromSchema(entry); ok {
			records = append(records, record)
		}
	}

	return records, nil
}

// Save replaces the whole stored collection atomically.
func (s *Store) Save(ctx context.Context, records []domain.SessionEndRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	file := fileSchema{Sessions: make([]sessionSchema, 0, len(records))}
	file.applyDefaults()
	for _, record := range records {
		file.Sessions = append(file.Sessions, toSchema(record))
	}

	return s.writeSchema(file)
}

func (s *Store) writeSchema(file fileSchema) error {
	if err := os.MkdirAll(filepath.Dir(s.ledgerPath), ledgerDirMode); err != nil {
		return fmt.Errorf("create ledger directory: %w", err)
	}

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode ledger file: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(s.ledgerPath), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp ledger file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp ledger file: %w", err)
	}

	if err := tempFile.Chmod(ledgerFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp ledger file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp ledger file: %w", err)
	}

	if err := os.Rename(tempName, s.ledgerPath); err != nil {
		return fmt.Errorf("replace ledger file: %w", err)
	}

	cleanup = false

	if err := os.Chmod(s.ledgerPath, ledgerFileMode); err != nil {
		return fmt.Errorf("chmod ledger file: %w", err)
	}

	return nil
}

func normalizeLedgerPath(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve ledger path: %w", err)
	}

	return filepath.Clean(absPath), nil
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}
