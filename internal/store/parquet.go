package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/parquet-go/parquet-go"

	"BitcoinTracker/internal/model"
)

// ParquetStore keeps the full sample history in a single Parquet file.
// Every append reads the whole file and writes it back.
type ParquetStore struct {
	Path string
	Now  func() time.Time

	mu sync.Mutex
}

// NewParquetStore creates a store backed by the file at path.
func NewParquetStore(path string) *ParquetStore {
	return &ParquetStore{Path: path, Now: time.Now}
}

// Load returns every stored sample in file order. A missing file yields no samples.
func (s *ParquetStore) Load() ([]model.PriceSample, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *ParquetStore) load() ([]model.PriceSample, error) {
	if _, err := os.Stat(s.Path); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("stat store: %w", err)
	}
	samples, err := parquet.ReadFile[model.PriceSample](s.Path)
	if err != nil {
		return nil, fmt.Errorf("read store %s: %w", s.Path, err)
	}
	return samples, nil
}

// AppendAndPersist stamps price with the current time and the USD tag, merges it
// after the existing samples and rewrites the store. It returns the store path.
func (s *ParquetStore) AppendAndPersist(price float64) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.load()
	if err != nil {
		return "", err
	}
	sample := model.NewPriceSample(price, s.now())
	samples := append(existing, sample)
	if err := s.write(samples); err != nil {
		return "", err
	}
	return s.Path, nil
}

// write replaces the store with samples via a temp file in the same directory.
func (s *ParquetStore) write(samples []model.PriceSample) error {
	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create store dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(s.Path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp store: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := parquet.Write(tmp, samples); err != nil {
		tmp.Close()
		return fmt.Errorf("write store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp store: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.Path); err != nil {
		return fmt.Errorf("replace store: %w", err)
	}
	return nil
}

func (s *ParquetStore) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
