package jsonstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"

	"github.com/idilsaglam/catalogue/internal/codec"
	"github.com/idilsaglam/catalogue/internal/logging"
	"github.com/idilsaglam/catalogue/internal/model"
)

// JSON-backed storage. Single file, human-readable, portable.
// A sibling .lock file serializes access between processes.

const (
	defaultLockTimeout = 5 * time.Second
	lockRetryDelay     = 50 * time.Millisecond
)

var (
	// ErrLocked is returned when the lock cannot be taken before the timeout.
	ErrLocked = errors.New("catalogue file is locked by another process")
	// ErrWouldDrop is returned by Update when the decoder skipped entries
	// that a save would remove from the file.
	ErrWouldDrop = errors.New("saving would drop undecodable entries")
)

// Store is safe for concurrent use; goroutines sharing a Store are
// serialized in-process before taking the file lock.
type Store struct {
	mu          sync.Mutex
	path        string
	codec       *codec.Codec
	lock        *flock.Flock
	lockTimeout time.Duration
	dropInvalid bool
	logger      *slog.Logger
}

type Option func(*Store)

// WithLockTimeout bounds how long Load and Save wait for the file lock.
func WithLockTimeout(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.lockTimeout = d
		}
	}
}

// WithDropInvalid lets Update save a catalogue whose load skipped entries,
// removing those entries from the file.
func WithDropInvalid(drop bool) Option {
	return func(s *Store) { s.dropInvalid = drop }
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) { s.logger = logging.NewComponentLogger(logger, "jsonstore") }
}

func New(path string, c *codec.Codec, opts ...Option) *Store {
	s := &Store{
		path:        path,
		codec:       c,
		lock:        flock.New(path + ".lock"),
		lockTimeout: defaultLockTimeout,
		logger:      logging.NewComponentLogger(nil, "jsonstore"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Path() string { return s.path }

// Load reads the catalogue. A missing file is an empty catalogue.
func (s *Store) Load(ctx context.Context) (*model.Catalogue, error) {
	report, err := s.LoadReport(ctx)
	if err != nil {
		return nil, err
	}
	return model.NewCatalogue(report.Items...), nil
}

// LoadReport is Load with the decoder's non-fatal findings.
func (s *Store) LoadReport(ctx context.Context) (codec.Report, error) {
	if err := s.ensureDir(); err != nil {
		return codec.Report{}, err
	}
	unlock, err := s.acquire(ctx, false)
	if err != nil {
		return codec.Report{}, err
	}
	defer unlock()
	return s.decodeFile()
}

func (s *Store) decodeFile() (codec.Report, error) {
	b, err := s.readFile()
	if err != nil {
		return codec.Report{}, err
	}
	if b == nil {
		return codec.Report{Items: []model.Item{}}, nil
	}
	report, err := s.codec.DecodeReport(b)
	if err != nil {
		return codec.Report{}, fmt.Errorf("decode %s: %w", s.path, err)
	}
	s.logger.Debug("loaded catalogue",
		logging.String(logging.FieldPath, s.path),
		logging.Int("item_count", len(report.Items)))
	return report, nil
}

func (s *Store) readFile() ([]byte, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.logger.Debug("catalogue file absent; starting empty", logging.String(logging.FieldPath, s.path))
			return nil, nil
		}
		return nil, fmt.Errorf("read file: %w", err)
	}
	return b, nil
}

// Save encodes and writes the catalogue atomically via a temp file,
// replacing whatever is stored. Use Update to change the stored catalogue.
func (s *Store) Save(ctx context.Context, cat codec.Lister) error {
	b, err := s.codec.Encode(cat)
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	if err := s.ensureDir(); err != nil {
		return err
	}
	unlock, err := s.acquire(ctx, true)
	if err != nil {
		return err
	}
	defer unlock()
	return s.writeFile(b)
}

// Update runs a read-modify-write under one exclusive lock, so concurrent
// updates from other processes cannot be lost. fn sees the catalogue as
// currently stored; if fn returns an error nothing is written. Update refuses
// to write when the load skipped entries, unless WithDropInvalid is set.
func (s *Store) Update(ctx context.Context, fn func(*model.Catalogue) error) error {
	if err := s.ensureDir(); err != nil {
		return err
	}
	unlock, err := s.acquire(ctx, true)
	if err != nil {
		return err
	}
	defer unlock()

	report, err := s.decodeFile()
	if err != nil {
		return err
	}
	if n := len(report.Skipped); n > 0 {
		if !s.dropInvalid {
			return fmt.Errorf("%w: %d in %s", ErrWouldDrop, n, s.path)
		}
		s.logger.Warn("dropping undecodable entries on save",
			logging.String(logging.FieldPath, s.path),
			logging.Int("skipped", n))
	}

	cat := model.NewCatalogue(report.Items...)
	if err := fn(cat); err != nil {
		return err
	}
	b, err := s.codec.Encode(cat)
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return s.writeFile(b)
}

func (s *Store) writeFile(b []byte) error {
	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, b, 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}

	s.logger.Debug("saved catalogue",
		logging.String(logging.FieldPath, s.path),
		logging.Int("bytes", len(b)))
	return nil
}

func (s *Store) ensureDir() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}
	return nil
}

func (s *Store) acquire(ctx context.Context, exclusive bool) (func(), error) {
	s.mu.Lock()
	ctx, cancel := context.WithTimeout(ctx, s.lockTimeout)
	defer cancel()

	var (
		locked bool
		err    error
	)
	if exclusive {
		locked, err = s.lock.TryLockContext(ctx, lockRetryDelay)
	} else {
		locked, err = s.lock.TryRLockContext(ctx, lockRetryDelay)
	}
	if err != nil && !errors.Is(err, context.DeadlineExceeded) {
		s.mu.Unlock()
		return nil, fmt.Errorf("lock %s: %w", s.lock.Path(), err)
	}
	if !locked {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", ErrLocked, s.lock.Path())
	}
	return func() {
		defer s.mu.Unlock()
		if err := s.lock.Unlock(); err != nil {
			s.logger.Warn("failed to release catalogue lock",
				logging.String(logging.FieldPath, s.lock.Path()),
				logging.Error(err))
		}
	}, nil
}
