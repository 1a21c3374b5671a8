package csv

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/KJ21-ENG/natraj-metallic/pkg/domain/entities"
)

// LogFunc receives diagnostic messages from the store
type LogFunc func(format string, args ...any)

// Store owns a data directory of header-first table files. Each file is
// accessed through exactly one Table, which serializes its writers.
type Store struct {
	dataDir string
	logf    LogFunc

	mu     sync.Mutex
	tables map[string]struct{}
}

// NewStore creates a store rooted at dataDir. The directory is created lazily on first load.
func NewStore(dataDir string, logf LogFunc) *Store {
	if logf == nil {
		logf = func(string, ...any) {}
	}
	return &Store{
		dataDir: dataDir,
		logf:    logf,
		tables:  make(map[string]struct{}),
	}
}

// DataDir returns the directory holding the table files
func (s *Store) DataDir() string {
	return s.dataDir
}

// Path returns the file path of a table
func (s *Store) Path(table string) string {
	return filepath.Join(s.dataDir, table)
}

func (s *Store) register(table string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tables[table] = struct{}{}
}

// Tables returns the names of every registered table, sorted
func (s *Store) Tables() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	names := make([]string, 0, len(s.tables))
	for name := range s.tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Backup copies every registered table file that exists into
// <dataDir>/backups/<YYYY-MM-DD>. Failures are logged and returned together;
// one bad file does not stop the others from being copied.
func (s *Store) Backup(now time.Time) (string, error) {
	backupDir := filepath.Join(s.dataDir, "backups", now.Format(entities.DateLayout))
	if err := os.MkdirAll(backupDir, 0755); err != nil {
		s.logf("backup: create %s: %v", backupDir, err)
		return backupDir, fmt.Errorf("failed to create backup directory: %w", err)
	}

	var errs []error
	copied := 0
	for _, table := range s.Tables() {
		src := s.Path(table)
		if _, err := os.Stat(src); os.IsNotExist(err) {
			continue
		}
		if err := copyFile(src, filepath.Join(backupDir, table)); err != nil {
			s.logf("backup: copy %s: %v", table, err)
			errs = append(errs, fmt.Errorf("backup %s: %w", table, err))
			continue
		}
		copied++
	}

	s.logf("backup: copied %d table(s) to %s", copied, backupDir)
	return backupDir, errors.Join(errs...)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
