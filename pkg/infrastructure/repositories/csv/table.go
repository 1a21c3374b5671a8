package csv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/KJ21-ENG/natraj-metallic/pkg/domain/entities"
)

// DefaultIDWidth is the zero padding of allocated sequential IDs
const DefaultIDWidth = 4

// Schema describes one entity table: its file, canonical header and codec
type Schema[T any] struct {
	Name   string
	Header []string
	ID     func(T) string
	Encode func(T) []string
	Decode func(*Row) (T, error)
	// Clone deep-copies a record that holds reference fields; nil means a plain copy
	Clone func(T) T
}

// Table is the single owner of one table file. The record set is loaded once and
// then kept in memory as the source of truth; every save rewrites the whole file
// atomically (temp file + rename) and only then replaces the cached set.
type Table[T any] struct {
	store   *Store
	schema  Schema[T]
	idWidth int

	mu      sync.Mutex
	loaded  bool
	records []T
}

// NewTable registers schema with the store and returns its table handle
func NewTable[T any](store *Store, schema Schema[T]) *Table[T] {
	store.register(schema.Name)
	return &Table[T]{
		store:   store,
		schema:  schema,
		idWidth: DefaultIDWidth,
	}
}

// SetIDWidth changes the zero padding used by NextID
func (t *Table[T]) SetIDWidth(width int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if width > 0 {
		t.idWidth = width
	}
}

// Name returns the table file name
func (t *Table[T]) Name() string {
	return t.schema.Name
}

// Load returns a copy of every record in stored order. A missing file is created
// with the canonical header and read as an empty table.
func (t *Table[T]) Load() ([]T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.ensureLoaded(); err != nil {
		return nil, err
	}
	return t.snapshot(), nil
}

// Save replaces the whole table with records
func (t *Table[T]) Save(records []T) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.write(records)
}

// Mutate runs one load-mutate-save cycle under the table lock. fn receives a copy
// of the records and returns the new set; if fn fails nothing is written.
func (t *Table[T]) Mutate(fn func(records []T) ([]T, error)) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.ensureLoaded(); err != nil {
		return err
	}
	updated, err := fn(t.snapshot())
	if err != nil {
		return err
	}
	return t.write(updated)
}

// NextID returns "<prefix>-<n>" where n is one more than the highest numeric
// suffix among existing IDs of that prefix, zero padded to the table's ID width.
// An unreadable table is an error; no ID is guessed.
func (t *Table[T]) NextID(prefix string) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.ensureLoaded(); err != nil {
		return "", err
	}
	return t.Allocator(t.records, prefix)(), nil
}

// Allocator returns a generator of sequential IDs following the highest existing
// one in records. Use it inside Mutate to allocate several IDs in one cycle.
func (t *Table[T]) Allocator(records []T, prefix string) func() string {
	next := maxSuffix(records, t.schema.ID, prefix)
	width := t.idWidth
	return func() string {
		next++
		return FormatID(prefix, next, width)
	}
}

// FormatID renders "<prefix>-<n>" with n zero padded to width
func FormatID(prefix string, n int64, width int) string {
	return fmt.Sprintf("%s-%0*d", prefix, width, n)
}

func maxSuffix[T any](records []T, idOf func(T) string, prefix string) int64 {
	var max int64
	want := prefix + "-"
	for _, r := range records {
		id := idOf(r)
		if !strings.HasPrefix(id, want) {
			continue
		}
		n, err := strconv.ParseInt(id[len(want):], 10, 64)
		if err != nil || n < 0 {
			continue
		}
		if n > max {
			max = n
		}
	}
	return max
}

func (t *Table[T]) snapshot() []T {
	out := make([]T, len(t.records))
	copy(out, t.records)
	if t.schema.Clone != nil {
		for i := range out {
			out[i] = t.schema.Clone(out[i])
		}
	}
	return out
}

func (t *Table[T]) ensureLoaded() error {
	if t.loaded {
		return nil
	}
	records, err := t.read()
	if err != nil {
		return err
	}
	t.records = records
	t.loaded = true
	return nil
}

func (t *Table[T]) ioError(op string, err error) error {
	return &entities.IOError{Op: op, Table: t.schema.Name, Err: err}
}

func (t *Table[T]) ensureFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return t.ioError("stat", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return t.ioError("create data directory for", err)
	}
	header := strings.Join(t.schema.Header, ",") + "\n"
	if err := os.WriteFile(path, []byte(header), 0644); err != nil {
		return t.ioError("create", err)
	}
	t.store.logf("created %s with canonical header", t.schema.Name)
	return nil
}

func (t *Table[T]) read() ([]T, error) {
	path := t.store.Path(t.schema.Name)
	if err := t.ensureFile(path); err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, t.ioError("open", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return []T{}, nil
	}
	if err != nil {
		return nil, t.ioError("read header of", err)
	}

	index, err := t.indexHeader(header)
	if err != nil {
		return nil, t.ioError("read header of", err)
	}

	records := []T{}
	for {
		values, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, t.ioError("read", err)
		}
		line, _ := reader.FieldPos(0)
		if isBlank(values) {
			continue
		}

		row := newRow(index, values, line)
		record, err := t.schema.Decode(row)
		if err == nil {
			err = row.Err()
		}
		if err != nil {
			return nil, t.ioError("decode", fmt.Errorf("row %d: %w", line, err))
		}
		records = append(records, record)
	}
	return records, nil
}

// indexHeader maps column names to positions. Columns may appear in any order but
// every canonical column must be present.
func (t *Table[T]) indexHeader(header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, col := range header {
		index[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(col, "\ufeff")))] = i
	}
	for _, col := range t.schema.Header {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("header mismatch: missing column %q. Expected: %v, Got: %v", col, t.schema.Header, header)
		}
	}
	return index, nil
}

func isBlank(values []string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func (t *Table[T]) write(records []T) error {
	path := t.store.Path(t.schema.Name)
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return t.ioError("create data directory for", err)
	}

	tmp, err := os.CreateTemp(dir, t.schema.Name+".tmp-*")
	if err != nil {
		return t.ioError("create temp file for", err)
	}
	tmpPath := tmp.Name()
	cleanup := func() {
		tmp.Close()
		os.Remove(tmpPath)
	}

	writer := csv.NewWriter(tmp)
	if err := writer.Write(t.schema.Header); err != nil {
		cleanup()
		return t.ioError("write", err)
	}
	for i, r := range records {
		values := t.schema.Encode(r)
		if len(values) != len(t.schema.Header) {
			cleanup()
			return t.ioError("encode", fmt.Errorf("record %d: expected %d columns, got %d", i+1, len(t.schema.Header), len(values)))
		}
		if err := writer.Write(values); err != nil {
			cleanup()
			return t.ioError("write", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		cleanup()
		return t.ioError("write", err)
	}
	if err := tmp.Sync(); err != nil {
		cleanup()
		return t.ioError("sync", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return t.ioError("close", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return t.ioError("replace", err)
	}

	t.records = make([]T, len(records))
	copy(t.records, records)
	t.loaded = true
	return nil
}
