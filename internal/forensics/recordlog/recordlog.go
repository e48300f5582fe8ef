// Package recordlog implements a durable append-only log of newline-delimited records.
//
// Each record occupies exactly one line and is addressed by the byte offset of its
// first byte. The write cursor is kept in memory; a clean Close persists it to a
// sidecar file so the next Open only has to scan the tail written after it.
package recordlog

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

const (
	cursorSuffix = ".cursor"
	tailChunk    = 64 * 1024
)

var (
	ErrOutOfRange  = errors.New("offset out of range")
	ErrNotBoundary = errors.New("offset is not a record boundary")
	ErrClosed      = errors.New("log is closed")
)

// Config describes a log file.
type Config struct {
	// Path of the log file. Parent directories are created.
	Path string
	// Name labels locations and log lines. Defaults to the file name.
	Name string
	// SyncWrites fsyncs every append before it returns.
	SyncWrites bool
	Logger     *zap.Logger
}

type cursor struct {
	Offset  int64 `json:"offset"`
	Records int64 `json:"records"`
}

// Log is safe for one writer and many concurrent readers.
type Log struct {
	name       string
	path       string
	syncWrites bool
	logger     *zap.Logger

	mu      sync.Mutex
	file    *os.File
	closed  atomic.Bool
	size    atomic.Int64
	records atomic.Int64
}

// Open opens or creates the log and reconciles its tail.
func Open(cfg Config) (*Log, error) {
	if cfg.Path == "" {
		return nil, errors.New("log path is required")
	}
	name := cfg.Name
	if name == "" {
		name = filepath.Base(cfg.Path)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o750); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(cfg.Path, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0o640)
	if err != nil {
		return nil, fmt.Errorf("open log %s: %w", cfg.Path, err)
	}

	l := &Log{
		name:       name,
		path:       cfg.Path,
		syncWrites: cfg.SyncWrites,
		logger:     logger.With(zap.String("log", name)),
		file:       f,
	}
	if err := l.reconcile(); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("reconcile log %s: %w", name, err)
	}
	return l, nil
}

func (l *Log) reconcile() error {
	info, err := l.file.Stat()
	if err != nil {
		return err
	}
	size := info.Size()

	end, err := l.lastBoundary(size)
	if err != nil {
		return fmt.Errorf("find last record boundary: %w", err)
	}
	if end < size {
		l.logger.Warn("dropping partial trailing record", zap.Int64("size", size), zap.Int64("boundary", end))
		if err := l.file.Truncate(end); err != nil {
			return fmt.Errorf("truncate partial record: %w", err)
		}
		if err := l.file.Sync(); err != nil {
			return fmt.Errorf("sync after truncate: %w", err)
		}
	}
	l.size.Store(end)

	var from, records int64
	c, ok, err := l.loadCursor()
	if err != nil {
		l.logger.Warn("ignoring unreadable cursor", zap.Error(err))
	}
	if ok && c.Offset <= end && l.isBoundary(c.Offset) {
		from, records = c.Offset, c.Records
	} else if end > 0 {
		l.logger.Info("no usable cursor, scanning whole log", zap.Int64("size", end))
	}

	n, err := l.countRecords(from, end)
	if err != nil {
		return fmt.Errorf("count records: %w", err)
	}
	l.records.Store(records + n)

	// A cursor only describes a cleanly closed log.
	if err := os.Remove(l.cursorPath()); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove cursor: %w", err)
	}
	return nil
}

// Append writes one record and returns its offset.
func (l *Log) Append(record []byte) (int64, error) {
	offsets, err := l.AppendBatch([][]byte{record})
	if err != nil {
		return 0, err
	}
	return offsets[0], nil
}

// AppendBatch writes records with a single write and a single sync.
// Either every record is appended or none is.
func (l *Log) AppendBatch(records [][]byte) ([]int64, error) {
	if len(records) == 0 {
		return nil, nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed.Load() {
		return nil, ErrClosed
	}

	base := l.size.Load()
	offsets := make([]int64, len(records))
	var buf bytes.Buffer
	for i, rec := range records {
		if bytes.IndexByte(rec, '\n') >= 0 {
			return nil, fmt.Errorf("record %d contains a newline", i)
		}
		offsets[i] = base + int64(buf.Len())
		buf.Write(rec)
		buf.WriteByte('\n')
	}

	if _, err := l.file.Write(buf.Bytes()); err != nil {
		l.rollback(base)
		return nil, fmt.Errorf("write %s: %w", l.name, err)
	}
	if l.syncWrites {
		if err := l.file.Sync(); err != nil {
			l.rollback(base)
			return nil, fmt.Errorf("sync %s: %w", l.name, err)
		}
	}

	l.size.Store(base + int64(buf.Len()))
	l.records.Add(int64(len(records)))
	return offsets, nil
}

func (l *Log) rollback(size int64) {
	if err := l.file.Truncate(size); err != nil {
		l.logger.Error("rollback of failed append", zap.Int64("size", size), zap.Error(err))
	}
}

// Read returns the record starting at offset.
func (l *Log) Read(offset int64) ([]byte, error) {
	if l.closed.Load() {
		return nil, ErrClosed
	}
	size := l.size.Load()
	if offset < 0 || offset >= size {
		return nil, ErrOutOfRange
	}
	if !l.isBoundary(offset) {
		return nil, ErrNotBoundary
	}

	r := bufio.NewReader(io.NewSectionReader(l.file, offset, size-offset))
	line, err := r.ReadBytes('\n')
	if err != nil {
		return nil, fmt.Errorf("read %s at %d: %w", l.name, offset, err)
	}
	return line[:len(line)-1], nil
}

// Scan calls fn for every record from offset from up to the size observed when the scan starts.
func (l *Log) Scan(from int64, fn func(offset int64, record []byte) error) error {
	if l.closed.Load() {
		return ErrClosed
	}
	end := l.size.Load()
	if from < 0 || from > end {
		return ErrOutOfRange
	}
	if !l.isBoundary(from) {
		return ErrNotBoundary
	}

	r := bufio.NewReaderSize(io.NewSectionReader(l.file, from, end-from), tailChunk)
	off := from
	for off < end {
		line, err := r.ReadBytes('\n')
		if err != nil {
			return fmt.Errorf("scan %s at %d: %w", l.name, off, err)
		}
		if err := fn(off, line[:len(line)-1]); err != nil {
			return err
		}
		off += int64(len(line))
	}
	return nil
}

// TruncateTo drops every record at or after offset.
func (l *Log) TruncateTo(offset int64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed.Load() {
		return ErrClosed
	}
	size := l.size.Load()
	if offset < 0 || offset > size {
		return ErrOutOfRange
	}
	if offset == size {
		return nil
	}
	if !l.isBoundary(offset) {
		return ErrNotBoundary
	}

	dropped, err := l.countRecords(offset, size)
	if err != nil {
		return err
	}
	if err := l.file.Truncate(offset); err != nil {
		return fmt.Errorf("truncate %s: %w", l.name, err)
	}
	if err := l.file.Sync(); err != nil {
		return fmt.Errorf("sync %s: %w", l.name, err)
	}
	l.size.Store(offset)
	l.records.Add(-dropped)
	l.logger.Warn("log truncated", zap.Int64("offset", offset), zap.Int64("dropped_records", dropped))
	return nil
}

// Close syncs the file and persists the cursor.
func (l *Log) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed.Swap(true) {
		return nil
	}
	var errs []error
	if err := l.file.Sync(); err != nil {
		errs = append(errs, fmt.Errorf("sync %s: %w", l.name, err))
	}
	if err := l.file.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close %s: %w", l.name, err))
	}
	if len(errs) == 0 {
		if err := l.saveCursor(cursor{Offset: l.size.Load(), Records: l.records.Load()}); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (l *Log) Name() string { return l.name }

func (l *Log) Path() string { return l.path }

// Size is the offset the next record will be written at.
func (l *Log) Size() int64 { return l.size.Load() }

// Count is the number of records in the log.
func (l *Log) Count() int64 { return l.records.Load() }

func (l *Log) isBoundary(offset int64) bool {
	if offset == 0 {
		return true
	}
	var b [1]byte
	if _, err := l.file.ReadAt(b[:], offset-1); err != nil {
		return false
	}
	return b[0] == '\n'
}

func (l *Log) lastBoundary(size int64) (int64, error) {
	buf := make([]byte, tailChunk)
	end := size
	for end > 0 {
		start := end - tailChunk
		if start < 0 {
			start = 0
		}
		chunk := buf[:end-start]
		if _, err := l.file.ReadAt(chunk, start); err != nil && !errors.Is(err, io.EOF) {
			return 0, err
		}
		if i := bytes.LastIndexByte(chunk, '\n'); i >= 0 {
			return start + int64(i) + 1, nil
		}
		end = start
	}
	return 0, nil
}

func (l *Log) countRecords(from, to int64) (int64, error) {
	if to <= from {
		return 0, nil
	}
	r := io.NewSectionReader(l.file, from, to-from)
	buf := make([]byte, tailChunk)
	var n int64
	for {
		read, err := r.Read(buf)
		n += int64(bytes.Count(buf[:read], []byte{'\n'}))
		if errors.Is(err, io.EOF) {
			return n, nil
		}
		if err != nil {
			return 0, err
		}
	}
}

func (l *Log) cursorPath() string {
	return l.path + cursorSuffix
}

func (l *Log) loadCursor() (cursor, bool, error) {
	data, err := os.ReadFile(l.cursorPath())
	if errors.Is(err, fs.ErrNotExist) {
		return cursor{}, false, nil
	}
	if err != nil {
		return cursor{}, false, err
	}
	var c cursor
	if err := json.Unmarshal(data, &c); err != nil {
		return cursor{}, false, err
	}
	if c.Offset < 0 || c.Records < 0 {
		return cursor{}, false, fmt.Errorf("negative cursor %+v", c)
	}
	return c, true, nil
}

func (l *Log) saveCursor(c cursor) error {
	data, err := json.Marshal(c)
	if err != nil {
		return err
	}
	tmp := l.cursorPath() + ".tmp"
	if err := os.WriteFile(tmp, data, 0o640); err != nil {
		return fmt.Errorf("write cursor: %w", err)
	}
	if err := os.Rename(tmp, l.cursorPath()); err != nil {
		return fmt.Errorf("rename cursor: %w", err)
	}
	return nil
}
