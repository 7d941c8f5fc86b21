// Package store implements the persistent address database: a fixed-size table of address
// fingerprints behind a small checksummed header.
package store

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/RoaringBitmap/roaring"
	"github.com/btcsuite/btcd/wire"
	"github.com/dustin/go-humanize"
	"github.com/gofrs/flock"
	"github.com/goodnatureofminers/addressdb/internal/addressdb/model"
	"github.com/goodnatureofminers/addressdb/internal/clock"
	"github.com/goodnatureofminers/addressdb/pkg/safe"
	"github.com/pbnjay/memory"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

const pageSize = 64 << 10

// ErrReadOnly is returned by writes to a database opened with model.ModeReadOnly.
var ErrReadOnly = errors.New("address database is open read-only")

type (
	Metrics interface {
		ObserveCheckpoint(pages int, err error, started time.Time)
		ObserveEntries(count, limit uint64)
	}
)

// Options describe the database to open or create.
type Options struct {
	Path              string
	Mode              model.Mode
	Network           wire.BitcoinNet
	DBLength          uint8
	FalsePositiveRate float64
	MaxLoad           float64
	Window            model.DateWindow
	FirstBlockFile    uint32
	// MemoryLimit caps the in-memory slot table. Zero means physical memory; when that is
	// unknown the check is skipped.
	MemoryLimit uint64
	Clock       clock.Clock
	Metrics     Metrics
}

// Stats summarizes the fill state of a database.
type Stats struct {
	Count      uint64
	Limit      uint64
	Capacity   uint64
	EntryWidth uint8
	Load       float64
	// FalsePositiveBound is the documented false-positive bound at the current load.
	FalsePositiveBound float64
}

// DB is an open address database. It is not safe for concurrent use; a single goroutine
// owns it for the whole run.
type DB struct {
	path     string
	file     *os.File
	lock     *flock.Flock
	readOnly bool
	header   Header
	table    *table
	dirty    *roaring.Bitmap
	limit    uint64
	metrics  Metrics
	logger   *zap.Logger
}

// Open locks and opens the database described by opts. Writers take an exclusive lock;
// model.ModeReadOnly takes a shared one so lookups can run side by side.
func Open(opts Options, logger *zap.Logger) (*DB, error) {
	logger = logger.Named("address_db").With(zap.String("path", opts.Path))

	readOnly := opts.Mode == model.ModeReadOnly
	lock := flock.New(opts.Path + ".lock")
	tryLock := lock.TryLock
	if readOnly {
		tryLock = lock.TryRLock
	}
	locked, err := tryLock()
	if err != nil {
		return nil, &model.IOError{Op: "lock", Path: lock.Path(), Err: err}
	}
	if !locked {
		return nil, fmt.Errorf("%w: %s", model.ErrDatabaseLocked, opts.Path)
	}

	db := &DB{
		path:     opts.Path,
		lock:     lock,
		readOnly: readOnly,
		dirty:    roaring.New(),
		metrics:  opts.Metrics,
		logger:   logger,
	}
	if db.metrics == nil {
		db.metrics = nopMetrics{}
	}

	switch opts.Mode {
	case model.ModeCreate, model.ModeOverwrite:
		err = db.create(opts)
	case model.ModeUpdate, model.ModeReadOnly:
		err = db.load(opts)
	default:
		err = fmt.Errorf("unknown mode %s", opts.Mode)
	}
	if err != nil {
		return nil, multierr.Append(err, db.release())
	}

	db.limit = db.header.Limit()
	db.metrics.ObserveEntries(db.header.Count, db.limit)
	logger.Info("address database open",
		zap.Stringer("mode", opts.Mode),
		zap.Uint8("dblength", db.header.DBLength),
		zap.Uint8("entry_width", db.header.EntryWidth),
		zap.Uint64("entries", db.header.Count),
		zap.Uint64("limit", db.limit),
		zap.String("table_size", humanize.IBytes(db.header.TableSize())),
	)
	return db, nil
}

// create checks every precondition before touching the file system. Once the file is open a
// failure removes a newly created file, or is reported as ErrDatabaseTruncated when an
// existing one was overwritten.
func (db *DB) create(opts Options) (err error) {
	width, err := EntryWidthFor(opts.FalsePositiveRate, opts.MaxLoad)
	if err != nil {
		return err
	}
	db.header = Header{
		Version:    formatVersion,
		Network:    opts.Network,
		DBLength:   opts.DBLength,
		EntryWidth: width,
		MaxLoad:    float64(loadToPermille(opts.MaxLoad)) / 1000,
		Created:    clock.OrSystem(opts.Clock).Now(),
		State:      StateClean,
		Watermark:  model.Watermark{FileIndex: opts.FirstBlockFile},
		Window:     opts.Window,

		FirstBlockFile: opts.FirstBlockFile,
	}
	if err := db.header.validate(); err != nil {
		return err
	}

	size := db.header.TableSize()
	n, err := safe.Int(size)
	if err != nil {
		return fmt.Errorf("slot table too large: %w", err)
	}
	if err := checkMemory(opts.Path, size, opts.MemoryLimit); err != nil {
		return err
	}
	slots := make([]byte, n)

	flags := os.O_RDWR | os.O_CREATE | os.O_EXCL
	if opts.Mode == model.ModeOverwrite {
		flags = os.O_RDWR | os.O_CREATE | os.O_TRUNC
	}
	f, err := os.OpenFile(opts.Path, flags, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("%w: %s (use --update or --force)", model.ErrDatabaseExists, opts.Path)
		}
		return &model.IOError{Op: "create", Path: opts.Path, Err: err}
	}
	db.file = f
	defer func() {
		if err == nil {
			return
		}
		if opts.Mode == model.ModeOverwrite {
			err = fmt.Errorf("%w: %w", model.ErrDatabaseTruncated, err)
			return
		}
		err = multierr.Append(err, f.Close())
		db.file = nil
		if rerr := os.Remove(opts.Path); rerr != nil && !errors.Is(rerr, fs.ErrNotExist) {
			err = multierr.Append(err, rerr)
		}
	}()

	db.table = newTable(slots, db.header.DBLength, db.header.EntryWidth)
	if err := f.Truncate(int64(HeaderSize + size)); err != nil {
		return &model.IOError{Op: "truncate", Path: opts.Path, Err: err}
	}
	return db.writeHeader()
}

func (db *DB) load(opts Options) error {
	flag := os.O_RDWR
	if db.readOnly {
		flag = os.O_RDONLY
	}
	f, err := os.OpenFile(opts.Path, flag, 0)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: database %s does not exist, run without --update to create it",
				model.ErrEnvironment, opts.Path)
		}
		return &model.IOError{Op: "open", Path: opts.Path, Err: err}
	}
	db.file = f

	raw := make([]byte, HeaderSize)
	if _, err := f.ReadAt(raw, 0); err != nil {
		return &model.IOError{Op: "read header", Path: opts.Path, Err: err}
	}
	if err := db.header.UnmarshalBinary(raw); err != nil {
		return &model.IOError{Op: "decode header", Path: opts.Path, Err: err}
	}

	if db.header.Network != opts.Network {
		return fmt.Errorf("%w: database was built for %s, not %s",
			model.ErrIncompatibleChain, db.header.Network, opts.Network)
	}
	if opts.DBLength != 0 && opts.DBLength != db.header.DBLength {
		db.logger.Warn("ignoring dblength, the stored value wins on update",
			zap.Uint8("requested", opts.DBLength), zap.Uint8("stored", db.header.DBLength))
	}
	if !opts.Window.Equal(db.header.Window) {
		db.logger.Warn("date window differs from the one the database was created with",
			zap.Stringer("requested", opts.Window), zap.Stringer("stored", db.header.Window))
	}

	size := db.header.TableSize()
	info, err := f.Stat()
	if err != nil {
		return &model.IOError{Op: "stat", Path: opts.Path, Err: err}
	}
	fileSize, err := safe.Uint64(info.Size())
	if err != nil {
		return &model.IOError{Op: "stat", Path: opts.Path, Err: err}
	}
	if fileSize != HeaderSize+size {
		return &model.IOError{Op: "open", Path: opts.Path,
			Err: fmt.Errorf("file is %d bytes, header describes %d", info.Size(), HeaderSize+size)}
	}
	n, err := safe.Int(size)
	if err != nil {
		return fmt.Errorf("slot table too large: %w", err)
	}
	if err := checkMemory(opts.Path, size, opts.MemoryLimit); err != nil {
		return err
	}
	slots := make([]byte, n)
	if _, err := io.ReadFull(io.NewSectionReader(f, HeaderSize, int64(size)), slots); err != nil {
		return &model.IOError{Op: "read slots", Path: opts.Path, Err: err}
	}
	db.table = newTable(slots, db.header.DBLength, db.header.EntryWidth)

	if db.header.State == StateDirty {
		count := db.table.count()
		db.logger.Warn("database was not closed cleanly, recounted entries",
			zap.Uint64("header_count", db.header.Count), zap.Uint64("recounted", count))
		db.header.Count = count
	}
	return nil
}

// checkMemory fails before a slot table larger than limit is allocated.
func checkMemory(path string, size, limit uint64) error {
	if limit == 0 {
		limit = memory.TotalMemory()
	}
	if limit == 0 || size <= limit {
		return nil
	}
	return fmt.Errorf("%w: slot table of %s for %s does not fit in %s of memory, use a smaller --dblength",
		model.ErrEnvironment, humanize.IBytes(size), path, humanize.IBytes(limit))
}

// Header returns a copy of the current in-memory header.
func (db *DB) Header() Header {
	return db.header
}

// Watermark returns the last durably checkpointed watermark.
func (db *DB) Watermark() model.Watermark {
	return db.header.Watermark
}

// Stats reports the current fill state.
func (db *DB) Stats() Stats {
	capacity := db.header.Capacity()
	load := float64(db.header.Count) / float64(capacity)
	return Stats{
		Count:              db.header.Count,
		Limit:              db.limit,
		Capacity:           capacity,
		EntryWidth:         db.header.EntryWidth,
		Load:               load,
		FalsePositiveBound: FalsePositiveBound(load, db.header.EntryWidth),
	}
}

// Contains reports whether addr may have been inserted. It never returns false for an
// inserted address.
func (db *DB) Contains(addr model.Address) bool {
	_, _, found := db.table.find(addr)
	return found
}

// Insert adds addr and reports whether a new entry was stored. Inserting a present address
// is a no-op.
func (db *DB) Insert(addr model.Address) (bool, error) {
	if db.readOnly {
		return false, ErrReadOnly
	}
	slot, fp, found := db.table.find(addr)
	if found {
		return false, nil
	}
	if db.header.Count >= db.limit {
		return false, &model.CapacityExceededError{Capacity: db.header.Capacity(), Limit: db.limit}
	}
	db.table.set(slot, fp)
	db.header.Count++

	off := slot * uint64(db.header.EntryWidth)
	db.dirty.Add(uint32(off / pageSize))
	db.dirty.Add(uint32((off + uint64(db.header.EntryWidth) - 1) / pageSize))
	return true, nil
}

// Checkpoint makes every inserted entry durable and then records wm as the resumption
// point. The header never claims a watermark whose slots are not on disk.
func (db *DB) Checkpoint(wm model.Watermark) (err error) {
	if db.readOnly {
		return ErrReadOnly
	}
	if db.dirty.IsEmpty() && wm == db.header.Watermark && db.header.State == StateClean {
		return nil
	}
	started := time.Now()
	pages := int(db.dirty.GetCardinality())
	defer func() {
		db.metrics.ObserveCheckpoint(pages, err, started)
		db.metrics.ObserveEntries(db.header.Count, db.limit)
	}()

	if pages > 0 {
		db.header.State = StateDirty
		if err = db.writeHeader(); err != nil {
			return err
		}
		if err = db.writePages(); err != nil {
			return err
		}
	}

	db.header.State = StateClean
	db.header.Watermark = wm
	if err = db.writeHeader(); err != nil {
		return err
	}
	db.logger.Debug("checkpoint",
		zap.Int("pages", pages),
		zap.Uint64("entries", db.header.Count),
		zap.Uint32("watermark_file", wm.FileIndex),
	)
	return nil
}

// Flush writes the final checkpoint of a run.
func (db *DB) Flush(wm model.Watermark) error {
	if err := db.Checkpoint(wm); err != nil {
		return err
	}
	stats := db.Stats()
	db.logger.Info("address database flushed",
		zap.Uint64("entries", stats.Count),
		zap.Float64("load", stats.Load),
		zap.Float64("fp_bound", stats.FalsePositiveBound),
	)
	return nil
}

// Close releases the file and the lock without checkpointing. The lock file is left in place.
func (db *DB) Close() error {
	return db.release()
}

func (db *DB) writeHeader() error {
	raw, err := db.header.MarshalBinary()
	if err != nil {
		return err
	}
	if _, err := db.file.WriteAt(raw, 0); err != nil {
		return &model.IOError{Op: "write header", Path: db.path, Err: err}
	}
	if err := db.file.Sync(); err != nil {
		return &model.IOError{Op: "sync", Path: db.path, Err: err}
	}
	return nil
}

// writePages writes every dirty page of the slot table and syncs it.
func (db *DB) writePages() error {
	slots := db.table.slots
	it := db.dirty.Iterator()
	for it.HasNext() {
		start := uint64(it.Next()) * pageSize
		end := min(start+pageSize, uint64(len(slots)))
		if _, err := db.file.WriteAt(slots[start:end], int64(HeaderSize+start)); err != nil {
			return &model.IOError{Op: "write slots", Path: db.path, Err: err}
		}
	}
	if err := db.file.Sync(); err != nil {
		return &model.IOError{Op: "sync", Path: db.path, Err: err}
	}
	db.dirty.Clear()
	return nil
}

func (db *DB) release() error {
	var err error
	if db.file != nil {
		err = multierr.Append(err, db.file.Close())
		db.file = nil
	}
	if db.lock != nil {
		err = multierr.Append(err, db.lock.Unlock())
		db.lock = nil
	}
	return err
}

type nopMetrics struct{}

func (nopMetrics) ObserveCheckpoint(int, error, time.Time) {}
func (nopMetrics) ObserveEntries(uint64, uint64)          {}
