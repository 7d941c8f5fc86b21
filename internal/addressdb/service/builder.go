// Package service runs the address database build: it scans block files in order, extracts
// addresses and folds them into the database with a checkpoint after every file.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/addressdb/internal/addressdb/bitcoin"
	"github.com/goodnatureofminers/addressdb/internal/addressdb/model"
	"github.com/goodnatureofminers/addressdb/internal/addressdb/store"
	"github.com/goodnatureofminers/addressdb/pkg/workerpool"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// State is a step of a build run.
type State int

const (
	StateInit State = iota
	StateValidateEnvironment
	StateOpenDatabase
	StateScanning
	StateFlushing
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "init"
	case StateValidateEnvironment:
		return "validate_environment"
	case StateOpenDatabase:
		return "open_database"
	case StateScanning:
		return "scanning"
	case StateFlushing:
		return "flushing"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Result reports what a run did. It is filled in even when Run fails.
type Result struct {
	State State
	// FailedIn is the state the run was in when it failed.
	FailedIn State
	// Modified is set once the database file on disk was created, truncated or checkpointed.
	Modified       bool
	Watermark      model.Watermark
	FilesProcessed int
	LastFile       string
	Blocks         int
	FilteredBlocks int
	Addresses      int
	Inserted       int
	PartialFiles   int
	Stats          store.Stats
}

// BeforeMutation reports whether a failed run left the database file as it found it.
func (r Result) BeforeMutation() bool {
	return r.State == StateFailed && r.FailedIn <= StateOpenDatabase && !r.Modified
}

// errReachedTip stops the scan after a file that ends in a partially written block.
var errReachedTip = errors.New("reached the partially written tip file")

type Builder struct {
	cfg      model.BuildConfig
	source   BlockSource
	guard    CompatibilityGuard
	opener   DatabaseOpener
	newSink  SinkFactory
	progress ProgressReporter
	metrics  BuilderMetrics
	logger   *zap.Logger
}

// NewBuilder wires a build run. newSink may be nil when no address text file is wanted.
func NewBuilder(
	cfg model.BuildConfig,
	source BlockSource,
	guard CompatibilityGuard,
	opener DatabaseOpener,
	newSink SinkFactory,
	progress ProgressReporter,
	metrics BuilderMetrics,
	logger *zap.Logger,
) (*Builder, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrEnvironment, err)
	}
	if source == nil || guard == nil || opener == nil {
		return nil, errors.New("block source, compatibility guard and database opener are required")
	}
	if metrics == nil {
		return nil, errors.New("builder metrics is required")
	}
	if progress == nil {
		return nil, errors.New("progress reporter is required")
	}
	return &Builder{
		cfg:      cfg,
		source:   source,
		guard:    guard,
		opener:   opener,
		newSink:  newSink,
		progress: progress,
		metrics:  metrics,
		logger: logger.Named("builder").With(
			zap.String("network", string(cfg.Network)),
			zap.String("db", cfg.DBPath),
		),
	}, nil
}

// Run performs one build. On failure after the database was opened it writes a best-effort
// checkpoint at the last watermark whose slots are durable.
func (b *Builder) Run(ctx context.Context) (res Result, err error) {
	started := time.Now()
	res.State = StateInit
	defer func() {
		if err != nil {
			res.FailedIn = res.State
			res.State = StateFailed
			b.logger.Error("build failed",
				zap.Stringer("state", res.FailedIn),
				zap.String("kind", model.ErrorKind(err)),
				zap.String("last_file", res.LastFile),
				zap.Error(err),
			)
		}
		b.metrics.ObserveRun(err, started)
	}()

	res.State = StateValidateEnvironment
	params, err := bitcoin.ChainParams(b.cfg.Network)
	if err != nil {
		return res, fmt.Errorf("%w: %w", model.ErrEnvironment, err)
	}
	magic, err := b.guard.Check(b.cfg.FirstBlockFile, params.Net, b.cfg.AllowIncompatible)
	if err != nil {
		return res, err
	}

	res.State = StateOpenDatabase
	db, err := b.opener.Open(store.Options{
		Path:              b.cfg.DBPath,
		Mode:              b.cfg.Mode,
		Network:           magic,
		DBLength:          b.cfg.DBLength,
		FalsePositiveRate: b.cfg.FalsePositiveRate,
		MaxLoad:           b.cfg.MaxLoad,
		Window:            b.cfg.Window,
		FirstBlockFile:    b.cfg.FirstBlockFile,
	}, b.logger)
	if err != nil {
		res.Modified = errors.Is(err, model.ErrDatabaseTruncated)
		return res, err
	}
	res.Modified = b.cfg.Mode != model.ModeUpdate
	defer func() {
		res.Stats = db.Stats()
		if closeErr := db.Close(); closeErr != nil {
			err = multierr.Append(err, closeErr)
		}
	}()

	// The sink outlives cancellation so the file being inserted is written completely.
	sinkCtx := context.WithoutCancel(ctx)
	var sink AddressSink
	if b.newSink != nil {
		if sink, err = b.newSink(); err != nil {
			return res, err
		}
		sink.Start(sinkCtx)
		defer func() {
			if closeErr := sink.Close(); closeErr != nil {
				err = multierr.Append(err, closeErr)
			}
		}()
	}

	wm := db.Watermark()
	start := max(wm.FileIndex, b.cfg.FirstBlockFile)
	wm.FileIndex = start
	res.Watermark = wm

	res.State = StateScanning
	total, err := b.source.Count(start)
	if err != nil {
		return res, err
	}
	b.logger.Info("scanning block files",
		zap.Uint32("first_file", start),
		zap.Int("files", total),
		zap.Int("workers", b.cfg.Workers),
		zap.Stringer("window", b.cfg.Window),
	)
	b.progress.Start(total)
	defer b.progress.Finish()

	proc := &fileProcessor{
		source:  b.source,
		magic:   magic,
		window:  b.cfg.Window,
		metrics: b.metrics,
		logger:  b.logger.Named("file_processor"),
	}
	err = workerpool.Ordered(ctx, b.cfg.Workers, b.source.Files(start), proc.Process, func(r fileResult) error {
		return b.consume(sinkCtx, db, sink, &res, r)
	})
	if errors.Is(err, errReachedTip) {
		b.logger.Info("stopped at partially written block file",
			zap.String("file", res.LastFile),
			zap.Uint32("watermark_file", res.Watermark.FileIndex),
		)
		err = nil
	}
	if err != nil {
		if cpErr := db.Checkpoint(res.Watermark); cpErr != nil {
			err = multierr.Append(err, cpErr)
		}
		return res, err
	}

	res.State = StateFlushing
	if err := db.Flush(res.Watermark); err != nil {
		return res, err
	}
	res.State = StateDone
	b.logger.Info("build complete",
		zap.Int("files", res.FilesProcessed),
		zap.Int("blocks", res.Blocks),
		zap.Int("inserted", res.Inserted),
		zap.Uint32("watermark_file", res.Watermark.FileIndex),
		zap.Duration("elapsed", time.Since(started)),
	)
	return res, nil
}

func (b *Builder) consume(ctx context.Context, db AddressDB, sink AddressSink, res *Result, r fileResult) error {
	var fresh []model.Address
	if sink != nil {
		fresh = make([]model.Address, 0, len(r.Addresses))
	}
	inserted := 0
	for _, addr := range r.Addresses {
		ok, err := db.Insert(addr)
		if err != nil {
			return fmt.Errorf("insert addresses from %s: %w", r.File.Name(), err)
		}
		if ok {
			inserted++
			if sink != nil {
				fresh = append(fresh, addr)
			}
		}
	}
	b.metrics.ObserveInsert(inserted, len(r.Addresses)-inserted)

	if sink != nil && len(fresh) > 0 {
		if err := sink.Write(ctx, fresh); err != nil {
			return fmt.Errorf("write addresses from %s: %w", r.File.Name(), err)
		}
	}

	next := res.Watermark
	next.FileIndex = r.File.Index
	if r.Blocks > 0 {
		next.Advance(r.MaxBlockTime)
		next.TipHash = r.TipHash
	}
	if err := db.Checkpoint(next); err != nil {
		return err
	}
	res.Modified = true

	res.Watermark = next
	res.FilesProcessed++
	res.LastFile = r.File.Name()
	res.Blocks += r.Blocks
	res.FilteredBlocks += r.Filtered
	res.Addresses += len(r.Addresses)
	res.Inserted += inserted
	if r.Partial {
		res.PartialFiles++
	}

	b.progress.Update(res.FilesProcessed, r.File.Name())
	b.logger.Debug("block file folded",
		zap.String("file", r.File.Name()),
		zap.Int("blocks", r.Blocks),
		zap.Int("filtered", r.Filtered),
		zap.Int("extracted", r.Extracted),
		zap.Int("inserted", inserted),
	)
	if r.Partial {
		return errReachedTip
	}
	return nil
}
