package service

import (
	"context"
	"io"
	"iter"
	"time"

	"github.com/btcsuite/btcd/wire"
	"github.com/goodnatureofminers/addressdb/internal/addressdb/blockfile"
	"github.com/goodnatureofminers/addressdb/internal/addressdb/model"
	"github.com/goodnatureofminers/addressdb/internal/addressdb/store"
	"go.uber.org/zap"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	BlockSource interface {
		Files(start uint32) iter.Seq2[blockfile.File, error]
		Count(start uint32) (int, error)
		Open(f blockfile.File) (io.ReadCloser, error)
	}
	CompatibilityGuard interface {
		Check(start uint32, expected wire.BitcoinNet, allowMismatch bool) (wire.BitcoinNet, error)
	}
	DatabaseOpener interface {
		Open(opts store.Options, logger *zap.Logger) (AddressDB, error)
	}
	AddressDB interface {
		Insert(addr model.Address) (bool, error)
		Checkpoint(wm model.Watermark) error
		Flush(wm model.Watermark) error
		Watermark() model.Watermark
		Stats() store.Stats
		Close() error
	}
	AddressSink interface {
		Start(ctx context.Context)
		Write(ctx context.Context, addrs []model.Address) error
		Close() error
	}
	// SinkFactory opens the address sink once the database is known to be usable.
	SinkFactory func() (AddressSink, error)
	ProgressReporter interface {
		Start(total int)
		Update(current int, file string)
		Finish()
	}
	BuilderMetrics interface {
		ObserveFile(err error, blocks, filtered int, started time.Time)
		ObserveInsert(inserted, duplicates int)
		ObserveRun(err error, started time.Time)
	}
)
