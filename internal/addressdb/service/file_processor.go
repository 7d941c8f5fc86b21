package service

import (
	"context"
	"errors"
	"io"
	"slices"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/goodnatureofminers/addressdb/internal/addressdb/bitcoin"
	"github.com/goodnatureofminers/addressdb/internal/addressdb/blockfile"
	"github.com/goodnatureofminers/addressdb/internal/addressdb/model"
	"go.uber.org/zap"
)

// fileResult is everything the builder needs from one decoded block file.
type fileResult struct {
	File blockfile.File
	// Addresses holds the distinct addresses of in-window blocks, sorted.
	Addresses    []model.Address
	Extracted    int
	Blocks       int
	Filtered     int
	MaxBlockTime time.Time
	TipHash      chainhash.Hash
	// Partial is set when the file ended inside a record.
	Partial bool
}

type fileProcessor struct {
	source  BlockSource
	magic   wire.BitcoinNet
	window  model.DateWindow
	metrics BuilderMetrics
	logger  *zap.Logger
}

func (p *fileProcessor) Process(ctx context.Context, f blockfile.File) (res fileResult, err error) {
	started := time.Now()
	res.File = f
	defer func() {
		p.metrics.ObserveFile(err, res.Blocks, res.Filtered, started)
	}()

	rc, err := p.source.Open(f)
	if err != nil {
		return res, err
	}
	defer func() {
		if closeErr := rc.Close(); closeErr != nil && err == nil {
			err = &model.IOError{Op: "close", Path: f.Path, Err: closeErr}
		}
	}()

	var (
		reader = bitcoin.NewBlockReader(rc, f.Path, p.magic)
		addrs  []model.Address
		last   *wire.BlockHeader
	)
	for {
		if err = ctx.Err(); err != nil {
			return res, err
		}
		block, nextErr := reader.Next()
		if errors.Is(nextErr, io.EOF) {
			break
		}
		if errors.Is(nextErr, bitcoin.ErrPartialBlock) {
			res.Partial = true
			p.logger.Warn("block file ends inside a record, keeping the blocks before it",
				zap.String("file", f.Name()),
				zap.Int64("offset", reader.Offset()),
				zap.Int("blocks", res.Blocks),
			)
			break
		}
		if nextErr != nil {
			return res, nextErr
		}

		res.Blocks++
		last = &block.Header
		ts := block.Header.Timestamp.UTC()
		if ts.After(res.MaxBlockTime) {
			res.MaxBlockTime = ts
		}
		if !p.window.Contains(ts) {
			res.Filtered++
			continue
		}
		for _, tx := range block.Transactions {
			for _, out := range tx.TxOut {
				if _, addr, ok := bitcoin.ClassifyScript(out.PkScript); ok {
					addrs = append(addrs, addr)
				}
			}
		}
	}
	if last != nil {
		res.TipHash = last.BlockHash()
	}

	res.Extracted = len(addrs)
	slices.SortFunc(addrs, model.Address.Compare)
	res.Addresses = slices.Compact(addrs)
	return res, nil
}
