// Package sink writes recognized addresses to a plain-text debug file.
package sink

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/goodnatureofminers/addressdb/internal/addressdb/bitcoin"
	"github.com/goodnatureofminers/addressdb/internal/addressdb/model"
	"github.com/goodnatureofminers/addressdb/pkg/batcher"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

const (
	flushSize     = 10_000
	flushInterval = time.Second
	writeBuffer   = 1 << 20
)

// Text appends one human-readable address per line to a file.
type Text struct {
	path    string
	file    *os.File
	w       *bufio.Writer
	codec   *bitcoin.AddressCodec
	batcher *batcher.Batcher[model.Address]
	logger  *zap.Logger
}

// NewText opens path for writing. With appendMode existing content is kept. flushRate caps
// how many batches per second reach the file; 0 leaves it unlimited.
func NewText(path string, network model.Network, appendMode bool, flushRate int, logger *zap.Logger) (*Text, error) {
	codec, err := bitcoin.NewAddressCodec(network)
	if err != nil {
		return nil, err
	}
	flags := os.O_CREATE | os.O_WRONLY | os.O_TRUNC
	if appendMode {
		flags = os.O_CREATE | os.O_WRONLY | os.O_APPEND
	}
	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		return nil, &model.IOError{Op: "open", Path: path, Err: err}
	}

	s := &Text{
		path:   path,
		file:   f,
		w:      bufio.NewWriterSize(f, writeBuffer),
		codec:  codec,
		logger: logger.Named("address_sink"),
	}
	s.batcher = batcher.New[model.Address](s.logger, s.flush, batcher.Config{
		Size:             flushSize,
		Interval:         flushInterval,
		FlushesPerSecond: flushRate,
	})
	return s, nil
}

// Start begins background writing.
func (s *Text) Start(ctx context.Context) {
	s.batcher.Start(ctx)
}

// Write queues addresses for writing.
func (s *Text) Write(ctx context.Context, addrs []model.Address) error {
	for _, a := range addrs {
		if err := s.batcher.Add(ctx, a); err != nil {
			return err
		}
	}
	return nil
}

// Close writes everything queued and closes the file.
func (s *Text) Close() error {
	err := s.batcher.Stop()
	if ferr := s.w.Flush(); ferr != nil {
		err = multierr.Append(err, &model.IOError{Op: "write", Path: s.path, Err: ferr})
	}
	return multierr.Append(err, s.file.Close())
}

func (s *Text) flush(_ context.Context, addrs []model.Address) error {
	for _, a := range addrs {
		text, err := s.codec.Encode(a)
		if err != nil {
			return fmt.Errorf("encode address %s: %w", a, err)
		}
		if _, err := s.w.WriteString(text); err != nil {
			return &model.IOError{Op: "write", Path: s.path, Err: err}
		}
		if err := s.w.WriteByte('\n'); err != nil {
			return &model.IOError{Op: "write", Path: s.path, Err: err}
		}
	}
	return nil
}
