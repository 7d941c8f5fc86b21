package blockfile

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/btcsuite/btcd/wire"
	"github.com/goodnatureofminers/addressdb/internal/addressdb/model"
	"go.uber.org/zap"
)

type opener interface {
	Path(index uint32) string
	Open(f File) (io.ReadCloser, error)
}

// Guard refuses to build from block files of another network.
type Guard struct {
	source opener
	logger *zap.Logger
}

// NewGuard creates a guard over source.
func NewGuard(source opener, logger *zap.Logger) *Guard {
	return &Guard{source: source, logger: logger.Named("compatibility_guard")}
}

// Check compares the magic of block file start with expected and returns the magic the
// decoder must use. With allowMismatch a foreign magic is logged and returned instead of
// failing.
func (g *Guard) Check(start uint32, expected wire.BitcoinNet, allowMismatch bool) (wire.BitcoinNet, error) {
	f := File{Index: start, Path: g.source.Path(start)}
	ok, err := exists(f.Path)
	if err != nil {
		return 0, err
	}
	if !ok {
		g.logger.Warn("first block file not found, nothing to check", zap.String("path", f.Path))
		return expected, nil
	}

	r, err := g.source.Open(f)
	if err != nil {
		return 0, err
	}
	defer r.Close()

	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return expected, nil
		}
		return 0, &model.IOError{Op: "read", Path: f.Path, Err: err}
	}
	observed := wire.BitcoinNet(binary.LittleEndian.Uint32(buf[:]))
	if observed == 0 || observed == expected {
		return expected, nil
	}

	if !allowMismatch {
		return 0, fmt.Errorf("%w: %s starts with magic %#08x (%s), expected %#08x (%s)",
			model.ErrIncompatibleChain, f.Name(), uint32(observed), observed, uint32(expected), expected)
	}
	g.logger.Warn("block file magic does not match network, continuing as requested",
		zap.String("file", f.Name()),
		zap.Stringer("observed", observed),
		zap.Stringer("expected", expected),
	)
	return observed, nil
}
