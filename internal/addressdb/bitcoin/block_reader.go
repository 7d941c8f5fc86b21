package bitcoin

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/btcsuite/btcd/wire"
	"github.com/goodnatureofminers/addressdb/internal/addressdb/model"
)

// ErrPartialBlock marks a block file that ends inside a record. It is the expected state of
// the newest file while the node is still writing it.
var ErrPartialBlock = errors.New("block file ends inside a block record")

const (
	recordHeaderSize = 8
	readBufferSize   = 1 << 20
)

// BlockReader splits a raw block file into magic/size framed records and decodes each block.
type BlockReader struct {
	r      *bufio.Reader
	path   string
	magic  wire.BitcoinNet
	offset int64
	buf    []byte
}

// NewBlockReader reads records of the given network from r. path is used for diagnostics only.
func NewBlockReader(r io.Reader, path string, magic wire.BitcoinNet) *BlockReader {
	return &BlockReader{
		r:     bufio.NewReaderSize(r, readBufferSize),
		path:  path,
		magic: magic,
	}
}

// Offset returns the number of bytes consumed so far.
func (br *BlockReader) Offset() int64 {
	return br.offset
}

// Next decodes the next block. It returns io.EOF at the clean end of the file, including a
// zero-filled preallocated tail, and ErrPartialBlock when the file stops inside a record.
func (br *BlockReader) Next() (*wire.MsgBlock, error) {
	start := br.offset

	var hdr [recordHeaderSize]byte
	n, err := io.ReadFull(br.r, hdr[:])
	br.offset += int64(n)
	switch {
	case errors.Is(err, io.EOF):
		return nil, io.EOF
	case errors.Is(err, io.ErrUnexpectedEOF):
		if isZero(hdr[:n]) {
			return nil, io.EOF
		}
		return nil, ErrPartialBlock
	case err != nil:
		return nil, &model.IOError{Op: "read", Path: br.path, Err: err}
	}

	magic := binary.LittleEndian.Uint32(hdr[:4])
	if magic == 0 {
		return nil, io.EOF
	}
	if wire.BitcoinNet(magic) != br.magic {
		return nil, br.corrupt(start, fmt.Errorf("record magic %#08x, want %#08x", magic, uint32(br.magic)))
	}
	size := binary.LittleEndian.Uint32(hdr[4:])
	if size == 0 || size > wire.MaxBlockPayload {
		return nil, br.corrupt(start, fmt.Errorf("record size %d out of range", size))
	}

	if cap(br.buf) < int(size) {
		br.buf = make([]byte, size)
	}
	body := br.buf[:size]
	n, err = io.ReadFull(br.r, body)
	br.offset += int64(n)
	switch {
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return nil, ErrPartialBlock
	case err != nil:
		return nil, &model.IOError{Op: "read", Path: br.path, Err: err}
	}

	rd := bytes.NewReader(body)
	block := &wire.MsgBlock{}
	if err := block.Deserialize(rd); err != nil {
		return nil, br.corrupt(start, fmt.Errorf("decode block: %w", err))
	}
	if rd.Len() != 0 {
		return nil, br.corrupt(start, fmt.Errorf("record declares %d bytes but block uses %d", size, int(size)-rd.Len()))
	}
	return block, nil
}

func (br *BlockReader) corrupt(offset int64, err error) error {
	return &model.CorruptBlockError{Path: br.path, Offset: offset, Err: err}
}

func isZero(b []byte) bool {
	for _, v := range b {
		if v != 0 {
			return false
		}
	}
	return true
}
