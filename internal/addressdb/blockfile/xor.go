package blockfile

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/goodnatureofminers/addressdb/internal/addressdb/model"
)

// xorReader undoes the rolling XOR obfuscation. Byte i of the file is XORed with key[i%len(key)].
type xorReader struct {
	r      io.Reader
	key    []byte
	offset int
}

func newXORReader(r io.Reader, key []byte) *xorReader {
	return &xorReader{r: r, key: key}
}

func (x *xorReader) Read(p []byte) (int, error) {
	n, err := x.r.Read(p)
	for i := 0; i < n; i++ {
		p[i] ^= x.key[x.offset]
		x.offset++
		if x.offset == len(x.key) {
			x.offset = 0
		}
	}
	return n, err
}

// loadXORKey returns nil when the key file is absent or all zero.
func loadXORKey(path string) ([]byte, error) {
	key, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, &model.IOError{Op: "read", Path: path, Err: err}
	}
	if len(key) == 0 {
		return nil, fmt.Errorf("%w: empty obfuscation key %s", model.ErrEnvironment, path)
	}
	for _, b := range key {
		if b != 0 {
			return key, nil
		}
	}
	return nil, nil
}
