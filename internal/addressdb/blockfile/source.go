// Package blockfile locates and opens the blkNNNNN.dat files of a Bitcoin Core data directory.
package blockfile

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"iter"
	"os"
	"path/filepath"

	"github.com/goodnatureofminers/addressdb/internal/addressdb/model"
)

// XORKeyFile holds the obfuscation key Bitcoin Core 28+ applies to block files.
const XORKeyFile = "xor.dat"

// File is one block file of the data directory.
type File struct {
	Index uint32
	Path  string
}

// Name returns the file name without directory.
func (f File) Name() string {
	return filepath.Base(f.Path)
}

// Source enumerates the block files of one blocks directory.
type Source struct {
	dir string
	key []byte
}

// NewSource validates dir and loads its obfuscation key, if any.
func NewSource(dir string) (*Source, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: blocks directory %s does not exist", model.ErrEnvironment, dir)
		}
		return nil, &model.IOError{Op: "stat", Path: dir, Err: err}
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", model.ErrEnvironment, dir)
	}

	key, err := loadXORKey(filepath.Join(dir, XORKeyFile))
	if err != nil {
		return nil, err
	}
	return &Source{dir: dir, key: key}, nil
}

// NewDataDirSource opens blocksDir below an existing Bitcoin Core data directory. A node
// that has not written any block yet has no blocks directory, which yields an empty source.
func NewDataDirSource(dataDir, blocksDir string) (*Source, error) {
	info, err := os.Stat(dataDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: data directory %s does not exist", model.ErrEnvironment, dataDir)
		}
		return nil, &model.IOError{Op: "stat", Path: dataDir, Err: err}
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", model.ErrEnvironment, dataDir)
	}
	if _, err := os.Stat(blocksDir); errors.Is(err, fs.ErrNotExist) {
		return &Source{dir: blocksDir}, nil
	}
	return NewSource(blocksDir)
}

// Dir returns the blocks directory.
func (s *Source) Dir() string {
	return s.dir
}

// Obfuscated reports whether files are XOR-obfuscated on disk.
func (s *Source) Obfuscated() bool {
	return s.key != nil
}

// Path returns the path of block file index.
func (s *Source) Path(index uint32) string {
	return filepath.Join(s.dir, fmt.Sprintf("blk%05d.dat", index))
}

// Files yields block files in increasing index order starting at start. It stops at the
// first index that has no file.
func (s *Source) Files(start uint32) iter.Seq2[File, error] {
	return func(yield func(File, error) bool) {
		for index := start; ; index++ {
			f := File{Index: index, Path: s.Path(index)}
			ok, err := exists(f.Path)
			if err != nil {
				yield(File{}, err)
				return
			}
			if !ok || !yield(f, nil) {
				return
			}
			if index == ^uint32(0) {
				return
			}
		}
	}
}

// Count returns how many consecutive block files exist from start.
func (s *Source) Count(start uint32) (int, error) {
	n := 0
	for _, err := range s.Files(start) {
		if err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

// Open returns a reader over the deobfuscated content of f.
func (s *Source) Open(f File) (io.ReadCloser, error) {
	fh, err := os.Open(f.Path)
	if err != nil {
		return nil, &model.IOError{Op: "open", Path: f.Path, Err: err}
	}
	if s.key == nil {
		return fh, nil
	}
	return struct {
		io.Reader
		io.Closer
	}{Reader: newXORReader(fh, s.key), Closer: fh}, nil
}

func exists(path string) (bool, error) {
	info, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	case err != nil:
		return false, &model.IOError{Op: "stat", Path: path, Err: err}
	case info.IsDir():
		return false, &model.IOError{Op: "stat", Path: path, Err: errors.New("is a directory")}
	}
	return true, nil
}
