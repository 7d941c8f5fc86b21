package blockfile

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/btcsuite/btcd/wire"
	"github.com/goodnatureofminers/addressdb/internal/addressdb/chaintest"
	"github.com/goodnatureofminers/addressdb/internal/addressdb/model"
)

func TestNewSource_Errors(t *testing.T) {
	dir := t.TempDir()
	if _, err := NewSource(filepath.Join(dir, "missing")); !errors.Is(err, model.ErrEnvironment) {
		t.Fatalf("missing dir error = %v, want ErrEnvironment", err)
	}
	file := filepath.Join(dir, "file")
	if err := os.WriteFile(file, nil, 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := NewSource(file); !errors.Is(err, model.ErrEnvironment) {
		t.Fatalf("file as dir error = %v, want ErrEnvironment", err)
	}
}

func TestNewDataDirSource(t *testing.T) {
	dataDir := t.TempDir()

	src, err := NewDataDirSource(dataDir, filepath.Join(dataDir, "blocks"))
	if err != nil {
		t.Fatalf("NewDataDirSource() error = %v", err)
	}
	if n, err := src.Count(0); err != nil || n != 0 {
		t.Fatalf("Count() = %d, %v, want 0 files", n, err)
	}

	if _, err := NewDataDirSource(filepath.Join(dataDir, "missing"), filepath.Join(dataDir, "missing", "blocks")); !errors.Is(err, model.ErrEnvironment) {
		t.Fatalf("missing data dir error = %v, want ErrEnvironment", err)
	}

	blocks := filepath.Join(dataDir, "blocks")
	if err := os.Mkdir(blocks, 0o700); err != nil {
		t.Fatal(err)
	}
	chaintest.WriteRaw(t, blocks, 0, []byte{1})
	src, err = NewDataDirSource(dataDir, blocks)
	if err != nil {
		t.Fatalf("NewDataDirSource() error = %v", err)
	}
	if n, err := src.Count(0); err != nil || n != 1 {
		t.Fatalf("Count() = %d, %v, want 1 file", n, err)
	}
}

func TestSource_Files(t *testing.T) {
	dir := t.TempDir()
	for _, i := range []int{0, 1, 2, 4} {
		chaintest.WriteRaw(t, dir, i, []byte{1})
	}
	src, err := NewSource(dir)
	if err != nil {
		t.Fatalf("NewSource() error = %v", err)
	}

	tests := []struct {
		name  string
		start uint32
		want  []uint32
	}{
		{name: "from zero stops at gap", start: 0, want: []uint32{0, 1, 2}},
		{name: "from middle", start: 1, want: []uint32{1, 2}},
		{name: "start after gap", start: 4, want: []uint32{4}},
		{name: "start at missing file", start: 3, want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []uint32
			for f, err := range src.Files(tt.start) {
				if err != nil {
					t.Fatalf("Files() error = %v", err)
				}
				if f.Name() != chaintest.FileName(int(f.Index)) {
					t.Fatalf("file name %s does not match index %d", f.Name(), f.Index)
				}
				got = append(got, f.Index)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("Files() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("Files() = %v, want %v", got, tt.want)
				}
			}
			n, err := src.Count(tt.start)
			if err != nil || n != len(tt.want) {
				t.Fatalf("Count() = %d, %v, want %d", n, err, len(tt.want))
			}
		})
	}
}

func TestSource_FilesStopsEarly(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < 3; i++ {
		chaintest.WriteRaw(t, dir, i, []byte{1})
	}
	src, _ := NewSource(dir)
	seen := 0
	for range src.Files(0) {
		seen++
		break
	}
	if seen != 1 {
		t.Fatalf("iteration continued after break")
	}
}

func TestSource_FilesDirectoryIsError(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, chaintest.FileName(0)), 0o700); err != nil {
		t.Fatal(err)
	}
	src, _ := NewSource(dir)
	for _, err := range src.Files(0) {
		if !errors.Is(err, model.ErrIO) {
			t.Fatalf("Files() error = %v, want ErrIO", err)
		}
		return
	}
	t.Fatalf("expected an error to be yielded")
}

func TestSource_OpenPlain(t *testing.T) {
	dir := t.TempDir()
	chaintest.WriteRaw(t, dir, 0, []byte("plain block data"))
	src, _ := NewSource(dir)
	if src.Obfuscated() {
		t.Fatalf("source without xor.dat must not be obfuscated")
	}
	r, err := src.Open(File{Index: 0, Path: src.Path(0)})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer r.Close()
	got, _ := io.ReadAll(r)
	if string(got) != "plain block data" {
		t.Fatalf("Open() read %q", got)
	}

	if _, err := src.Open(File{Index: 9, Path: src.Path(9)}); !errors.Is(err, model.ErrIO) {
		t.Fatalf("Open(missing) error = %v, want ErrIO", err)
	}
}

func TestSource_OpenObfuscated(t *testing.T) {
	dir := t.TempDir()
	key := []byte{0x01, 0x23, 0x45, 0x67, 0x89, 0xab, 0xcd, 0xef}
	if err := os.WriteFile(filepath.Join(dir, XORKeyFile), key, 0o600); err != nil {
		t.Fatal(err)
	}
	plain := chaintest.Record(wire.MainNet, chaintest.Block(chaintest.Day(2024, 1, 1), true, []byte{0x51}))
	obfuscated := make([]byte, len(plain))
	for i := range plain {
		obfuscated[i] = plain[i] ^ key[i%len(key)]
	}
	chaintest.WriteRaw(t, dir, 0, obfuscated)

	src, err := NewSource(dir)
	if err != nil {
		t.Fatalf("NewSource() error = %v", err)
	}
	if !src.Obfuscated() {
		t.Fatalf("expected obfuscated source")
	}
	r, err := src.Open(File{Index: 0, Path: src.Path(0)})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer r.Close()

	// Small reads exercise key rotation across read boundaries.
	var got bytes.Buffer
	buf := make([]byte, 3)
	for {
		n, err := r.Read(buf)
		got.Write(buf[:n])
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Read() error = %v", err)
		}
	}
	if !bytes.Equal(got.Bytes(), plain) {
		t.Fatalf("deobfuscated content differs from original")
	}
}

func TestLoadXORKey_ZeroKeyIsPlain(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, XORKeyFile), make([]byte, 8), 0o600); err != nil {
		t.Fatal(err)
	}
	src, err := NewSource(dir)
	if err != nil {
		t.Fatalf("NewSource() error = %v", err)
	}
	if src.Obfuscated() {
		t.Fatalf("all-zero key must be treated as no obfuscation")
	}
}
