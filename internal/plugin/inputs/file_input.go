package inputs

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

// File is an opened log source. Compressed files are decoded on the fly.
type File struct {
	Path   string
	reader io.Reader
	closer []func() error
}

// OpenFile opens path for reading. gzip and zstd content is detected by its
// magic bytes and decompressed transparently.
func OpenFile(path string) (*File, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	f := &File{Path: path, closer: []func() error{file.Close}}
	reader, err := f.wrap(bufio.NewReader(file))
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("open log file %s: %w", path, err)
	}
	f.reader = reader
	return f, nil
}

// NewReader wraps an already opened stream, detecting compression the same
// way OpenFile does. Closing the returned File does not close r.
func NewReader(name string, r io.Reader) (*File, error) {
	f := &File{Path: name}
	reader, err := f.wrap(bufio.NewReader(r))
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	f.reader = reader
	return f, nil
}

func (f *File) wrap(br *bufio.Reader) (io.Reader, error) {
	head, _ := br.Peek(len(zstdMagic))

	switch {
	case bytes.HasPrefix(head, gzipMagic):
		gz, err := gzip.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("gzip: %w", err)
		}
		f.closer = append(f.closer, gz.Close)
		return gz, nil
	case bytes.HasPrefix(head, zstdMagic):
		dec, err := zstd.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("zstd: %w", err)
		}
		f.closer = append(f.closer, func() error {
			dec.Close()
			return nil
		})
		return dec, nil
	default:
		return br, nil
	}
}

// Read implements io.Reader
func (f *File) Read(p []byte) (int, error) {
	return f.reader.Read(p)
}

// Close releases the decoder and the underlying file, innermost first
func (f *File) Close() error {
	var first error
	for i := len(f.closer) - 1; i >= 0; i-- {
		if err := f.closer[i](); err != nil && first == nil {
			first = err
		}
	}
	f.closer = nil
	return first
}
