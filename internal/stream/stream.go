// Package stream assembles a chunked inbound byte stream into decoded text.
package stream

import (
	"context"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// ChunkReader yields the raw message body one chunk at a time.
// Next returns io.EOF when the stream is exhausted. Release frees any
// resource held by the reader and must be safe to call more than once.
type ChunkReader interface {
	Next(ctx context.Context) ([]byte, error)
	Release()
}

// Assemble drains the reader into a single buffer and decodes it as UTF-8.
// Malformed sequences are replaced with the Unicode replacement character
// rather than rejected. The reader is released on every exit path.
//
// limit caps the total number of buffered bytes; zero or negative means
// unlimited. Exceeding the cap aborts the read with an error.
func Assemble(ctx context.Context, r ChunkReader, limit int64) (string, error) {
	defer r.Release()

	var buf []byte
	for {
		chunk, err := r.Next(ctx)
		if len(chunk) > 0 {
			buf = append(buf, chunk...)
			if limit > 0 && int64(len(buf)) > limit {
				return "", fmt.Errorf("message exceeds size limit of %d bytes", limit)
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("failed to read message stream: %w", err)
		}
	}

	return decodeUTF8(buf), nil
}

// decodeUTF8 converts raw bytes to a string, substituting the replacement
// character for invalid sequences.
func decodeUTF8(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}
	return strings.ToValidUTF8(string(b), string(utf8.RuneError))
}

// bufferReader serves a fixed byte slice in chunks of a given size.
type bufferReader struct {
	data      []byte
	chunkSize int
	offset    int
	released  bool
}

// NewBufferReader returns a ChunkReader over data that yields chunks of at
// most chunkSize bytes. A chunkSize of zero or less serves the whole buffer
// in a single chunk.
func NewBufferReader(data []byte, chunkSize int) ChunkReader {
	if chunkSize <= 0 {
		chunkSize = len(data)
	}
	return &bufferReader{data: data, chunkSize: chunkSize}
}

func (b *bufferReader) Next(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if b.released || b.offset >= len(b.data) {
		return nil, io.EOF
	}

	end := b.offset + b.chunkSize
	if end > len(b.data) {
		end = len(b.data)
	}
	chunk := b.data[b.offset:end]
	b.offset = end

	if b.offset >= len(b.data) {
		return chunk, io.EOF
	}
	return chunk, nil
}

func (b *bufferReader) Release() {
	b.released = true
	b.data = nil
}
