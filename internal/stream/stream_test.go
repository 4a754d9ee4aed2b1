package stream

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
)

func TestAssembleSingleChunk(t *testing.T) {
	t.Parallel()

	r := NewBufferReader([]byte("hello world"), 0)

	got, err := Assemble(context.Background(), r, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "hello world" {
		t.Errorf("got %q, want %q", got, "hello world")
	}
}

func TestAssembleChunkSizeIndependence(t *testing.T) {
	t.Parallel()

	input := "From: a@b.c\r\nContent-Type: text/plain\r\n\r\nsome message body with several words"

	want, err := Assemble(context.Background(), NewBufferReader([]byte(input), 0), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, size := range []int{1, 2, 3, 7, 16, 1024} {
		got, err := Assemble(context.Background(), NewBufferReader([]byte(input), size), 0)
		if err != nil {
			t.Fatalf("chunk size %d: unexpected error: %v", size, err)
		}
		if got != want {
			t.Errorf("chunk size %d: got %q, want %q", size, got, want)
		}
	}
}

func TestAssembleEmptyStream(t *testing.T) {
	t.Parallel()

	got, err := Assemble(context.Background(), NewBufferReader(nil, 8), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "" {
		t.Errorf("got %q, want empty", got)
	}
}

func TestAssembleInvalidUTF8Replaced(t *testing.T) {
	t.Parallel()

	input := []byte{'o', 'k', 0xff, 0xfe, '!'}

	got, err := Assemble(context.Background(), NewBufferReader(input, 2), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(got, "ok") || !strings.HasSuffix(got, "!") {
		t.Errorf("got %q, want valid text preserved around replacements", got)
	}
	if strings.ContainsRune(got, 0xff) {
		t.Errorf("got %q, want invalid bytes replaced", got)
	}
	if !strings.ContainsRune(got, '�') {
		t.Errorf("got %q, want replacement character for malformed sequences", got)
	}
}

func TestAssembleSizeLimit(t *testing.T) {
	t.Parallel()

	data := []byte(strings.Repeat("x", 100))

	if _, err := Assemble(context.Background(), NewBufferReader(data, 10), 50); err == nil {
		t.Error("expected error when message exceeds size limit, got nil")
	}

	got, err := Assemble(context.Background(), NewBufferReader(data, 10), 100)
	if err != nil {
		t.Fatalf("unexpected error at exact limit: %v", err)
	}
	if len(got) != 100 {
		t.Errorf("got %d bytes, want 100", len(got))
	}
}

// failingReader returns one chunk and then an error, recording Release calls.
type failingReader struct {
	served   bool
	released bool
}

func (f *failingReader) Next(_ context.Context) ([]byte, error) {
	if !f.served {
		f.served = true
		return []byte("partial"), nil
	}
	return nil, errors.New("connection reset")
}

func (f *failingReader) Release() {
	f.released = true
}

func TestAssembleReadErrorReleasesReader(t *testing.T) {
	t.Parallel()

	r := &failingReader{}

	_, err := Assemble(context.Background(), r, 0)
	if err == nil {
		t.Fatal("expected error from failing reader, got nil")
	}
	if !strings.Contains(err.Error(), "connection reset") {
		t.Errorf("error %q should preserve the underlying cause", err)
	}
	if !r.released {
		t.Error("reader was not released on the error path")
	}
}

func TestAssembleReleasesReaderOnSuccess(t *testing.T) {
	t.Parallel()

	r := &trackingReader{data: []byte("done")}

	if _, err := Assemble(context.Background(), r, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !r.released {
		t.Error("reader was not released on the success path")
	}
}

type trackingReader struct {
	data     []byte
	done     bool
	released bool
}

func (r *trackingReader) Next(_ context.Context) ([]byte, error) {
	if r.done {
		return nil, io.EOF
	}
	r.done = true
	return r.data, nil
}

func (r *trackingReader) Release() {
	r.released = true
}

func TestAssembleCancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := Assemble(ctx, NewBufferReader([]byte("x"), 1), 0); err == nil {
		t.Error("expected error from cancelled context, got nil")
	}
}

func TestBufferReaderAfterRelease(t *testing.T) {
	t.Parallel()

	r := NewBufferReader([]byte("abc"), 1)
	r.Release()

	if _, err := r.Next(context.Background()); err != io.EOF {
		t.Errorf("Next after Release: got %v, want io.EOF", err)
	}
}
