package batch

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync/atomic"

	"github.com/klauspost/compress/zstd"

	"github.com/binstash/binstash/internal/progress"
)

// maxWindowLog bounds WindowLog so 1 << WindowLog stays a sane int.
// The real ceiling is zstd.MaxWindowSize; this just guards the shift.
const maxWindowLog = 30

// CompressionOptions configure the pack encoder.
type CompressionOptions struct {
	// Level is the zstd compression level.
	Level int
	// WindowLog sets the match-finding window to 1 << WindowLog
	// bytes. Large windows let the encoder find matches between
	// files that are far apart in the stream, which is where most of
	// the redundancy in versioned file sets lives.
	WindowLog uint32
	// NumWorkers is the total number of compression threads,
	// counting the goroutine that drives the writes. Must be at
	// least 1; 1 means fully single-threaded encoding.
	NumWorkers uint32
}

// HelperThreads returns how many encoder threads run beyond the
// calling goroutine. NumWorkers counts the caller, so a value of 1
// translates to zero helpers and same-thread encoding.
func (o CompressionOptions) HelperThreads() int {
	return int(o.NumWorkers) - 1
}

func (o CompressionOptions) encoderOptions() ([]zstd.EOption, error) {
	if o.WindowLog > maxWindowLog {
		return nil, fmt.Errorf("batch: window log %d exceeds maximum %d", o.WindowLog, maxWindowLog)
	}
	window := 1 << o.WindowLog
	if window < zstd.MinWindowSize || window > zstd.MaxWindowSize {
		return nil, fmt.Errorf("batch: window size %d out of range [%d, %d]",
			window, zstd.MinWindowSize, zstd.MaxWindowSize)
	}

	return []zstd.EOption{
		zstd.WithEncoderLevel(zstd.EncoderLevelFromZstd(o.Level)),
		zstd.WithEncoderConcurrency(o.HelperThreads() + 1),
		zstd.WithWindowSize(window),
	}, nil
}

// errAbandoned poisons an abandoned pack stream so the frame epilogue
// can never reach the sink.
var errAbandoned = errors.New("batch: pack stream abandoned")

// CompressFiles writes one zstd frame to out whose decompressed
// content is the byte-for-byte concatenation of the files at paths, in
// order. After each file it calls rep.Checkpoint(i, len(paths)-i), and
// once more with (len(paths), 0) before the frame is finalized. It
// returns the total number of decompressed bytes written.
//
// The first open, read, write, or configuration error aborts the call.
// The frame is then left unfinalized: whatever bytes already reached
// out do not form a decodable pack and must be discarded by the
// caller. opts.NumWorkers == 0 is a caller bug and panics before any
// file is touched.
func CompressFiles(out io.Writer, paths []string, opts CompressionOptions, rep progress.Reporter) (uint64, error) {
	if opts.NumWorkers < 1 {
		panic("batch: CompressionOptions.NumWorkers must be at least 1")
	}

	eopts, err := opts.encoderOptions()
	if err != nil {
		return 0, err
	}

	// The guard sits between the encoder and the sink. On failure it
	// is tripped before the encoder is released, so Close can reap
	// the encoder's goroutines without a frame epilogue ever reaching
	// the sink.
	guard := &guardedWriter{w: out}
	enc, err := zstd.NewWriter(guard, eopts...)
	if err != nil {
		return 0, fmt.Errorf("batch: init encoder: %w", err)
	}

	var processed uint64
	for i, path := range paths {
		n, err := appendFile(enc, path)
		processed += n
		if err != nil {
			guard.abandon()
			_ = enc.Close()
			return 0, err
		}
		rep.Checkpoint(i, len(paths)-i)
	}

	rep.Checkpoint(len(paths), 0)

	// Finalizing writes the frame epilogue; without it the stream is
	// not decodable.
	if err := enc.Close(); err != nil {
		guard.abandon()
		return 0, fmt.Errorf("batch: finalize pack: %w", err)
	}
	return processed, nil
}

// appendFile streams the file's contents into the encoder. Writes
// block when the encoder's internal buffers are full, which throttles
// the loop to the compression throughput.
func appendFile(enc io.Writer, path string) (uint64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	fadviseSequential(f)

	n, err := io.Copy(enc, f)
	if err != nil {
		return uint64(n), fmt.Errorf("pack %s: %w", path, err)
	}
	return uint64(n), nil
}

// guardedWriter forwards writes to the sink until abandoned. The
// encoder's helper goroutines may still be flushing when a failure is
// detected, so the tripwire is atomic.
type guardedWriter struct {
	w         io.Writer
	abandoned atomic.Bool
}

func (g *guardedWriter) abandon() {
	g.abandoned.Store(true)
}

func (g *guardedWriter) Write(p []byte) (int, error) {
	if g.abandoned.Load() {
		return 0, errAbandoned
	}
	return g.w.Write(p)
}
