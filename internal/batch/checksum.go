// Package batch implements the ingestion core: parallel content
// checksumming of file lists and streaming compression of their bytes
// into a single pack frame.
package batch

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/zeebo/blake3"

	"github.com/binstash/binstash/internal/packidx"
)

// ComputeChecksums computes the content checksum of every file in
// paths. The result has the same length and order as paths no matter
// which worker processed which file. Any open or read failure aborts
// the whole call: the first error is returned and no checksum list is
// produced.
func ComputeChecksums(paths []string) ([]packidx.Checksum, error) {
	sums := make([]packidx.Checksum, len(paths))
	if len(paths) == 0 {
		return sums, nil
	}

	workers := min(runtime.NumCPU(), len(paths))
	indices := make(chan int)
	errs := make(chan error, workers)
	var abort atomic.Bool

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			// Scratch buffer owned by this worker alone. Reset to
			// zero length between files; capacity is retained so a
			// long run of files reuses one allocation.
			var buf []byte
			for i := range indices {
				if abort.Load() {
					continue // drain remaining indices after a failure
				}

				var err error
				buf, err = readFile(paths[i], buf[:0])
				if err != nil {
					abort.Store(true)
					select {
					case errs <- err:
					default:
					}
					continue
				}
				sums[i] = checksumBytes(buf)
			}
		}()
	}

	for i := range paths {
		indices <- i
	}
	close(indices)
	wg.Wait()
	close(errs)

	for err := range errs {
		return nil, err
	}
	return sums, nil
}

// checksumBytes hashes data down to a pack checksum.
func checksumBytes(data []byte) packidx.Checksum {
	h := blake3.New()
	_, _ = h.Write(data)

	var sum packidx.Checksum
	_, _ = h.Digest().Read(sum[:])
	return sum
}

// readFile reads the whole file at path into buf, growing it as
// needed, and returns the filled slice. The caller passes a
// zero-length slice with retained capacity to avoid reallocating
// between files.
func readFile(path string, buf []byte) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return buf, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	fadviseSequential(f)

	if info, err := f.Stat(); err == nil {
		if need := int(info.Size()); need > cap(buf) {
			grown := make([]byte, len(buf), need)
			copy(grown, buf)
			buf = grown
		}
	}

	for {
		if len(buf) == cap(buf) {
			buf = append(buf, 0)[:len(buf)]
		}
		n, err := f.Read(buf[len(buf):cap(buf)])
		buf = buf[:len(buf)+n]
		if err == io.EOF {
			return buf, nil
		}
		if err != nil {
			return buf, fmt.Errorf("read %s: %w", path, err)
		}
	}
}
