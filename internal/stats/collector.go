// Package stats tracks ingest counters with lock-free atomics.
package stats

import (
	"fmt"
	"sync/atomic"
	"time"
)

// Collector accumulates counters for one ingest run. Safe for
// concurrent use by checksum workers and the compression loop.
type Collector struct {
	filesHashed  atomic.Int64
	filesPacked  atomic.Int64
	bytesPacked  atomic.Int64 // decompressed bytes fed to the encoder
	bytesWritten atomic.Int64 // compressed bytes written to the pack
	startTime    time.Time
}

// NewCollector creates a Collector with startTime set to now.
func NewCollector() *Collector {
	return &Collector{startTime: time.Now()}
}

func (c *Collector) AddFilesHashed(n int64)  { c.filesHashed.Add(n) }
func (c *Collector) AddFilesPacked(n int64)  { c.filesPacked.Add(n) }
func (c *Collector) AddBytesPacked(n int64)  { c.bytesPacked.Add(n) }
func (c *Collector) AddBytesWritten(n int64) { c.bytesWritten.Add(n) }

// Snapshot is a point-in-time read of all counters.
type Snapshot struct {
	FilesHashed  int64
	FilesPacked  int64
	BytesPacked  int64
	BytesWritten int64
	Elapsed      time.Duration
}

// Snapshot returns a consistent point-in-time read of all counters.
func (c *Collector) Snapshot() Snapshot {
	return Snapshot{
		FilesHashed:  c.filesHashed.Load(),
		FilesPacked:  c.filesPacked.Load(),
		BytesPacked:  c.bytesPacked.Load(),
		BytesWritten: c.bytesWritten.Load(),
		Elapsed:      c.Elapsed(),
	}
}

// Elapsed returns time since collector creation.
func (c *Collector) Elapsed() time.Duration {
	return time.Since(c.startTime)
}

// Ratio returns the compression ratio (input over output), or 0 when
// nothing has been written yet.
func (s Snapshot) Ratio() float64 {
	if s.BytesWritten == 0 {
		return 0
	}
	return float64(s.BytesPacked) / float64(s.BytesWritten)
}

func (s Snapshot) String() string {
	return fmt.Sprintf("files=%d in=%s out=%s ratio=%.2f",
		s.FilesPacked, FormatBytes(s.BytesPacked), FormatBytes(s.BytesWritten), s.Ratio())
}

// FormatBytes returns a human-readable byte count.
func FormatBytes(b int64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := int64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(b)/float64(div), "KMGTPE"[exp])
}
