package stats

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCollectorCounters(t *testing.T) {
	c := NewCollector()
	c.AddFilesHashed(3)
	c.AddFilesPacked(3)
	c.AddBytesPacked(4096)
	c.AddBytesWritten(1024)

	snap := c.Snapshot()
	assert.Equal(t, int64(3), snap.FilesHashed)
	assert.Equal(t, int64(3), snap.FilesPacked)
	assert.Equal(t, int64(4096), snap.BytesPacked)
	assert.Equal(t, int64(1024), snap.BytesWritten)
	assert.InDelta(t, 4.0, snap.Ratio(), 0.001)
	assert.GreaterOrEqual(t, snap.Elapsed, time.Duration(0))
}

func TestCollectorConcurrent(t *testing.T) {
	c := NewCollector()

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for n := 0; n < 1000; n++ {
				c.AddBytesPacked(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(8000), c.Snapshot().BytesPacked)
}

func TestRatioZeroOutput(t *testing.T) {
	assert.Zero(t, Snapshot{BytesPacked: 100}.Ratio())
}

func TestFormatBytes(t *testing.T) {
	assert.Equal(t, "512 B", FormatBytes(512))
	assert.Equal(t, "1.0 KiB", FormatBytes(1024))
	assert.Equal(t, "1.5 MiB", FormatBytes(3*1024*1024/2))
	assert.Equal(t, "2.0 GiB", FormatBytes(2*1024*1024*1024))
}
