package bloom_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/Sharathchenna/web-scraper-sub000/bloom"
	"github.com/stretchr/testify/assert"
)

func TestFilter_TestAndAdd(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)

	assert.False(t, f.TestAndAdd("https://example.com/blog/first"))
	assert.True(t, f.TestAndAdd("https://example.com/blog/first"))
	assert.True(t, f.Test("https://example.com/blog/first"))
	assert.False(t, f.Test("https://example.com/blog/never-added"))
}

func TestFilter_ConcurrentUse(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(10000, 0.01)

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				f.TestAndAdd(fmt.Sprintf("https://example.com/w%d/post-%d", w, i))
			}
		}(w)
	}
	wg.Wait()

	// No false negatives.
	for w := 0; w < 8; w++ {
		for i := 0; i < 200; i++ {
			assert.True(t, f.Test(fmt.Sprintf("https://example.com/w%d/post-%d", w, i)))
		}
	}
	assert.Greater(t, f.EstimatedCount(), uint(1000))
}
