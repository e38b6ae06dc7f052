package skills

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_NilStartsEmpty(t *testing.T) {
	r := NewRegistry(nil)

	require.NotNil(t, r.Load())
	assert.Equal(t, 0, r.Load().Len())
	assert.Empty(t, r.Load().Suggest("go"))
}

func TestRegistry_RebuildPublishesNewIndex(t *testing.T) {
	r := NewRegistry(BuildIndex([]string{"Go"}))
	old := r.Load()

	next := r.Rebuild([]string{"Go", "Rust"})

	assert.Same(t, next, r.Load())
	assert.Equal(t, []string{"Go"}, old.Catalog(), "published indexes are never mutated")
	assert.Equal(t, []string{"Go", "Rust"}, r.Load().Catalog())
}

func TestRegistry_PublishIgnoresNil(t *testing.T) {
	idx := BuildIndex([]string{"Go"})
	r := NewRegistry(idx)

	r.Publish(nil)

	assert.Same(t, idx, r.Load())
}

func TestRegistry_ConcurrentReadsDuringRebuild(t *testing.T) {
	r := NewRegistry(BuildIndex(testCatalog))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				idx := r.Load()
				assert.Contains(t, idx.Suggest("java"), "Java")
			}
		}()
	}
	for i := 0; i < 20; i++ {
		r.Rebuild(testCatalog)
	}
	wg.Wait()
}
