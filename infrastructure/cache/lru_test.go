package cache

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func valueOf(v int) func() int {
	return func() int { return v }
}

func TestLRU_GetOrCreate(t *testing.T) {
	c := NewLRU[string, *int](2, nil)
	calls := 0
	create := func() *int {
		calls++
		v := calls
		return &v
	}

	first, created := c.GetOrCreate("a", create)
	assert.True(t, created)

	second, created := c.GetOrCreate("a", create)
	assert.False(t, created)
	assert.Same(t, first, second)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, c.Len())
}

func TestLRU_EvictsLeastRecentlyUsed(t *testing.T) {
	var evictedKeys []string
	c := NewLRU[string, int](2, func(key string, _ int) {
		evictedKeys = append(evictedKeys, key)
	})

	c.GetOrCreate("a", valueOf(1))
	c.GetOrCreate("b", valueOf(2))
	c.GetOrCreate("a", valueOf(0))
	c.GetOrCreate("c", valueOf(3))

	assert.Equal(t, []string{"b"}, evictedKeys)
	assert.Equal(t, 2, c.Len())

	v, created := c.GetOrCreate("b", valueOf(4))
	assert.True(t, created)
	assert.Equal(t, 4, v)
	assert.Equal(t, []string{"b", "a"}, evictedKeys)
}

func TestLRU_ExistingKeyDoesNotEvict(t *testing.T) {
	evictions := 0
	c := NewLRU[string, int](1, func(string, int) { evictions++ })

	c.GetOrCreate("a", valueOf(1))
	v, created := c.GetOrCreate("a", valueOf(2))

	assert.False(t, created)
	assert.Equal(t, 1, v)
	assert.Zero(t, evictions)
}

func TestLRU_MinimumCapacity(t *testing.T) {
	c := NewLRU[string, int](0, nil)

	c.GetOrCreate("a", valueOf(1))
	c.GetOrCreate("b", valueOf(2))

	assert.Equal(t, 1, c.Len())
}

func TestLRU_Each(t *testing.T) {
	c := NewLRU[string, int](3, nil)
	c.GetOrCreate("a", valueOf(1))
	c.GetOrCreate("b", valueOf(2))
	c.GetOrCreate("c", valueOf(3))
	c.GetOrCreate("a", valueOf(0))

	var keys []string
	c.Each(func(key string, _ int) { keys = append(keys, key) })

	assert.Equal(t, []string{"a", "c", "b"}, keys)
}

func TestLRU_ConcurrentAccess(t *testing.T) {
	c := NewLRU[int, int](50, nil)
	var wg sync.WaitGroup

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				c.GetOrCreate(n*100+j, valueOf(j))
				c.GetOrCreate(n*100+j, valueOf(-1))
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 50, c.Len())
}
