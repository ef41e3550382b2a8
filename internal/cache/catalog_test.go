package cache

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetSet(t *testing.T) {
	c := New(time.Minute)

	_, ok := c.Get("missing")
	assert.False(t, ok)

	c.Set("categories", []string{"Pizzas"})
	value, ok := c.Get("categories")
	assert.True(t, ok)
	assert.Equal(t, []string{"Pizzas"}, value)
}

func TestExpiry(t *testing.T) {
	c := New(10 * time.Millisecond)
	c.Set("key", "value")

	_, ok := c.Get("key")
	assert.True(t, ok)

	time.Sleep(20 * time.Millisecond)
	_, ok = c.Get("key")
	assert.False(t, ok)
}

func TestClear(t *testing.T) {
	c := New(time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)

	c.Clear()

	_, ok := c.Get("a")
	assert.False(t, ok)
	_, ok = c.Get("b")
	assert.False(t, ok)
}

func TestConcurrentAccess(t *testing.T) {
	c := New(time.Minute)
	var wg sync.WaitGroup

	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				c.Set("key", j)
				c.Get("key")
			}
		}()
	}
	wg.Wait()

	_, ok := c.Get("key")
	assert.True(t, ok)
}
