package camera

import (
	"context"
	"sync"

	"github.com/tauraamui/dragoneye/pkg/video/videobackend"
)

// Cache memoises enumeration results per probe bound until cleared.
type Cache struct {
	backend videobackend.Backend
	mu      sync.Mutex
	results map[int][]int
}

func NewCache(backend videobackend.Backend) *Cache {
	return &Cache{backend: backend, results: map[int][]int{}}
}

func (c *Cache) Devices(ctx context.Context, maxCameras int) []int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if found, ok := c.results[maxCameras]; ok {
		return append([]int{}, found...)
	}
	found := Enumerate(ctx, c.backend, maxCameras)
	// a cancelled probe may be partial so don't keep it
	if ctx.Err() == nil {
		c.results[maxCameras] = found
	}
	return append([]int{}, found...)
}

func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.results = map[int][]int{}
}
