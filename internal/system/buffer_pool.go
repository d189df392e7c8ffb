package system

import (
	"image"
	"sync"
	"sync/atomic"
)

// ImagePool переиспользует кадры *image.RGBA одного размера, чтобы рендер
// видео не нагружал сборщик мусора.
type ImagePool struct {
	mu     sync.RWMutex
	pools  map[image.Rectangle]*sync.Pool
	allocs atomic.Int64
}

// NewImagePool returns an empty pool.
func NewImagePool() *ImagePool {
	return &ImagePool{pools: make(map[image.Rectangle]*sync.Pool)}
}

var globalPool = NewImagePool()

// GetImage returns a frame of the given bounds from the shared pool. Its
// pixels are whatever the previous user left behind.
func GetImage(rect image.Rectangle) *image.RGBA {
	return globalPool.Get(rect)
}

// PutImage hands a frame back to the shared pool.
func PutImage(img *image.RGBA) {
	globalPool.Put(img)
}

// Allocations reports how many frames the shared pool has had to allocate.
func Allocations() int64 {
	return globalPool.Allocations()
}

func (p *ImagePool) pool(rect image.Rectangle) *sync.Pool {
	p.mu.RLock()
	pool, ok := p.pools[rect]
	p.mu.RUnlock()
	if ok {
		return pool
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if pool, ok = p.pools[rect]; ok {
		return pool
	}
	pool = &sync.Pool{
		New: func() any {
			p.allocs.Add(1)
			return image.NewRGBA(rect)
		},
	}
	p.pools[rect] = pool
	return pool
}

func (p *ImagePool) Get(rect image.Rectangle) *image.RGBA {
	return p.pool(rect).Get().(*image.RGBA)
}

// Put ignores nil and sub-images; only frames handed out by Get go back.
func (p *ImagePool) Put(img *image.RGBA) {
	if img == nil || len(img.Pix) != 4*img.Rect.Dx()*img.Rect.Dy() {
		return
	}
	p.mu.RLock()
	pool, ok := p.pools[img.Rect]
	p.mu.RUnlock()
	if ok {
		pool.Put(img)
	}
}

func (p *ImagePool) Allocations() int64 { return p.allocs.Load() }
