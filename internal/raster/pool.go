package raster

import (
	"image"
	"sync"
)

// bufferPool reuses RGBA buffers between frames. Buffers are keyed by size
// and always start at the origin.
type bufferPool struct {
	mu    sync.RWMutex
	sizes map[image.Point]*sync.Pool
}

var buffers = &bufferPool{sizes: make(map[image.Point]*sync.Pool)}

// GetImage returns a cleared w x h buffer.
func GetImage(w, h int) *image.RGBA {
	img := buffers.pool(image.Pt(w, h)).Get().(*image.RGBA)
	clear(img.Pix)
	return img
}

// PutImage returns img to the pool. The caller must not use it afterwards.
func PutImage(img *image.RGBA) {
	if img == nil || img.Rect.Min != (image.Point{}) {
		return
	}
	buffers.pool(img.Rect.Size()).Put(img)
}

func (p *bufferPool) pool(size image.Point) *sync.Pool {
	p.mu.RLock()
	pool, ok := p.sizes[size]
	p.mu.RUnlock()
	if ok {
		return pool
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if pool, ok = p.sizes[size]; !ok {
		pool = &sync.Pool{New: func() any {
			return image.NewRGBA(image.Rectangle{Max: size})
		}}
		p.sizes[size] = pool
	}
	return pool
}
