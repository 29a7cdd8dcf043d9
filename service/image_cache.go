package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"catalogo-tienda/logx"
	"catalogo-tienda/models"
	"catalogo-tienda/render"
)

// Preload defaults
const (
	DefaultImageWorkers = 8
	DefaultFetchTimeout = 10 * time.Second
)

// ImageCacheEntry is the outcome of loading one image
type ImageCacheEntry struct {
	Key    string
	Source string
	Data   []byte
	Width  int
	Height int
	OK     bool
	Err    error
}

// CacheStats summarizes a preload
type CacheStats struct {
	Requested int
	Loaded    int
	Failed    int
}

// ImageTask asks for one image to be loaded under Key
type ImageTask struct {
	Key    string
	Source string
}

// ImageCache holds the images of one catalog build, keyed by product id or
// by one of the reserved store keys. It is filled by ImagePreloader and
// read-only afterwards.
type ImageCache struct {
	mu      sync.RWMutex
	entries map[string]ImageCacheEntry
	stats   CacheStats
}

func newImageCache() *ImageCache {
	return &ImageCache{entries: make(map[string]ImageCacheEntry)}
}

func (c *ImageCache) put(e ImageCacheEntry) CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[e.Key] = e
	if e.OK {
		c.stats.Loaded++
	} else {
		c.stats.Failed++
	}
	return c.stats
}

// Lookup returns the entry for key only when it loaded successfully.
// Absence means the caller draws a placeholder.
func (c *ImageCache) Lookup(key string) (ImageCacheEntry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key]
	if !ok || !e.OK {
		return ImageCacheEntry{}, false
	}
	return e, true
}

// Entry returns the recorded outcome for key, failed ones included
func (c *ImageCache) Entry(key string) (ImageCacheEntry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key]
	return e, ok
}

// Image implements render.ImageSource
func (c *ImageCache) Image(key string) (render.Image, bool) {
	e, ok := c.Lookup(key)
	if !ok {
		return render.Image{}, false
	}
	return render.Image{Data: e.Data, Width: e.Width, Height: e.Height}, true
}

// Stats returns the preload counters
func (c *ImageCache) Stats() CacheStats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.stats
}

// ProgressFunc is told how many tasks have finished out of total. Calls are
// serialized.
type ProgressFunc func(done, total int)

// PreloaderOption configures an ImagePreloader
type PreloaderOption func(*ImagePreloader)

// WithWorkers caps the number of concurrent fetches
func WithWorkers(n int) PreloaderOption {
	return func(p *ImagePreloader) {
		if n > 0 {
			p.workers = n
		}
	}
}

// WithFetchTimeout sets the timeout of each individual fetch
func WithFetchTimeout(d time.Duration) PreloaderOption {
	return func(p *ImagePreloader) {
		if d > 0 {
			p.timeout = d
		}
	}
}

// WithProgress registers a progress callback
func WithProgress(fn ProgressFunc) PreloaderOption {
	return func(p *ImagePreloader) {
		p.progress = fn
	}
}

// ImagePreloader fetches and shrinks the images of a build through a
// bounded worker pool
type ImagePreloader struct {
	fetcher   ImageFetcher
	optimizer ImageOptimizer
	workers   int
	timeout   time.Duration
	progress  ProgressFunc
}

// NewImagePreloader creates a preloader
func NewImagePreloader(fetcher ImageFetcher, optimizer ImageOptimizer, opts ...PreloaderOption) *ImagePreloader {
	p := &ImagePreloader{
		fetcher:   fetcher,
		optimizer: optimizer,
		workers:   DefaultImageWorkers,
		timeout:   DefaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ProductImageTasks turns products into load tasks keyed by product id.
// Products without a resolvable image and repeated ids are skipped.
func ProductImageTasks(products []models.Product) []ImageTask {
	seen := make(map[string]bool, len(products))
	tasks := make([]ImageTask, 0, len(products))
	for _, p := range products {
		if seen[p.ID] {
			continue
		}
		seen[p.ID] = true
		if src, ok := ResolveImage(p); ok {
			tasks = append(tasks, ImageTask{Key: p.ID, Source: src})
		}
	}
	return tasks
}

// StoreImageTasks returns the logo and QR code tasks for a store record
func StoreImageTasks(store *models.StoreInfo) []ImageTask {
	if store == nil {
		return nil
	}
	var tasks []ImageTask
	if src, ok := ResolveImageRef(store.Logo); ok {
		tasks = append(tasks, ImageTask{Key: render.LogoKey, Source: src})
	}
	if src, ok := ResolveImageRef(models.NewImageRef(store.QRCodeURL)); ok {
		tasks = append(tasks, ImageTask{Key: render.QRKey, Source: src})
	}
	return tasks
}

// Preload loads the images of products plus any extra tasks. Individual
// failures are logged and recorded; they never fail the batch. When ctx is
// cancelled, tasks not yet started are recorded as failed without running.
func (p *ImagePreloader) Preload(ctx context.Context, products []models.Product, extra ...ImageTask) *ImageCache {
	tasks := append(ProductImageTasks(products), extra...)
	cache := newImageCache()
	cache.stats.Requested = len(tasks)
	if len(tasks) == 0 {
		return cache
	}

	start := time.Now()
	total := len(tasks)
	var progressMu sync.Mutex
	report := func(stats CacheStats) {
		if p.progress == nil {
			return
		}
		progressMu.Lock()
		defer progressMu.Unlock()
		p.progress(stats.Loaded+stats.Failed, total)
	}

	var g errgroup.Group
	g.SetLimit(p.workers)
	for _, task := range tasks {
		if err := ctx.Err(); err != nil {
			report(cache.put(ImageCacheEntry{Key: task.Key, Source: task.Source, Err: fmt.Errorf("%w: %v", models.ErrImageAcquisition, err)}))
			continue
		}
		g.Go(func() error {
			report(cache.put(p.load(ctx, task)))
			return nil
		})
	}
	_ = g.Wait()

	stats := cache.Stats()
	logx.Info().
		Int("requested", stats.Requested).
		Int("loaded", stats.Loaded).
		Int("failed", stats.Failed).
		Dur("elapsed", time.Since(start)).
		Msg("🖼️  Catalog images preloaded")
	return cache
}

func (p *ImagePreloader) load(ctx context.Context, task ImageTask) ImageCacheEntry {
	entry := ImageCacheEntry{Key: task.Key, Source: task.Source}

	fetchCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	data, err := p.fetcher.Fetch(fetchCtx, task.Source)
	if err == nil {
		var img OptimizedImage
		img, err = p.optimizer.Optimize(data)
		if err == nil {
			entry.Data, entry.Width, entry.Height, entry.OK = img.Data, img.Width, img.Height, true
			return entry
		}
	}
	if !errors.Is(err, models.ErrImageAcquisition) {
		err = fmt.Errorf("%w: %v", models.ErrImageAcquisition, err)
	}
	entry.Err = err
	logx.Warn().Err(err).Str("key", task.Key).Str("source", truncateSource(task.Source)).Msg("⚠️  Image unavailable, using placeholder")
	return entry
}

// truncateSource keeps data URIs out of the logs
func truncateSource(src string) string {
	if len(src) > 96 {
		return src[:96] + "..."
	}
	return src
}
