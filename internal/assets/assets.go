// Package assets loads artwork images in the background. Requests are fire
// and forget: results arrive on a channel the museum drains once per tick,
// and a failed load simply never resolves its frame.
package assets

import (
	"context"
	"fmt"
	"hash/fnv"
	"image"
	"image/color"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/anthonynsimon/bild/transform"
	_ "golang.org/x/image/webp"
	"golang.org/x/sync/semaphore"

	"virtual-museum/internal/download"
	"virtual-museum/internal/gallery"
)

// Request asks for one artwork's image. Key is echoed back on the result so
// callers can discard answers to stale requests.
type Request struct {
	Key     string
	Artwork gallery.ArtworkRecord
}

// Asset is a decoded artwork image ready for upload.
type Asset struct {
	Image       image.Image
	Width       int
	Height      int
	Placeholder bool
}

// Aspect returns width over height, or 1 for an empty image.
func (a Asset) Aspect() float32 {
	if a.Width <= 0 || a.Height <= 0 {
		return 1
	}
	return float32(a.Width) / float32(a.Height)
}

// Result is the outcome of a Request. Err is set when the load failed.
type Result struct {
	Key       string
	ArtworkID string
	Asset     Asset
	Err       error
}

// Options configures a Loader.
// Workers bounds concurrent decodes. MaxSize downsizes images whose longer
// side exceeds it. CacheDir receives remote downloads.
type Options struct {
	Workers  int64
	MaxSize  int
	CacheDir string
	Client   download.Client
}

// DefaultOptions returns four workers, a 1024px texture budget and a cache under cache/artworks.
func DefaultOptions() Options {
	return Options{Workers: 4, MaxSize: 1024, CacheDir: "cache/artworks"}
}

// Loader decodes artwork images on background goroutines.
type Loader struct {
	opts    Options
	sem     *semaphore.Weighted
	results chan Result
}

// NewLoader returns a loader with the given options.
func NewLoader(opts Options) *Loader {
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	return &Loader{
		opts:    opts,
		sem:     semaphore.NewWeighted(opts.Workers),
		results: make(chan Result, 64),
	}
}

// Results is the channel completed loads are delivered on.
func (l *Loader) Results() <-chan Result {
	return l.results
}

// Load starts loading req in the background. Cancelling ctx abandons the
// load, and its result is never delivered.
func (l *Loader) Load(ctx context.Context, req Request) {
	go func() {
		if err := l.sem.Acquire(ctx, 1); err != nil {
			return
		}
		asset, err := l.load(ctx, req.Artwork)
		l.sem.Release(1)
		if ctx.Err() != nil {
			return
		}
		res := Result{Key: req.Key, ArtworkID: req.Artwork.ID, Asset: asset, Err: err}
		select {
		case l.results <- res:
		case <-ctx.Done():
		}
	}()
}

func (l *Loader) load(ctx context.Context, rec gallery.ArtworkRecord) (Asset, error) {
	if rec.ImageRef == "" {
		return Placeholder(rec.ID), nil
	}
	path := rec.ImageRef
	if download.IsRemote(path) {
		p, err := l.opts.Client.Fetch(ctx, path, l.opts.CacheDir)
		if err != nil {
			return Asset{}, err
		}
		path = p
	}
	f, err := os.Open(path)
	if err != nil {
		return Asset{}, fmt.Errorf("assets: %w", err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return Asset{}, fmt.Errorf("assets: decode %s: %w", rec.ID, err)
	}
	img = Fit(img, l.opts.MaxSize)
	b := img.Bounds()
	return Asset{Image: img, Width: b.Dx(), Height: b.Dy()}, nil
}

// Fit scales img down so its longer side is at most maxSize, keeping aspect.
// Images already within budget are returned as is.
func Fit(img image.Image, maxSize int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxSize <= 0 || (w <= maxSize && h <= maxSize) {
		return img
	}
	if w >= h {
		h = max(1, h*maxSize/w)
		w = maxSize
	} else {
		w = max(1, w*maxSize/h)
		h = maxSize
	}
	return transform.Resize(img, w, h, transform.Linear)
}

var placeholderColors = []color.RGBA{
	{0x34, 0x98, 0xdb, 0xff},
	{0xe7, 0x4c, 0x3c, 0xff},
	{0x2e, 0xcc, 0x71, 0xff},
	{0x9b, 0x59, 0xb6, 0xff},
	{0xf3, 0x9c, 0x12, 0xff},
}

// Placeholder returns a solid 5:4 panel whose colour is derived from id.
func Placeholder(id string) Asset {
	h := fnv.New32a()
	_, _ = h.Write([]byte(id))
	c := placeholderColors[h.Sum32()%uint32(len(placeholderColors))]
	img := image.NewRGBA(image.Rect(0, 0, 80, 64))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: c}, image.Point{}, draw.Src)
	return Asset{Image: img, Width: 80, Height: 64, Placeholder: true}
}
