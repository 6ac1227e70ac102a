/*
Package renderer runs image decodes and shader renders off the interactive
thread for GUI front ends. The latest rendered text and the latest error
message are each held in a single shared slot that the caller polls; because
every render is a pure function of the current image and configuration, the
last completed render is always a valid replacement for any earlier one.

The size limits that the core deliberately does not enforce live here: input
files over 15 KiB and palettes over 65536 entries are rejected with a
message before rendering.
*/
package renderer

import (
	"fmt"
	"log"
	"sync"

	"github.com/gammazero/workerpool"

	"github.com/bodgit/dot2shader"
	"github.com/bodgit/dot2shader/glsl"
)

const (
	// MaxFileSize is the accepted image file size in bytes.
	MaxFileSize = 15 << 10
	// MaxPaletteSize is the accepted palette length.
	MaxPaletteSize = 1 << 16
)

// Renderer owns the background worker and the result slots. The zero value
// is not usable; call New.
type Renderer struct {
	pool   *workerpool.WorkerPool
	logger *log.Logger

	mu      sync.Mutex
	art     *dot2shader.PixelArt
	config  glsl.DisplayConfig
	output  string
	message string
}

// New returns a Renderer with the default configuration. A single worker
// serializes renders so the slots always hold the most recent submission.
func New(logger *log.Logger) *Renderer {
	return &Renderer{
		pool:   workerpool.New(1),
		logger: logger,
		config: glsl.DefaultConfig(),
	}
}

// SetImage decodes data in the background and, on success, renders it under
// the current configuration.
func (r *Renderer) SetImage(data []byte) {
	buf := append([]byte(nil), data...)
	r.pool.Submit(func() {
		r.decode(buf)
	})
}

// SetConfig replaces the configuration and re-renders the current image, if
// any, in the background.
func (r *Renderer) SetConfig(config glsl.DisplayConfig) {
	r.pool.Submit(func() {
		r.mu.Lock()
		r.config = config
		art := r.art
		r.mu.Unlock()
		if art != nil {
			r.render(art, config)
		}
	})
}

// Output returns the most recently completed render.
func (r *Renderer) Output() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.output
}

// Message returns the most recent error message, or an empty string.
func (r *Renderer) Message() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.message
}

// PixelArt returns the most recently decoded image, or nil.
func (r *Renderer) PixelArt() *dot2shader.PixelArt {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.art
}

// Stop waits for queued work to finish and releases the worker.
func (r *Renderer) Stop() {
	r.pool.StopWait()
}

func (r *Renderer) fail(message string) {
	r.logger.Println(message)
	r.mu.Lock()
	r.message = message
	r.mu.Unlock()
}

func (r *Renderer) decode(data []byte) {
	if len(data) >= MaxFileSize {
		r.fail(fmt.Sprintf("File size must be less than 15KB. file size: %dKB", len(data)/1024))
		return
	}
	art, err := dot2shader.DecodeBytes(data)
	if err != nil {
		r.fail(err.Error())
		return
	}
	if len(art.Palette()) > MaxPaletteSize {
		r.fail(fmt.Sprintf("Palette size must be no more than %d. Palette size: %d", MaxPaletteSize, len(art.Palette())))
		return
	}
	r.mu.Lock()
	r.art = art
	r.message = ""
	config := r.config
	r.mu.Unlock()
	r.render(art, config)
}

func (r *Renderer) render(art *dot2shader.PixelArt, config glsl.DisplayConfig) {
	output := glsl.Render(art, config)
	r.mu.Lock()
	r.output = output
	r.message = ""
	r.mu.Unlock()
	r.logger.Printf("rendered %d bytes of shader text\n", len(output))
}
