package lang

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/ederatone/drawide/painter"
)

// LineError reports a command line that contributed nothing to the scene.
type LineError struct {
	Line int // 1-based
	Text string
	Err  error
}

func (e LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e LineError) Unwrap() error { return e.Err }

type result struct {
	shape painter.Shape
	err   error
}

// Builder turns a full command buffer into a scene.
type Builder struct {
	log *slog.Logger

	mu    sync.Mutex
	cache map[string]result // nil when caching is off
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithCache memoizes parse results by line text. The resulting scenes are
// the same as without the cache.
func WithCache(enabled bool) BuilderOption {
	return func(b *Builder) {
		if enabled {
			b.cache = make(map[string]result)
		} else {
			b.cache = nil
		}
	}
}

// WithLogger sets the logger used for per-line diagnostics.
func WithLogger(l *slog.Logger) BuilderOption {
	return func(b *Builder) { b.log = l }
}

func NewBuilder(opts ...BuilderOption) *Builder {
	b := &Builder{}
	for _, opt := range opts {
		opt(b)
	}
	if b.log == nil {
		b.log = painter.Logger()
	}
	return b
}

// Rebuild parses every line of text in order and returns the shapes they
// describe together with one LineError per malformed line. The returned
// scene is always freshly allocated; nothing from an earlier call is reused
// except equal shape values.
func (b *Builder) Rebuild(text string) (painter.Scene, []LineError) {
	lines := strings.Split(text, "\n")

	b.mu.Lock()
	defer b.mu.Unlock()

	var (
		scene painter.Scene
		errs  []LineError
		seen  map[string]result
	)
	if b.cache != nil {
		seen = make(map[string]result, len(lines))
	}

	for i, line := range lines {
		r := b.parse(line, seen)
		if r.err != nil {
			errs = append(errs, LineError{Line: i + 1, Text: line, Err: r.err})
			b.log.Debug("command ignored", "line", i+1, "err", r.err)
			continue
		}
		if r.shape != nil {
			scene = append(scene, r.shape)
		}
	}
	if seen != nil {
		b.cache = seen
	}

	b.log.Debug("scene rebuilt", "lines", len(lines), "shapes", len(scene), "errors", len(errs))
	return scene, errs
}

func (b *Builder) parse(line string, seen map[string]result) result {
	if seen == nil {
		sh, err := Parse(line)
		return result{shape: sh, err: err}
	}
	if r, ok := seen[line]; ok {
		return r
	}
	r, ok := b.cache[line]
	if !ok {
		sh, err := Parse(line)
		r = result{shape: sh, err: err}
	}
	seen[line] = r
	return r
}
