package render

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/glamour"
)

// glamour.TermRenderer is not safe for concurrent Render calls, so renderers
// are pooled per option set instead of shared.
var (
	poolsMu sync.Mutex
	pools   = make(map[Options]*sync.Pool)
)

func poolFor(opts Options) *sync.Pool {
	poolsMu.Lock()
	defer poolsMu.Unlock()

	if pool, ok := pools[opts]; ok {
		return pool
	}
	pool := &sync.Pool{}
	pools[opts] = pool
	return pool
}

// newRenderer creates a TermRenderer for opts
func newRenderer(opts Options) (*glamour.TermRenderer, error) {
	rendererOpts := []glamour.TermRendererOption{
		glamour.WithStylePath(opts.Style),
		glamour.WithWordWrap(opts.Width),
	}
	if opts.PreserveNewLines {
		rendererOpts = append(rendererOpts, glamour.WithPreservedNewLines())
	}

	r, err := glamour.NewTermRenderer(rendererOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	return r, nil
}

// Markdown renders markdown content for terminal display.
// Only trusted text (help and static screens) should go through here;
// chat messages are inserted as plain text.
func Markdown(content string, opts Options) (string, error) {
	pool := poolFor(opts)

	r, _ := pool.Get().(*glamour.TermRenderer)
	if r == nil {
		var err error
		if r, err = newRenderer(opts); err != nil {
			return "", err
		}
	}
	defer pool.Put(r)

	return r.Render(content)
}

// ClearCache drops every pooled renderer.
func ClearCache() {
	poolsMu.Lock()
	defer poolsMu.Unlock()
	pools = make(map[Options]*sync.Pool)
}
