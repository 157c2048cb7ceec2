package raster

import (
	"context"
	"errors"

	"github.com/reciply/reciply/internal/layout"
)

// Document is a rendered, self-contained markup document plus the page
// geometry the conversions must honor.
type Document struct {
	HTML string
	Page layout.Page
}

// Artifacts holds both output conversions of one document. Partial results
// are never returned: either both buffers are set or the rasterization
// failed as a whole.
type Artifacts struct {
	PDF []byte
	PNG []byte
}

// ErrEngineFailure wraps rendering-engine launch and execution errors so the
// orchestrator can map them to a generic generation failure.
var ErrEngineFailure = errors.New("rendering engine failure")

// Rasterizer converts a rendered document into its fixed-format outputs.
type Rasterizer interface {
	Rasterize(ctx context.Context, doc Document) (Artifacts, error)
}
