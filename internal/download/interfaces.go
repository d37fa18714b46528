package download

import (
	"context"

	"github.com/tubefetch/tubefetch/internal/model"
)

// Request describes one transfer: what to fetch, which variant, and where
// the engine should write it. OnProgress is invoked from a worker goroutine;
// the callback must hand samples off to the dispatch side itself.
type Request struct {
	URL            string
	Kind           model.SessionKind
	Height         int    // video transfers: maximum resolution height
	Codec          string // audio transfers: output codec
	OutputTemplate string
	OnProgress     func(model.ProgressSample)
}

// Engine defines the extraction/download surface consumed by the request
// router. Both operations block and are bounded by the coordinator's worker
// pool; they must never be called from the event-dispatch path directly.
type Engine interface {
	// ExtractMetadata resolves a URL into a validated metadata snapshot.
	// Failures are classified model.ExtractionError values.
	ExtractMetadata(ctx context.Context, url string) (*model.Metadata, error)

	// Run executes the transfer to completion or failure. No partial-file
	// retry is attempted; cleanup of transient files is the caller's job.
	Run(ctx context.Context, req *Request) error
}
