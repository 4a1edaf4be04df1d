package download

import (
	"context"

	"github.com/ytget/nobsytdl/internal/model"
)

// Engine is the external extraction/download collaborator.
type Engine interface {
	// ExtractMetadata reads metadata for url without writing any files
	ExtractMetadata(ctx context.Context, url string) (*model.VideoInfoRaw, error)

	// Download fetches the selected streams into params.OutputTemplate
	Download(ctx context.Context, params model.DownloadParams) (*model.DownloadSuccess, error)
}

// Reporter is the one-way status sink consumed by presentation layers.
// Calls for a single job arrive in emission order.
type Reporter interface {
	SetBusy(busy bool)
	SetStatusText(text string)
	ReportResult(outcome Outcome)
}

// Orchestrator is the submission surface presentation layers depend on.
type Orchestrator interface {
	SubmitInfoFetch(url string) (*Job, error)
	SubmitDownload(req model.DownloadRequest) (*Job, error)
	State() model.JobState
	Busy() bool
}
