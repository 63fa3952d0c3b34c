package tasks

import (
	"context"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/moodshift/internal/models"
	"github.com/desertthunder/moodshift/internal/services"
	"github.com/desertthunder/moodshift/internal/shared"
)

// Fetcher loads a single playlist; [services.API] satisfies it.
type Fetcher interface {
	GetPlaylist(ctx context.Context, id string) services.Result[models.Playlist]
}

// Exporter runs bulk exports against the backend.
type Exporter struct {
	api    Fetcher
	client *http.Client
	logger *log.Logger
}

// NewExporter creates an [Exporter]. client is used to download cover images for Markdown exports.
func NewExporter(api Fetcher, client *http.Client, logger *log.Logger) *Exporter {
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Exporter{api: api, client: client, logger: logger}
}

// sendProgress sends a progress update without blocking. Nil channels are ignored.
func (e *Exporter) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}

	select {
	case progress <- update:
	default:
		e.logger.Debug("progress update dropped", "phase", update.Phase, "step", update.Step)
	}
}
