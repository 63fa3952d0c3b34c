package server

import (
	"context"
	"html/template"
	"net/http"
	"net/url"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/moodshift/internal/nav"
)

// CallbackProcessor completes a login from the redirect query.
type CallbackProcessor interface {
	Handle(ctx context.Context, query url.Values) error
	// Message is the user-facing failure message after Handle fails.
	Message() string
}

// CallbackResult is the outcome of the OAuth redirect.
type CallbackResult struct {
	err error
}

func (c CallbackResult) Error() error {
	return c.err
}

// CallbackHandler serves /callback once and reports the outcome on [CallbackHandler.Result].
type CallbackHandler struct {
	ctx        context.Context
	processor  CallbackProcessor
	logger     *log.Logger
	resultChan chan CallbackResult
	once       sync.Once

	mu  sync.Mutex
	hit bool
}

var _ Handler = (*CallbackHandler)(nil)

// NewCallbackHandler creates a [CallbackHandler]. The login runs under ctx, not the request context,
// so a browser closing the tab does not abandon it.
func NewCallbackHandler(ctx context.Context, processor CallbackProcessor, logger *log.Logger) *CallbackHandler {
	return &CallbackHandler{
		ctx:        ctx,
		processor:  processor,
		logger:     logger,
		resultChan: make(chan CallbackResult, 1),
	}
}

func (h *CallbackHandler) Routes() []string {
	return []string{nav.RouteCallback.Path()}
}

func (h *CallbackHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	if h.hit {
		h.mu.Unlock()
		http.Error(w, "Callback already processed", http.StatusConflict)
		return
	}
	h.hit = true
	h.mu.Unlock()

	if err := h.processor.Handle(h.ctx, r.URL.Query()); err != nil {
		h.logger.Warn("callback failed", "error", err)
		h.Send(CallbackResult{err: err})
		render(w, http.StatusBadRequest, page{
			Title:   "Authentication Failed",
			Message: h.processor.Message(),
			Hint:    "Return to the terminal and run the login again.",
			Failed:  true,
		})
		return
	}

	h.Send(CallbackResult{})
	render(w, http.StatusOK, page{
		Title:   "Connected to Spotify",
		Message: "You are signed in to MoodShift.",
		Hint:    "You can close this window and return to the terminal.",
	})
}

// Send delivers result once; later calls are ignored.
func (h *CallbackHandler) Send(result CallbackResult) {
	h.once.Do(func() {
		h.resultChan <- result
		close(h.resultChan)
	})
}

// Result receives exactly one result and is then closed.
func (h *CallbackHandler) Result() <-chan CallbackResult {
	return h.resultChan
}

type page struct {
	Title   string
	Message string
	Hint    string
	Failed  bool
}

var pageTemplate = template.Must(template.New("callback").Parse(`<!DOCTYPE html>
<html>
<head>
    <title>{{.Title}}</title>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
               display: flex; align-items: center; justify-content: center; height: 100vh;
               margin: 0; background: #f5f5f5; }
        .container { text-align: center; background: white; padding: 2rem;
                     border-radius: 8px; box-shadow: 0 2px 4px rgba(0,0,0,0.1); }
        h1 { margin: 0 0 1rem 0; color: #7D56F4; }
        h1.failed { color: #E5484D; }
        p { color: #666; margin: 0.25rem 0; }
    </style>
</head>
<body>
    <div class="container">
        <h1{{if .Failed}} class="failed"{{end}}>{{.Title}}</h1>
        <p>{{.Message}}</p>
        <p>{{.Hint}}</p>
    </div>
</body>
</html>
`))

func render(w http.ResponseWriter, status int, p page) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_ = pageTemplate.Execute(w, p)
}
