package views

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/moodshift/internal/models"
	"github.com/desertthunder/moodshift/internal/nav"
	"github.com/desertthunder/moodshift/internal/services"
	"github.com/desertthunder/moodshift/internal/shared"
	"github.com/desertthunder/moodshift/internal/storage"
	"github.com/go-playground/validator/v10"
)

// MinJournalLength is the shortest journal entry, in characters after trimming, that is sent to the backend.
const MinJournalLength = 20

var journalRule = fmt.Sprintf("required,min=%d", MinJournalLength)

// DefaultPlaylistName is the name used when the user leaves it blank.
func DefaultPlaylistName(now time.Time) string {
	return "MoodShift " + now.Format("1/2/2006")
}

// JournalView submits journal entries.
type JournalView struct {
	api       services.API
	session   Session
	pointer   *storage.SessionPointer
	navigator nav.Navigator
	notifier  nav.Notifier
	now       func() time.Time
	logger    *log.Logger
	validate  *validator.Validate

	state state[models.Playlist]
}

func newJournalView(
	api services.API, session Session, pointer *storage.SessionPointer,
	navigator nav.Navigator, notifier nav.Notifier, now func() time.Time, logger *log.Logger,
) *JournalView {
	return &JournalView{
		api:       api,
		session:   session,
		pointer:   pointer,
		navigator: navigator,
		notifier:  notifier,
		now:       now,
		logger:    logger,
		validate:  validator.New(),
	}
}

// Validate reports whether text is long enough to submit.
func (j *JournalView) Validate(text string) error {
	if err := j.validate.Var(strings.TrimSpace(text), journalRule); err != nil {
		return ErrJournalTooShort
	}
	return nil
}

// Submit sends a journal entry and, on success, hands the new playlist to the Analyze view.
//
// Short entries and signed-out users are rejected without a request.
func (j *JournalView) Submit(ctx context.Context, text, name string) (models.Playlist, error) {
	if err := j.Validate(text); err != nil {
		j.state.fail(err)
		j.notifier.Notify(nav.Error("Input too short", fmt.Sprintf("Your entry must be at least %d characters.", MinJournalLength)))
		return models.Playlist{}, err
	}

	if !j.session.IsAuthenticated() {
		j.state.fail(shared.ErrNotAuthenticated)
		j.notifier.Notify(nav.Error("Login required", "Please connect your Spotify account first."))
		return models.Playlist{}, shared.ErrNotAuthenticated
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultPlaylistName(j.now())
	}

	if err := j.pointer.Clear(); err != nil {
		j.logger.Warn("failed to clear session pointer", "error", err)
	}

	j.state.begin()
	res := j.api.CreatePlaylist(ctx, strings.TrimSpace(text), name)
	if !res.Success {
		err := res.Err()
		j.state.fail(err)
		j.notifier.Notify(nav.Error("Error", res.Error))
		return models.Playlist{}, err
	}

	if err := j.pointer.Set(res.Data.ID); err != nil {
		j.logger.Error("failed to store session pointer", "error", err)
	}

	j.state.succeed(res.Data)
	j.logger.Info("playlist created", "id", res.Data.ID, "mood", res.Data.EmotionalAnalysis.PrimaryMood)
	j.notifier.Notify(nav.Success("Analysis complete", "A playlist based on your mood has been created!"))
	j.navigator.Navigate(nav.RouteAnalyze)
	return res.Data, nil
}

func (j *JournalView) Loading() bool { return j.state.isLoading() }

// Err is the error of the last submission, if it failed.
func (j *JournalView) Err() error { return j.state.lastErr() }

// Last returns the playlist created by the last successful submission.
func (j *JournalView) Last() (models.Playlist, bool) { return j.state.get() }

func (j *JournalView) reset() { j.state.reset() }
