// package testing contains shared testing utilities
package testing

import (
	"errors"
	"io"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/desertthunder/moodshift/internal/models"
)

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

// StaticToken is a token source holding a fixed value
type StaticToken string

func (s StaticToken) Get() (string, bool) {
	return string(s), s != ""
}

// FixedClock returns a clock function that always reports t
func FixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// BrowserRecorder records URLs passed to it in place of opening a browser
type BrowserRecorder struct {
	URLs []string
	Err  error
}

func (b *BrowserRecorder) Open(url string) error {
	b.URLs = append(b.URLs, url)
	return b.Err
}

// UserFixture returns a signed-in user
func UserFixture() models.User {
	created := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)
	return models.User{
		ID:          "u1",
		SpotifyID:   "spotify-u1",
		DisplayName: "Ayu",
		Email:       "ayu@example.com",
		CreatedAt:   created,
		UpdatedAt:   created,
	}
}

// PlaylistFixture returns a generated playlist with the given id
func PlaylistFixture(id string) models.Playlist {
	return models.Playlist{
		ID:           id,
		UserID:       "u1",
		SpotifyID:    "sp-" + id,
		Name:         "MoodShift " + id,
		Description:  "Songs for a heavy day",
		CurhatanText: "Today was long and I feel tired of everything.",
		EmotionalAnalysis: models.EmotionalAnalysis{
			PrimaryMood:     "Sad",
			SecondaryMood:   "Calm",
			MoodIntensity:   0.72,
			MoodDescription: "A quiet, heavy sadness",
			Keywords:        []string{"tired", "long", "heavy"},
			AudioFeatures: models.AudioFeatures{
				Valence:          0.21,
				Energy:           0.34,
				Tempo:            92,
				Danceability:     0.4,
				Acousticness:     0.8,
				Instrumentalness: 0.1,
			},
		},
		TrackCount:  20,
		ExternalURL: "https://open.spotify.com/playlist/sp-" + id,
		CreatedAt:   time.Date(2025, 5, 2, 18, 30, 0, 0, time.UTC),
	}
}

func MustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return wd
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
