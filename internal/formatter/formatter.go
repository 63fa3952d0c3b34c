// package formatter renders playlists and their mood analysis as plain text, Markdown, CSV or JSON
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/desertthunder/moodshift/internal/models"
	"github.com/desertthunder/moodshift/internal/shared"
	"github.com/samber/lo"
)

// Format names an output format.
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
	FormatCSV      Format = "csv"
)

// ParseFormat accepts a format name or a common alias ("md", "txt").
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text", "txt", "plain":
		return FormatText, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "json":
		return FormatJSON, nil
	case "csv":
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("%w: unknown format %q", shared.ErrInvalidArgument, s)
	}
}

// Extension returns the file extension used when writing f.
func Extension(f Format) string {
	switch f {
	case FormatText:
		return "txt"
	case FormatMarkdown:
		return "md"
	default:
		return string(f)
	}
}

// FileName returns a playlist id as a single path element.
//
// It refuses any id that would not stay inside the export directory.
func FileName(id string) (string, error) {
	if id == "" || id == "." || id == ".." || strings.ContainsAny(id, `/\`+"\x00") {
		return "", fmt.Errorf("%w: playlist id %q is not a safe file name", shared.ErrInvalidArgument, id)
	}
	return id, nil
}

const dateLayout = "January 2, 2006"

// Bar draws a fixed-width bar for a percentage.
func Bar(percent, width int) string {
	percent = max(0, min(100, percent))
	filled := (percent*width + 50) / 100
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// Render formats one playlist.
func Render(format Format, p models.Playlist) ([]byte, error) {
	switch format {
	case FormatText:
		return ToText(p), nil
	case FormatMarkdown:
		return ToMarkdown(p, ""), nil
	case FormatJSON:
		return ToJSON(p)
	case FormatCSV:
		return ToCSV([]models.Playlist{p})
	default:
		return nil, fmt.Errorf("%w: unknown format %q", shared.ErrInvalidArgument, format)
	}
}

// ToText renders a playlist with its analysis for the terminal.
func ToText(p models.Playlist) []byte {
	var buf bytes.Buffer
	a := p.EmotionalAnalysis

	buf.WriteString(fmt.Sprintf("Playlist: %s\n", p.Name))
	buf.WriteString(fmt.Sprintf("Description: %s\n", p.Summary()))
	buf.WriteString(fmt.Sprintf("Mood: %s (%d%%)\n", a.PrimaryMood, a.IntensityPercent()))
	if a.SecondaryMood != "" {
		buf.WriteString(fmt.Sprintf("Secondary mood: %s\n", a.SecondaryMood))
	}
	if a.MoodDescription != "" {
		buf.WriteString(fmt.Sprintf("Analysis: %s\n", a.MoodDescription))
	}
	if len(a.Keywords) > 0 {
		buf.WriteString(fmt.Sprintf("Keywords: %s\n", strings.Join(a.Keywords, ", ")))
	}

	buf.WriteString("\nAudio features:\n")
	for _, bar := range a.AudioFeatures.Bars() {
		buf.WriteString(fmt.Sprintf("  %-22s %s %3d%%\n", bar.Label, Bar(bar.Percent, 20), bar.Percent))
	}
	buf.WriteString(fmt.Sprintf("  %-22s %s\n", "Tempo", models.FormatTempo(a.AudioFeatures.Tempo)))

	buf.WriteString(fmt.Sprintf("\nTracks: %d\n", p.TrackCount))
	if !p.CreatedAt.IsZero() {
		buf.WriteString(fmt.Sprintf("Created: %s\n", p.CreatedAt.Format(dateLayout)))
	}
	if p.ExternalURL != "" {
		buf.WriteString(fmt.Sprintf("Open: %s\n", p.ExternalURL))
	}

	if p.CurhatanText != "" {
		buf.WriteString(fmt.Sprintf("\nJournal:\n%s\n", p.CurhatanText))
	}

	return buf.Bytes()
}

// ToMarkdown renders a playlist as a Markdown document, with an optional cover image.
func ToMarkdown(p models.Playlist, imageFilename string) []byte {
	var buf bytes.Buffer
	a := p.EmotionalAnalysis

	buf.WriteString(fmt.Sprintf("# %s\n\n", p.Name))

	if imageFilename != "" {
		buf.WriteString(fmt.Sprintf("![Cover](%s)\n\n", imageFilename))
	}

	buf.WriteString(fmt.Sprintf("%s\n\n", p.Summary()))
	buf.WriteString(fmt.Sprintf("**Mood**: %s (%d%%)\n", a.PrimaryMood, a.IntensityPercent()))
	if a.SecondaryMood != "" {
		buf.WriteString(fmt.Sprintf("**Secondary mood**: %s\n", a.SecondaryMood))
	}
	buf.WriteString(fmt.Sprintf("**Tracks**: %d\n", p.TrackCount))
	if !p.CreatedAt.IsZero() {
		buf.WriteString(fmt.Sprintf("**Created**: %s\n", p.CreatedAt.Format(dateLayout)))
	}
	if p.ExternalURL != "" {
		buf.WriteString(fmt.Sprintf("**Open**: [Spotify](%s)\n", p.ExternalURL))
	}

	buf.WriteString("\n## Emotions\n\n")
	if a.MoodDescription != "" {
		buf.WriteString(a.MoodDescription + "\n\n")
	}
	if len(a.Keywords) > 0 {
		tags := lo.Map(a.Keywords, func(k string, _ int) string { return "`" + k + "`" })
		buf.WriteString(fmt.Sprintf("Keywords: %s\n\n", strings.Join(tags, " ")))
	}

	buf.WriteString("| Feature | Value |\n|---|---|\n")
	for _, bar := range a.AudioFeatures.Bars() {
		buf.WriteString(fmt.Sprintf("| %s | %d%% |\n", bar.Label, bar.Percent))
	}
	buf.WriteString(fmt.Sprintf("| Tempo | %s |\n", models.FormatTempo(a.AudioFeatures.Tempo)))

	if p.CurhatanText != "" {
		buf.WriteString("\n## Journal\n\n")
		for _, line := range strings.Split(p.CurhatanText, "\n") {
			buf.WriteString("> " + line + "\n")
		}
	}

	return buf.Bytes()
}

// ToCSV converts playlists to CSV with columns: ID, Name, Mood, Intensity, Tracks, Created, URL
func ToCSV(playlists []models.Playlist) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Name", "Mood", "Intensity", "Tracks", "Created", "URL"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, p := range playlists {
		created := ""
		if !p.CreatedAt.IsZero() {
			created = p.CreatedAt.Format(time.RFC3339)
		}
		record := []string{
			p.ID,
			p.Name,
			p.EmotionalAnalysis.PrimaryMood,
			strconv.Itoa(p.EmotionalAnalysis.IntensityPercent()),
			strconv.Itoa(p.TrackCount),
			created,
			p.ExternalURL,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ToJSON renders v as indented JSON.
func ToJSON(v any) ([]byte, error) {
	return shared.MarshalJSON(v, true)
}

// DownloadImage downloads an image from the given URL and returns the raw bytes
func DownloadImage(client *http.Client, url string) ([]byte, error) {
	if url == "" {
		return nil, fmt.Errorf("%w: empty URL provided", shared.ErrInvalidArgument)
	}

	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}

	resp, err := client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download image: status %d", resp.StatusCode)
	}

	imageData, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}

	return imageData, nil
}

// MarkdownExportResult contains information about files created by WriteMarkdownExport
type MarkdownExportResult struct {
	Directory  string
	Files      []string
	CoverImage string
	// Warning is set when the cover image could not be saved; the export itself succeeded.
	Warning error
}

// WriteMarkdownExport writes {dir}/README.md and, when the playlist has an image, {dir}/cover.jpg.
//
// Directory name defaults to the playlist ID.
func WriteMarkdownExport(client *http.Client, p models.Playlist, outputDir string) (*MarkdownExportResult, error) {
	if outputDir == "" {
		name, err := FileName(p.ID)
		if err != nil {
			return nil, err
		}
		outputDir = name
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	result := &MarkdownExportResult{Directory: outputDir}

	var coverImageFilename string
	if p.ImageURL != "" {
		imageData, err := DownloadImage(client, p.ImageURL)
		if err != nil {
			result.Warning = err
		} else {
			coverImageFilename = "cover.jpg"
			coverImagePath := filepath.Join(outputDir, coverImageFilename)
			if err := os.WriteFile(coverImagePath, imageData, 0644); err != nil {
				result.Warning = fmt.Errorf("failed to save cover image: %w", err)
				coverImageFilename = ""
			} else {
				result.CoverImage = coverImagePath
				result.Files = append(result.Files, coverImagePath)
			}
		}
	}

	mdFile := filepath.Join(outputDir, "README.md")
	if err := os.WriteFile(mdFile, ToMarkdown(p, coverImageFilename), 0644); err != nil {
		return nil, fmt.Errorf("failed to write Markdown file: %w", err)
	}

	result.Files = append(result.Files, mdFile)
	return result, nil
}

// WriteFile renders playlists in format to path. Formats other than CSV and JSON take exactly one playlist.
func WriteFile(format Format, playlists []models.Playlist, path string) error {
	var (
		data []byte
		err  error
	)

	switch format {
	case FormatCSV:
		data, err = ToCSV(playlists)
	case FormatJSON:
		data, err = ToJSON(playlists)
	default:
		if len(playlists) != 1 {
			return fmt.Errorf("%w: %s export takes one playlist, got %d", shared.ErrInvalidArgument, format, len(playlists))
		}
		data, err = Render(format, playlists[0])
	}
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s file: %w", format, err)
	}
	return nil
}
