// package formatter exports movie lists to various formats (CSV, Markdown, plain text, JSON)
package formatter

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/desertthunder/myflix/internal/models"
	"github.com/desertthunder/myflix/internal/shared"
)

// Format names accepted by [WriteExport].
const (
	FormatCSV      = "csv"
	FormatMarkdown = "markdown"
	FormatText     = "txt"
	FormatJSON     = "json"
)

// Formats lists every supported export format.
var Formats = []string{FormatCSV, FormatMarkdown, FormatText, FormatJSON}

// ParseFormat normalizes a user-supplied format name.
func ParseFormat(s string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "csv":
		return FormatCSV, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "txt", "text":
		return FormatText, nil
	case "json", "":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: unknown format %q (want one of %s)", shared.ErrInvalidFlag, s, strings.Join(Formats, ", "))
	}
}

// FavoritesToCSV converts movies to CSV with columns: ID, Title, Genre, Director, Birth, Death, Featured, ImagePath
func FavoritesToCSV(movies []models.Movie) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Title", "Genre", "Director", "Birth", "Death", "Featured", "ImagePath"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, m := range movies {
		record := []string{
			m.ID,
			m.Title,
			m.Genre.Name,
			m.Director.Name,
			m.Director.Birth.String(),
			m.Director.Death.String(),
			strconv.FormatBool(m.Featured),
			m.ImagePath,
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

// FavoritesToMarkdown renders a titled list. posters maps movie ids to local image filenames.
func FavoritesToMarkdown(title string, movies []models.Movie, posters map[string]string) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "# %s\n\n", title)
	fmt.Fprintf(&buf, "**Movies**: %d\n\n", len(movies))

	for i, m := range movies {
		fmt.Fprintf(&buf, "## %d. %s\n\n", i+1, m.Title)
		if img, ok := posters[m.ID]; ok {
			fmt.Fprintf(&buf, "![%s](%s)\n\n", m.Title, img)
		}
		if m.Description != "" {
			fmt.Fprintf(&buf, "%s\n\n", m.Description)
		}
		if m.Genre.Name != "" {
			fmt.Fprintf(&buf, "- **Genre**: %s\n", m.Genre.Name)
		}
		if m.Director.Name != "" {
			director := m.Director.Name
			if span := m.Director.Lifespan(); span != "" {
				director += " (" + span + ")"
			}
			fmt.Fprintf(&buf, "- **Director**: %s\n", director)
		}
		buf.WriteString("\n")
	}

	return buf.Bytes(), nil
}

// FavoritesToText converts movies to a numbered plain text list.
func FavoritesToText(title string, movies []models.Movie) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "%s\n", title)
	fmt.Fprintf(&buf, "Movies: %d\n\n", len(movies))

	for i, m := range movies {
		line := fmt.Sprintf("%d. %s", i+1, m.Title)
		if m.Director.Name != "" {
			line += " - " + m.Director.Name
		}
		if m.Genre.Name != "" {
			line += " [" + m.Genre.Name + "]"
		}
		buf.WriteString(line + "\n")
	}

	return buf.Bytes(), nil
}

// DownloadImage downloads an image from the given URL and returns the raw bytes
func DownloadImage(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	if url == "" {
		return nil, fmt.Errorf("empty URL provided")
	}
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create image request: %w", err)
	}

	resp, err := client.Do(req)
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

// ExportOptions configures [WriteExport].
type ExportOptions struct {
	Title string
	// Posters downloads each movie's image next to a Markdown export.
	Posters bool
	Client  *http.Client
	// Warn receives non-fatal problems such as failed poster downloads.
	Warn func(msg string, kv ...any)
}

// ExportResult lists the files written by [WriteExport].
type ExportResult struct {
	Format string
	Files  []string
}

// WriteExport writes movies in format to dest.
//
// Markdown exports treat dest as a directory and write {dest}/README.md plus optional posters.
// Every other format writes a single file at dest.
func WriteExport(ctx context.Context, movies []models.Movie, format, dest string, opts ExportOptions) (*ExportResult, error) {
	format, err := ParseFormat(format)
	if err != nil {
		return nil, err
	}
	if dest == "" {
		return nil, fmt.Errorf("%w: output path", shared.ErrMissingArgument)
	}
	if opts.Title == "" {
		opts.Title = "Favorite Movies"
	}
	if opts.Warn == nil {
		opts.Warn = func(string, ...any) {}
	}

	result := &ExportResult{Format: format}

	if format == FormatMarkdown {
		files, err := writeMarkdownExport(ctx, movies, dest, opts)
		if err != nil {
			return nil, err
		}
		result.Files = files
		return result, nil
	}

	var data []byte
	switch format {
	case FormatCSV:
		data, err = FavoritesToCSV(movies)
	case FormatText:
		data, err = FavoritesToText(opts.Title, movies)
	default:
		data, err = shared.MarshalJSON(movies, true)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to generate %s: %w", format, err)
	}

	if dir := filepath.Dir(dest); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}
	if err := os.WriteFile(dest, data, 0644); err != nil {
		return nil, fmt.Errorf("failed to write %s file: %w", format, err)
	}

	result.Files = []string{dest}
	return result, nil
}

func writeMarkdownExport(ctx context.Context, movies []models.Movie, dir string, opts ExportOptions) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	var files []string
	posters := make(map[string]string)
	if opts.Posters {
		for _, m := range movies {
			if m.ImagePath == "" {
				continue
			}
			imageData, err := DownloadImage(ctx, opts.Client, m.ImagePath)
			if err != nil {
				opts.Warn("failed to download poster", "movie", m.Title, "error", err)
				continue
			}

			name := posterFilename(m)
			imagePath := filepath.Join(dir, name)
			if err := os.WriteFile(imagePath, imageData, 0644); err != nil {
				opts.Warn("failed to save poster", "movie", m.Title, "error", err)
				continue
			}
			posters[m.ID] = name
			files = append(files, imagePath)
		}
	}

	mdData, err := FavoritesToMarkdown(opts.Title, movies, posters)
	if err != nil {
		return nil, fmt.Errorf("failed to generate Markdown: %w", err)
	}

	mdFile := filepath.Join(dir, "README.md")
	if err := os.WriteFile(mdFile, mdData, 0644); err != nil {
		return nil, fmt.Errorf("failed to write Markdown file: %w", err)
	}

	return append(files, mdFile), nil
}

// posterFilename keeps the image's extension, defaulting to .jpg.
func posterFilename(m models.Movie) string {
	ext := strings.ToLower(path.Ext(strings.SplitN(m.ImagePath, "?", 2)[0]))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp":
	default:
		ext = ".jpg"
	}
	return m.ID + ext
}
