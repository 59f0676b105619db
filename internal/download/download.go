// Package download saves a resolved mp4 rendition to disk.
// Output paths are validated against directory traversal and partial files
// never appear under the final name.
package download

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/schollz/progressbar/v3"

	"streamable/internal/httputil"
	"streamable/internal/media"
)

// Timeout bounds a whole download. Renditions can be large, so this is far
// longer than the API request timeout.
const Timeout = 2 * time.Hour

// Download streams item to outputDir as name.mp4 and returns the final path.
// A nil client selects a hardened client with Timeout. Progress is drawn to
// progress when it is non-nil.
func Download(ctx context.Context, client *http.Client, item *media.Playable, name, outputDir string, progress io.Writer) (string, error) {
	if client == nil {
		client = httputil.NewClient(Timeout)
	}
	if name == "" {
		name = item.Title
	}

	absDir, err := filepath.Abs(outputDir)
	if err != nil {
		return "", fmt.Errorf("resolving output directory: %w", err)
	}
	if err := os.MkdirAll(absDir, 0755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	outputPath, err := httputil.SafeDownloadPath(absDir, httputil.SanitizeFilename(name)+".mp4")
	if err != nil {
		return "", fmt.Errorf("invalid output path: %w", err)
	}

	resp, err := httputil.Get(ctx, client, item.URL.String(), nil)
	if err != nil {
		return "", fmt.Errorf("requesting %s: %w", item.URL.Redacted(), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &httputil.StatusError{StatusCode: resp.StatusCode, URL: item.URL.Redacted()}
	}

	tmpFile, err := os.CreateTemp(absDir, ".streamable-*.part")
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	var w io.Writer = tmpFile
	if progress != nil {
		bar := progressbar.NewOptions64(resp.ContentLength,
			progressbar.OptionSetWriter(progress),
			progressbar.OptionShowBytes(true),
			progressbar.OptionSetDescription(filepath.Base(outputPath)),
			progressbar.OptionClearOnFinish(),
		)
		defer bar.Finish()
		w = io.MultiWriter(tmpFile, bar)
	}

	if _, err := io.Copy(w, resp.Body); err != nil {
		tmpFile.Close()
		os.Remove(tmpPath)
		return "", fmt.Errorf("writing %s: %w", outputPath, err)
	}

	if err := tmpFile.Close(); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tmpPath, outputPath); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("renaming download: %w", err)
	}

	return outputPath, nil
}
