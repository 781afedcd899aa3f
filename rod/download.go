package rod

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/time/rate"
)

// fetchImageScript fetches a URL from inside the page and returns its bytes
// base64-encoded. Running the fetch in the page context guarantees cookies,
// TLS session state and anti-bot clearance tokens match the HTML fetch.
const fetchImageScript = `async (url, referer) => {
	const resp = await window.fetch(url, {
		headers: { 'Referer': referer || window.location.href }
	});
	if (!resp.ok) throw new Error('HTTP ' + resp.status);
	const blob = await resp.blob();
	return await new Promise((resolve, reject) => {
		const reader = new FileReader();
		reader.onloadend = () => resolve(reader.result.split(',')[1]);
		reader.onerror = reject;
		reader.readAsDataURL(blob);
	});
}`

// ImageFilename derives the content-addressed filename for an image URL:
// "fig_" + xxhash of the URL + the URL path's extension (default ".png").
// The name is stable across runs, making re-downloads idempotent.
func ImageFilename(url string) string {
	ext := path.Ext(strings.SplitN(url, "?", 2)[0])
	if ext == "" {
		ext = ".png"
	}
	return fmt.Sprintf("fig_%016x%s", xxhash.Sum64String(url), ext)
}

// DownloadImage fetches url from inside the browser context and writes it
// under outputDir/images/ with a content-addressed name. Returns the path
// relative to outputDir, or "" on any failure.
func (s *Session) DownloadImage(ctx context.Context, url, outputDir, referer string) string {
	return downloadImage(ctx, url, outputDir, referer, s.fetchBase64, s.limiter, s.logger)
}

// fetchFunc fetches a URL from inside the page, returning base64 bytes.
type fetchFunc func(ctx context.Context, url, referer string) (string, error)

func (s *Session) fetchBase64(ctx context.Context, url, referer string) (string, error) {
	obj, err := s.page.Context(ctx).Eval(fetchImageScript, url, referer)
	if err != nil {
		return "", err
	}
	return obj.Value.Str(), nil
}

// downloadImage holds the download policy separately from the browser so the
// existence check and failure handling are testable with a fake fetch.
func downloadImage(ctx context.Context, url, outputDir, referer string, fetch fetchFunc, limiter *rate.Limiter, logger *slog.Logger) string {
	if url == "" || strings.HasPrefix(url, "data:") {
		return ""
	}

	filename := ImageFilename(url)
	rel := filepath.Join("images", filename)
	dest := filepath.Join(outputDir, rel)

	// Content-addressed: an existing file is this URL's bytes already.
	if _, err := os.Stat(dest); err == nil {
		return rel
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		logger.Warn("image dir create failed", "dir", filepath.Dir(dest), "err", err)
		return ""
	}

	if limiter != nil {
		if err := limiter.Wait(ctx); err != nil {
			return ""
		}
	}

	b64, err := fetch(ctx, url, referer)
	if err != nil {
		logger.Warn("image fetch failed", "url", url, "err", err)
		return ""
	}
	if b64 == "" {
		logger.Warn("image fetch returned no data", "url", url)
		return ""
	}

	data, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		logger.Warn("image decode failed", "url", url, "err", err)
		return ""
	}

	if err := os.WriteFile(dest, data, 0o644); err != nil {
		logger.Warn("image write failed", "path", dest, "err", err)
		return ""
	}

	return rel
}
