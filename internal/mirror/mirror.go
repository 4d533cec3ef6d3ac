package mirror

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/rafa/digimon-searcher/internal/domain"
)

var (
	unsafeChars  = regexp.MustCompile(`[^a-z0-9_\-.]`)
	repeatedRuns = regexp.MustCompile(`_+`)
)

// Mirror downloads record and field images into a local public
// directory and rewrites the references to /static paths, so the
// server can serve the art itself.
type Mirror struct {
	publicDir  string
	httpClient *http.Client
	log        *zap.SugaredLogger
}

func New(publicDir string, log *zap.SugaredLogger) *Mirror {
	return &Mirror{
		publicDir: publicDir,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		log: log,
	}
}

// Run mirrors the primary image of every record plus every field badge
// image, in place. Repeated field images download once. A failed
// download leaves the remote reference untouched and the run continues.
func (m *Mirror) Run(ctx context.Context, digimons []domain.Digimon) error {
	digimonDir := filepath.Join(m.publicDir, "digimon")
	fieldsDir := filepath.Join(m.publicDir, "fields")
	for _, dir := range []string{digimonDir, fieldsDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create image dir: %w", err)
		}
	}

	fieldImages := make(map[string]string)

	for i := range digimons {
		d := &digimons[i]

		if primary := d.PrimaryImage(); primary != "" && !strings.HasPrefix(primary, "/static/") {
			localURL, err := m.download(ctx, primary, digimonDir, d.Name, "/static/digimon/")
			if err != nil {
				m.log.Warnw("digimon image download failed", "name", d.Name, "error", err)
			} else {
				d.Image = localURL
				d.Images = []string{localURL}
			}
		}

		for j := range d.Fields {
			f := &d.Fields[j]
			if f.Image == "" || strings.HasPrefix(f.Image, "/static/") {
				continue
			}
			if local, ok := fieldImages[f.Image]; ok {
				f.Image = local
				continue
			}
			localURL, err := m.download(ctx, f.Image, fieldsDir, f.Name, "/static/fields/")
			if err != nil {
				m.log.Warnw("field image download failed", "field", f.Name, "error", err)
				continue
			}
			fieldImages[f.Image] = localURL
			f.Image = localURL
		}
	}
	return nil
}

func (m *Mirror) download(ctx context.Context, rawURL, dir, name, prefix string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parse image url: %w", err)
	}
	ext := path.Ext(u.Path)
	if ext == "" {
		ext = ".png"
	}
	filename := safeName(name + ext)
	dest := filepath.Join(dir, filename)
	localURL := prefix + filename

	// Already mirrored on a previous run.
	if _, err := os.Stat(dest); err == nil {
		return localURL, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("build request %s: %w", rawURL, err)
	}
	resp, err := m.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch %s: HTTP %d", rawURL, resp.StatusCode)
	}

	out, err := os.Create(dest)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", dest, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		os.Remove(dest)
		return "", fmt.Errorf("write %s: %w", dest, err)
	}
	return localURL, nil
}

// safeName turns an arbitrary display name into a filesystem-safe
// filename.
func safeName(s string) string {
	s = strings.ToLower(s)
	s = unsafeChars.ReplaceAllString(s, "_")
	return repeatedRuns.ReplaceAllString(s, "_")
}
