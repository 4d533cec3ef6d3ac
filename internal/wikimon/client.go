package wikimon

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/net/html"
	"golang.org/x/sync/errgroup"

	"github.com/rafa/digimon-searcher/internal/domain"
)

const (
	defaultBaseURL     = "https://wikimon.net"
	defaultConcurrency = 3
	userAgent          = "digimon-searcher/1.0"
)

// Details is what one wiki page yields for a Digimon.
type Details struct {
	URL         string
	Description string
	Image       string
	Attacks     []domain.Attack
}

// Client scrapes wikimon pages for enrichment data.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *zap.SugaredLogger
}

func NewClient(baseURL string, log *zap.SugaredLogger) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		log: log,
	}
}

// PageURL builds the wiki page URL for a Digimon name. Page titles use
// underscores where the name has spaces.
func (c *Client) PageURL(name string) string {
	slug := strings.ReplaceAll(name, " ", "_")
	return c.baseURL + "/" + url.PathEscape(slug)
}

// FetchDetails downloads and scrapes one wiki page. Some names have
// title variants that do not exist on the wiki; the caller treats any
// error here as a per-item miss.
func (c *Client) FetchDetails(ctx context.Context, name string) (*Details, error) {
	pageURL := c.PageURL(name)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request %s: %w", pageURL, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: HTTP %d", pageURL, resp.StatusCode)
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", pageURL, err)
	}

	return &Details{
		URL:         pageURL,
		Description: firstParagraph(doc),
		Image:       mainImage(doc, c.absolutize),
		Attacks:     attackTechniques(doc),
	}, nil
}

// EnrichAll runs the wiki pass over the collection in place with
// bounded concurrency. Best-effort: a failed record keeps its existing
// data and records the error on its wiki ref; the batch continues.
func (c *Client) EnrichAll(ctx context.Context, digimons []domain.Digimon, concurrency int) {
	if concurrency < 1 {
		concurrency = defaultConcurrency
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i := range digimons {
		i := i
		g.Go(func() error {
			c.enrichOne(ctx, &digimons[i])
			return nil
		})
	}
	_ = g.Wait()
}

func (c *Client) enrichOne(ctx context.Context, d *domain.Digimon) {
	details, err := c.FetchDetails(ctx, d.Name)
	if err != nil {
		c.log.Warnw("enrichment failed", "name", d.Name, "error", err)
		d.Wiki = &domain.WikiRef{URL: c.PageURL(d.Name), Error: err.Error()}
		return
	}

	if details.Image != "" {
		// The wiki image replaces the upstream catalog art.
		d.Images = []string{details.Image}
		d.Image = details.Image
	}
	if details.Description != "" {
		d.Description = details.Description
	}
	if len(details.Attacks) > 0 {
		d.Attacks = details.Attacks
	}
	d.Wiki = &domain.WikiRef{URL: details.URL, Image: details.Image}
}

func (c *Client) absolutize(u string) string {
	if u == "" {
		return ""
	}
	if strings.HasPrefix(u, "http") {
		return u
	}
	return c.baseURL + u
}
