package digiapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/rafa/digimon-searcher/internal/domain"
)

const (
	defaultBaseURL     = "https://digi-api.com/api/v1"
	defaultConcurrency = 10
	listPageSize       = 100
)

// Client talks to the upstream digi-api catalog.
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
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		log: log,
	}
}

type listResponse struct {
	Content []struct {
		ID int `json:"id"`
	} `json:"content"`
	Pageable struct {
		TotalPages int `json:"totalPages"`
	} `json:"pageable"`
}

type detailResponse struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Levels []struct {
		Level string `json:"level"`
	} `json:"levels"`
	Types []struct {
		Type string `json:"type"`
	} `json:"types"`
	Attributes []struct {
		Attribute string `json:"attribute"`
	} `json:"attributes"`
	Fields []struct {
		Field string `json:"field"`
		Image string `json:"image"`
	} `json:"fields"`
	Images []struct {
		Href string `json:"href"`
	} `json:"images"`
}

// FetchAllIDs walks the paginated catalog listing and collects every
// Digimon ID.
func (c *Client) FetchAllIDs(ctx context.Context) ([]int, error) {
	first, err := c.fetchPage(ctx, 1)
	if err != nil {
		return nil, err
	}

	ids := make([]int, 0, len(first.Content)*first.Pageable.TotalPages)
	for _, d := range first.Content {
		ids = append(ids, d.ID)
	}
	for p := 2; p <= first.Pageable.TotalPages; p++ {
		page, err := c.fetchPage(ctx, p)
		if err != nil {
			return nil, err
		}
		for _, d := range page.Content {
			ids = append(ids, d.ID)
		}
	}
	return ids, nil
}

// FetchDetail fetches one Digimon's detail record and maps it into the
// local shape.
func (c *Client) FetchDetail(ctx context.Context, id int) (*domain.Digimon, error) {
	var detail detailResponse
	url := fmt.Sprintf("%s/digimon/%d", c.baseURL, id)
	if err := c.getJSON(ctx, url, &detail); err != nil {
		return nil, err
	}
	d := detail.toDomain()
	return &d, nil
}

// SyncAll rebuilds the whole catalog: ID discovery, then detail
// fetches with bounded concurrency. A failed item is logged and
// skipped; it never aborts the batch. The result is sorted by name.
func (c *Client) SyncAll(ctx context.Context, concurrency int) ([]domain.Digimon, error) {
	if concurrency < 1 {
		concurrency = defaultConcurrency
	}
	log := c.log.With("run_id", uuid.NewString())

	ids, err := c.FetchAllIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("discover catalog: %w", err)
	}
	log.Infow("catalog ids collected", "count", len(ids))

	results := make([]*domain.Digimon, len(ids))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			d, err := c.FetchDetail(ctx, id)
			if err != nil {
				log.Warnw("skipping digimon", "id", id, "error", err)
				return nil
			}
			results[i] = d
			return nil
		})
	}
	// Workers swallow per-item errors, so Wait only reflects context
	// cancellation.
	if err := g.Wait(); err != nil {
		return nil, err
	}

	digimons := make([]domain.Digimon, 0, len(results))
	for _, d := range results {
		if d != nil {
			digimons = append(digimons, *d)
		}
	}
	sort.Slice(digimons, func(i, j int) bool {
		return digimons[i].Name < digimons[j].Name
	})

	log.Infow("sync complete", "synced", len(digimons), "failed", len(ids)-len(digimons))
	return digimons, nil
}

func (c *Client) fetchPage(ctx context.Context, page int) (*listResponse, error) {
	var list listResponse
	url := fmt.Sprintf("%s/digimon?page=%d&pageSize=%d", c.baseURL, page, listPageSize)
	if err := c.getJSON(ctx, url, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

func (c *Client) getJSON(ctx context.Context, url string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build request %s: %w", url, err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch %s: HTTP %d", url, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode %s: %w", url, err)
	}
	return nil
}

// toDomain maps an upstream detail record into the local shape: the
// wrapper arrays collapse into plural string slices and the singular
// legacy fields mirror the first element.
func (r detailResponse) toDomain() domain.Digimon {
	d := domain.Digimon{
		ID:     r.ID,
		Name:   r.Name,
		Source: "digi-api.com",
	}
	for _, l := range r.Levels {
		if l.Level != "" {
			d.Levels = append(d.Levels, l.Level)
		}
	}
	for _, t := range r.Types {
		if t.Type != "" {
			d.Types = append(d.Types, t.Type)
		}
	}
	for _, a := range r.Attributes {
		if a.Attribute != "" {
			d.Attributes = append(d.Attributes, a.Attribute)
		}
	}
	for _, f := range r.Fields {
		if f.Field != "" {
			d.Fields = append(d.Fields, domain.FieldDetail{Name: f.Field, Image: f.Image})
		}
	}
	for _, img := range r.Images {
		if img.Href != "" {
			d.Images = append(d.Images, img.Href)
		}
	}
	if len(d.Levels) > 0 {
		d.Level = d.Levels[0]
	}
	if len(d.Types) > 0 {
		d.Type = d.Types[0]
	}
	if len(d.Attributes) > 0 {
		d.Attribute = d.Attributes[0]
	}
	if len(d.Images) > 0 {
		d.Image = d.Images[0]
	}
	return d
}
