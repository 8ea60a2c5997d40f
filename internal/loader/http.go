package loader

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/iliyamo/circus-schedule/internal/model"
)

// maxBodyBytes caps each catalogue response.
const maxBodyBytes = 16 << 20

// HTTPLoader fetches shows and venues as JSON from two URLs.  The venues
// endpoint may return a bare array or {"venues": [...]}.
type HTTPLoader struct {
	ShowsURL  string
	VenuesURL string
	Client    *http.Client
}

// NewHTTPLoader returns an HTTPLoader whose client times out after
// timeout (zero means no client-side timeout beyond ctx).
func NewHTTPLoader(showsURL, venuesURL string, timeout time.Duration) *HTTPLoader {
	return &HTTPLoader{
		ShowsURL:  showsURL,
		VenuesURL: venuesURL,
		Client:    &http.Client{Timeout: timeout},
	}
}

func (h *HTTPLoader) Load(ctx context.Context) (Dataset, error) {
	showsBody, err := h.fetch(ctx, h.ShowsURL)
	if err != nil {
		return Dataset{}, err
	}
	venuesBody, err := h.fetch(ctx, h.VenuesURL)
	if err != nil {
		return Dataset{}, err
	}
	var ds Dataset
	if ds.Shows, err = decodeJSONList[model.Show](showsBody, "shows"); err != nil {
		return Dataset{}, fmt.Errorf("%s: %w", h.ShowsURL, err)
	}
	if ds.Venues, err = decodeJSONList[model.Venue](venuesBody, "venues"); err != nil {
		return Dataset{}, fmt.Errorf("%s: %w", h.VenuesURL, err)
	}
	return ds, nil
}

func (h *HTTPLoader) fetch(ctx context.Context, url string) ([]byte, error) {
	if url == "" {
		return nil, fmt.Errorf("catalogue url is not configured")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	client := h.Client
	if client == nil {
		client = http.DefaultClient
	}
	res, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s: unexpected status %s", url, res.Status)
	}
	return io.ReadAll(io.LimitReader(res.Body, maxBodyBytes))
}
