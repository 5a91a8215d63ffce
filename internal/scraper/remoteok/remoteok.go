package remoteok

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/okoba/crypto-job-scraper/internal/scraper"
)

// Client fetches the RemoteOK JSON feed. The first array element is feed
// metadata (legal notice) and is always discarded.
type Client struct {
	apiURL string
	hc     *http.Client
}

func New(apiURL string, timeout time.Duration) *Client {
	return &Client{
		apiURL: apiURL,
		hc:     &http.Client{Timeout: timeout},
	}
}

func (c *Client) Name() string {
	return "RemoteOK"
}

func (c *Client) Fetch(ctx context.Context) ([]scraper.RawJob, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("remoteok build request: %w", err)
	}
	//the API rejects default Go user agents
	req.Header.Set("User-Agent", "Mozilla/5.0")

	res, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("remoteok get: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, fmt.Errorf("remoteok status %d", res.StatusCode)
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("remoteok read body: %w", err)
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(body, &elems); err != nil {
		return nil, fmt.Errorf("remoteok parse payload: %w", err)
	}
	if len(elems) == 0 {
		return nil, nil
	}

	//skip metadata element, decode the rest one by one so a single bad
	//element cannot sink the whole batch
	jobs := make([]scraper.RawJob, 0, len(elems)-1)
	for _, raw := range elems[1:] {
		var job scraper.RawJob
		if err := json.Unmarshal(raw, &job); err != nil {
			log.Printf("⚠️ Skipping undecodable feed element: %v", err)
			continue
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}
