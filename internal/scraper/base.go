// Define the wire and canonical job shapes
// Ensure consistency across sources

package scraper

import (
	"context"
	"fmt"
	"time"
)

// RawJob is one element of the upstream feed payload. The feed controls this
// shape, not us: any field except ID may be missing, and the date may arrive
// as an ISO string, a string-encoded integer, or a numeric epoch.
type RawJob struct {
	ID       any      `json:"id"`
	Slug     string   `json:"slug"`
	Position string   `json:"position"`
	Company  string   `json:"company"`
	Location string   `json:"location"`
	Tags     []string `json:"tags"`
	Date     any      `json:"date"`
	Epoch    any      `json:"epoch"`
}

// IDString renders the feed id as a stable string key regardless of whether
// the feed sent a JSON number or a string.
func (r RawJob) IDString() string {
	switch v := r.ID.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return fmt.Sprintf("%.0f", v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// Job is the canonical posting record shared by the filter, the ledger and
// the Telegram bot.
type Job struct {
	ID       string
	Title    string
	Company  string
	Location string
	PostedAt time.Time //always UTC
	URL      string
}

//Source defines the interface that all feed clients must implement
type Source interface {
	//Fetch raw postings from the feed
	Fetch(ctx context.Context) ([]RawJob, error)

	//Name is the feed name (RemoteOK, ...)
	Name() string
}
