package filter

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/okoba/crypto-job-scraper/internal/scraper"
)

// Matcher holds the normalized keyword set. Matching is pure substring
// containment, case-insensitive, against tags, title and company. A keyword
// buried inside a longer tag still counts.
type Matcher struct {
	keywords []string
}

func NewMatcher(keywords []string) *Matcher {
	normalized := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		kw = normalizeText(strings.TrimSpace(kw))
		if kw != "" {
			normalized = append(normalized, kw)
		}
	}
	return &Matcher{keywords: normalized}
}

func (m *Matcher) Matches(job scraper.RawJob) bool {
	haystacks := make([]string, 0, len(job.Tags)+2)
	for _, tag := range job.Tags {
		haystacks = append(haystacks, normalizeText(tag))
	}
	haystacks = append(haystacks, normalizeText(job.Position), normalizeText(job.Company))

	for _, kw := range m.keywords {
		for _, hay := range haystacks {
			if strings.Contains(hay, kw) {
				return true
			}
		}
	}
	return false
}

// Select runs the full filter pipeline over a fetched batch: normalize the
// timestamp (date field first, epoch as fallback), apply the recency cutoff,
// apply the keyword match, canonicalize. Input order is preserved.
func (m *Matcher) Select(raw []scraper.RawJob, cutoff time.Time, urlBase string) []scraper.Job {
	var matched []scraper.Job
	for _, job := range raw {
		postedAt, err := ParseDate(job.Date)
		if errors.Is(err, ErrMissingDate) {
			postedAt, err = ParseDate(job.Epoch)
		}
		if err != nil {
			log.Printf("⏭️ Skipping job %s: %v", job.IDString(), err)
			continue
		}
		if !postedAt.After(cutoff) {
			continue
		}
		if !m.Matches(job) {
			continue
		}
		matched = append(matched, Canonicalize(job, postedAt, urlBase))
	}
	return matched
}

// Canonicalize builds the canonical posting record for a raw job whose
// timestamp already parsed. Absent company/location get display sentinels;
// the link falls back to the id when the feed sent no slug.
func Canonicalize(job scraper.RawJob, postedAt time.Time, urlBase string) scraper.Job {
	title := job.Position
	if title == "" {
		title = "No title"
	}
	company := job.Company
	if company == "" {
		company = "Unknown"
	}
	location := job.Location
	if location == "" {
		location = "Remote"
	}
	slug := job.Slug
	if slug == "" {
		slug = job.IDString()
	}
	return scraper.Job{
		ID:       job.IDString(),
		Title:    title,
		Company:  company,
		Location: location,
		PostedAt: postedAt.UTC(),
		URL:      urlBase + slug,
	}
}
