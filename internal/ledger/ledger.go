package ledger

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/okoba/crypto-job-scraper/internal/scraper"
)

// Stored column set is a stable external contract. The recency sort key is
// derived from date_posted at load time and never persisted.
var columns = []string{"job_id", "title", "company", "location", "date_posted", "link"}

const dateLayout = "2006-01-02 15:04:05 MST"

// Store persists the set of previously observed postings as a CSV file,
// one row per unique job id, rewritten in full each run.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Path() string { return s.path }

// Load reads the full ledger. A missing file is an empty ledger; a corrupt
// file is reported as an error so the caller can decide to start empty.
func (s *Store) Load() ([]scraper.Job, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open ledger: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse ledger: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	jobs := make([]scraper.Job, 0, len(rows)-1)
	for _, row := range rows[1:] { //skip header
		if len(row) != len(columns) {
			return nil, fmt.Errorf("ledger row has %d columns, want %d", len(row), len(columns))
		}
		job := scraper.Job{
			ID:       row[0],
			Title:    row[1],
			Company:  row[2],
			Location: row[3],
			URL:      row[5],
		}
		//rows written before the current format keep a zero PostedAt and
		//simply sort last
		if t, err := time.Parse(dateLayout, row[4]); err == nil {
			job.PostedAt = t.UTC()
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}

// Merge computes the key-unique union of the stored ledger and this run's
// matched postings.
//
// novel is exactly the subset of incoming whose id was absent from existing
// before the merge, in incoming order. On a duplicate id the incoming record
// replaces the stored one, so the ledger reflects the latest observed
// metadata. Merging the same incoming batch twice yields an unchanged union
// and an empty novel slice.
func Merge(existing, incoming []scraper.Job) (merged, novel []scraper.Job) {
	seen := mapset.NewThreadUnsafeSet[string]()
	index := make(map[string]int, len(existing))

	merged = make([]scraper.Job, len(existing))
	copy(merged, existing)
	for i, job := range existing {
		seen.Add(job.ID)
		index[job.ID] = i
	}

	for _, job := range incoming {
		if seen.Contains(job.ID) {
			merged[index[job.ID]] = job
			continue
		}
		seen.Add(job.ID)
		index[job.ID] = len(merged)
		merged = append(merged, job)
		novel = append(novel, job)
	}
	return merged, novel
}

// Save rewrites the ledger in full, most recent postings first. The write
// goes to a temp file in the same directory and is renamed into place so a
// killed run cannot leave a half-written ledger behind.
func (s *Store) Save(jobs []scraper.Job) error {
	sorted := make([]scraper.Job, len(jobs))
	copy(sorted, jobs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].PostedAt.After(sorted[j].PostedAt)
	})

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create ledger directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, "ledger-*.csv")
	if err != nil {
		return fmt.Errorf("create temp ledger: %w", err)
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)
	if err := w.Write(columns); err != nil {
		tmp.Close()
		return fmt.Errorf("write ledger header: %w", err)
	}
	for _, job := range sorted {
		row := []string{
			job.ID,
			job.Title,
			job.Company,
			job.Location,
			job.PostedAt.UTC().Format(dateLayout),
			job.URL,
		}
		if err := w.Write(row); err != nil {
			tmp.Close()
			return fmt.Errorf("write ledger row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("flush ledger: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp ledger: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace ledger: %w", err)
	}
	return nil
}
