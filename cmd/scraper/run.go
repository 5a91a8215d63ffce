package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gofrs/flock"

	"github.com/okoba/crypto-job-scraper/internal/config"
	"github.com/okoba/crypto-job-scraper/internal/filter"
	"github.com/okoba/crypto-job-scraper/internal/ledger"
	"github.com/okoba/crypto-job-scraper/internal/scraper"
)

// notifier is the subset of the Telegram bot the run sequence needs.
type notifier interface {
	SendJob(ctx context.Context, job scraper.Job) error
	SendStatus(ctx context.Context, message string) error
}

// run executes one full scrape cycle: lock, cursor, fetch, filter, merge,
// notify, cursor save. A held lock or an empty fetch ends the run cleanly
// with no state mutation.
func run(cfg *config.Config, src scraper.Source, bot notifier) error {
	//only one run may touch the ledger at a time; cron overlap just skips
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}
	lock := flock.New(cfg.LockPath())
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire run lock: %w", err)
	}
	if !locked {
		log.Println("⏭️ Another run is in progress. Exiting.")
		return nil
	}
	defer lock.Unlock()

	//fetch gets its own bounded context; the send loop sizes its own below
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	log.Println("🚀 Starting Crypto Job Scraper...")
	now := time.Now().UTC()

	//load cutoff from last run
	cursor := ledger.NewCursor(cfg.CursorPath())
	cutoff := cursor.Load(now, cfg.FallbackWindow())
	log.Printf("🕒 Cutoff: %s", cutoff.Format("2006-01-02 15:04:05 MST"))

	//fetch jobs
	rawJobs, err := src.Fetch(ctx)
	if err != nil {
		log.Printf("⚠️ %s fetch error: %v", src.Name(), err)
	}
	if len(rawJobs) == 0 {
		//no candidates, no state mutation; next run re-covers the window
		log.Println("❌ No jobs fetched.")
		return nil
	}
	log.Printf("🌐 Fetched %d jobs from %s.", len(rawJobs), src.Name())

	//normalize + recency + keyword filter
	matcher := filter.NewMatcher(cfg.Keywords)
	matched := matcher.Select(rawJobs, cutoff, cfg.JobURLBase)
	log.Printf("✅ Matched %d jobs after filtering.", len(matched))

	//merge into ledger, persist before any notification goes out
	store := ledger.NewStore(cfg.LedgerPath())
	existing, err := store.Load()
	if err != nil {
		log.Printf("⚠️ Ledger unreadable, starting empty: %v", err)
	}
	merged, novel := ledger.Merge(existing, matched)
	if err := store.Save(merged); err != nil {
		log.Printf("⚠️ Failed to save ledger: %v", err)
	} else {
		log.Printf("💾 Ledger saved with %d rows at %s.", len(merged), store.Path())
	}

	//notify new jobs, best-effort per message
	if len(novel) > 0 {
		notify(novel, bot)
	} else {
		log.Println("ℹ️ No new jobs to notify.")
	}

	//advance cursor; fetch succeeded, notification outcome is irrelevant
	if err := cursor.Save(now); err != nil {
		log.Printf("⚠️ Failed to save last run timestamp: %v", err)
	}

	log.Println("🏁 Execution finished.")
	return nil
}

// notify dispatches each novel posting best-effort. The deadline scales with
// the batch so the 1 msg/s pacing cannot starve the tail of a large run.
func notify(novel []scraper.Job, bot notifier) {
	timeout := time.Duration(len(novel))*2*time.Second + 30*time.Second
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	log.Printf("📢 Sending %d new jobs to Telegram...", len(novel))
	sent := 0
	for _, job := range novel {
		if err := bot.SendJob(ctx, job); err != nil {
			log.Printf("⚠️ Failed to send job %s to Telegram: %v", job.ID, err)
			continue
		}
		sent++
	}
	statusMsg := fmt.Sprintf("✅ Found %d new crypto jobs, sent %d.", len(novel), sent)
	if err := bot.SendStatus(ctx, statusMsg); err != nil {
		log.Printf("⚠️ Failed to send status to Telegram: %v", err)
	}
}
