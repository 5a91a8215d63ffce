package telegram

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/okoba/crypto-job-scraper/internal/scraper"
)

func TestFormatJob(t *testing.T) {
	job := scraper.Job{
		ID:       "42",
		Title:    "Solidity Engineer (Remote)",
		Company:  "Acme+Labs",
		Location: "Remote",
		PostedAt: time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC),
		URL:      "https://remoteok.com/remote-jobs/42",
	}

	msg := FormatJob(job)

	//MarkdownV2 metacharacters in feed text must be escaped
	assert.Contains(t, msg, `*Solidity Engineer \(Remote\)*`)
	assert.Contains(t, msg, `Acme\+Labs`)
	assert.Contains(t, msg, "2024\\-01\\-01 09:30:00 UTC")
	//the link itself stays raw so Telegram renders it
	assert.Contains(t, msg, "[View Job](https://remoteok.com/remote-jobs/42)")
}

func TestEscapeMarkdown(t *testing.T) {
	got := escapeMarkdown("a_b*c[d]e(f)g.h!i")
	assert.Equal(t, `a\_b\*c\[d\]e\(f\)g\.h\!i`, got)
}

// fakeAPI stands in for the Telegram endpoint so pacing can be exercised
// without the network.
func fakeAPI(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if strings.HasSuffix(r.URL.Path, "/getMe") {
			fmt.Fprint(w, `{"ok":true,"result":{"id":1,"is_bot":true,"first_name":"scraper","username":"scraper_bot"}}`)
			return
		}
		fmt.Fprint(w, `{"ok":true,"result":{"message_id":1,"chat":{"id":1,"type":"private"},"date":1,"text":"ok"}}`)
	}))
}

func TestSendStatusWaitsOnLimiter(t *testing.T) {
	srv := fakeAPI(t)
	defer srv.Close()

	api, err := tgbotapi.NewBotAPIWithClient("TEST", srv.URL+"/bot%s/%s", srv.Client())
	require.NoError(t, err)
	bot := &Bot{
		api:     api,
		chatID:  1,
		limiter: rate.NewLimiter(rate.Every(120*time.Millisecond), 1),
	}

	job := scraper.Job{ID: "1", Title: "Crypto Dev", Company: "Acme", Location: "Remote",
		PostedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), URL: "https://remoteok.com/remote-jobs/1"}

	start := time.Now()
	require.NoError(t, bot.SendJob(context.Background(), job))
	//the status message must queue behind the job message, not skip the line
	require.NoError(t, bot.SendStatus(context.Background(), "done"))
	assert.GreaterOrEqual(t, time.Since(start), 120*time.Millisecond)
}
