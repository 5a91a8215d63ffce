package telegram

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/time/rate"

	"github.com/okoba/crypto-job-scraper/internal/scraper"
)

const messageDateLayout = "2006-01-02 15:04:05 MST"

type Bot struct {
	api     *tgbotapi.BotAPI
	chatID  int64
	limiter *rate.Limiter
}

func NewBot(token string, chatID int64) (*Bot, error) {
	api, err := tgbotapi.NewBotAPIWithClient(token, tgbotapi.APIEndpoint, &http.Client{Timeout: 12 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram bot: %w", err)
	}
	return &Bot{
		api:    api,
		chatID: chatID,
		//1 msg/s keeps a burst of new postings under the API's 429 threshold
		limiter: rate.NewLimiter(rate.Every(time.Second), 1),
	}, nil
}

func escapeMarkdown(text string) string {
	replacer := strings.NewReplacer(
		"_", "\\_", "*", "\\*", "[", "\\[", "]", "\\]", "(", "\\(",
		")", "\\)", "~", "\\~", "`", "\\`", ">", "\\>", "#", "\\#",
		"+", "\\+", "-", "\\-", "=", "\\=", "|", "\\|", "{", "\\{",
		"}", "\\}", ".", "\\.", "!", "\\!",
	)
	return replacer.Replace(text)
}

// FormatJob renders one posting as a MarkdownV2 message. Kept separate from
// sending so the formatting stays testable offline.
func FormatJob(job scraper.Job) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("*%s*\n", escapeMarkdown(job.Title)))
	b.WriteString(fmt.Sprintf("🏢 %s — %s\n", escapeMarkdown(job.Company), escapeMarkdown(job.Location)))
	b.WriteString(fmt.Sprintf("📅 %s\n", escapeMarkdown(job.PostedAt.UTC().Format(messageDateLayout))))
	b.WriteString(fmt.Sprintf("🔗 [View Job](%s)", job.URL))
	return b.String()
}

func (b *Bot) SendJob(ctx context.Context, job scraper.Job) error {
	if err := b.limiter.Wait(ctx); err != nil {
		return err
	}
	msg := tgbotapi.NewMessage(b.chatID, FormatJob(job))
	msg.ParseMode = "MarkdownV2"
	msg.DisableWebPagePreview = true

	_, err := b.api.Send(msg)
	return err
}

func (b *Bot) SendStatus(ctx context.Context, message string) error {
	//status messages ride the same limiter; a summary sent right after a
	//burst of job messages counts against the same 429 threshold
	if err := b.limiter.Wait(ctx); err != nil {
		return err
	}
	msg := tgbotapi.NewMessage(b.chatID, "ℹ️ "+message)
	_, err := b.api.Send(msg)
	return err
}
