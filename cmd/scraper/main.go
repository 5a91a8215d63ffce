package main

import (
	"log"

	"github.com/okoba/crypto-job-scraper/internal/config"
	"github.com/okoba/crypto-job-scraper/internal/scraper/remoteok"
	"github.com/okoba/crypto-job-scraper/internal/telegram"
)

func main() {
	//load config
	cfg := config.Load()
	log.Printf("🔧 Config loaded. Keywords: %v", cfg.Keywords)

	//init telegram bot
	bot, err := telegram.NewBot(cfg.TelegramToken, cfg.TelegramChatID)
	if err != nil {
		log.Fatalf("❌ Failed to init Telegram Bot: %v", err)
	}
	log.Println("🤖 Telegram Bot initialized.")

	src := remoteok.New(cfg.APIURL, cfg.HTTPTimeout())
	if err := run(cfg, src, bot); err != nil {
		log.Fatalf("❌ %v", err)
	}
}
