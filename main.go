package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/superior-auto/frontdesk/internal/agent"
	"github.com/superior-auto/frontdesk/internal/channel"
	"github.com/superior-auto/frontdesk/internal/claude"
	"github.com/superior-auto/frontdesk/internal/config"
	"github.com/superior-auto/frontdesk/internal/database"
	"github.com/superior-auto/frontdesk/internal/gcal"
	"github.com/superior-auto/frontdesk/internal/notify"
	"github.com/superior-auto/frontdesk/internal/schedule"
	"github.com/superior-auto/frontdesk/internal/session"
	"github.com/superior-auto/frontdesk/internal/timeutil"
	"github.com/superior-auto/frontdesk/internal/usage"
)

func main() {
	cfg := config.LoadFromEnv()

	shop, err := config.LoadShop(cfg.ShopConfigPath)
	if err != nil {
		fatal("loading shop config", err)
	}

	db, err := database.New(cfg.DBPath)
	if err != nil {
		fatal("creating database", err)
	}
	defer db.Close()

	loc, fellBack := timeutil.ResolveLocation(shop.Timezone)
	if fellBack {
		fmt.Printf("Warning: unknown timezone %q, using UTC\n", shop.Timezone)
	}

	classifier := initClassifier(cfg)
	guard := usage.NewGuard(db, usage.DefaultCostPer1KTokens, cfg.UsageLimitDollars)
	notifyService := initNotifyService(cfg)
	mirror := initCalendarMirror(cfg, shop.Timezone)

	receptionist := agent.New(shop, db, schedule.NewEngine(db), guard, classifier, notifyService, mirror, loc)

	ch := initChannel(cfg)

	fmt.Printf("\n%s - AI Receptionist\n\n", shop.ShopName)
	phone := collectPhoneNumber(ch)

	sess := session.New(phone)
	if err := db.StartCall(sess.ID, phone); err != nil {
		fatal("starting call record", err)
	}

	runCall(receptionist, sess, ch)

	if err := db.EndCall(sess.ID, sess.Escalated, sess.Slots); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to close call record: %v\n", err)
	}
	printCallSummary(db, guard, sess.ID)
}

// printCallSummary reports the closed call record and the running classifier
// spend, the two numbers a shop operator checks after each call.
func printCallSummary(db *database.DB, guard *usage.Guard, callID string) {
	fmt.Println("Call session ended.")

	record, err := db.GetCall(callID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load call record: %v\n", err)
		return
	}
	spend, err := guard.TotalCost()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to read usage total: %v\n", err)
		return
	}
	fmt.Printf("Call %s from %s (escalated=%v), classifier spend to date $%.4f\n",
		record.ID, record.CallerRef, record.Escalated, spend)
}

// runCall drives the turn loop until the caller hangs up or the session
// escalates to a human.
func runCall(r *agent.Receptionist, sess *session.Session, ch channel.Channel) {
	ctx := context.Background()
	ch.Prompt(r.Greeting())

	for {
		input, err := ch.Collect("> ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: channel error: %v\n", err)
			return
		}
		input = strings.TrimSpace(input)
		if input == "" || strings.EqualFold(input, "exit") || strings.EqualFold(input, "bye") {
			ch.Prompt("Goodbye!")
			return
		}

		r.ProcessInteraction(ctx, input, sess, ch)
		if sess.Escalated {
			return
		}
	}
}

// collectPhoneNumber keeps asking until the caller reference looks like an
// international number.
func collectPhoneNumber(ch channel.Channel) string {
	for {
		phone, err := ch.Collect("Enter customer's phone number (e.g., +1-647-555-1234): ")
		if err != nil {
			fatal("reading phone number", err)
		}
		phone = strings.TrimSpace(phone)
		if strings.HasPrefix(phone, "+") && len(phone) >= 10 {
			return phone
		}
		ch.Prompt("Invalid phone number. Please enter again.")
	}
}

func initClassifier(cfg *config.Env) *claude.Client {
	if cfg.AnthropicAPIKey == "" {
		fmt.Println("Warning: ANTHROPIC_API_KEY not set, confirmation fallback disabled")
		return nil
	}
	fmt.Println("Confirmation classifier configured (Claude)")
	return claude.NewClient(cfg.AnthropicAPIKey, cfg.ClaudeModel, cfg.ClaudeTemperature)
}

func initNotifyService(cfg *config.Env) *notify.Service {
	if cfg.ResendAPIKey == "" || cfg.NotifyToAddress == "" {
		return nil
	}
	emailNotifier := notify.NewResendNotifier(cfg.ResendAPIKey, cfg.NotifyFromAddress)
	fmt.Println("Email notification service configured (Resend)")
	return notify.NewService(emailNotifier, cfg.NotifyToAddress)
}

func initCalendarMirror(cfg *config.Env, timezone string) *gcal.Mirror {
	client, err := gcal.NewClient(context.Background(), cfg.GoogleCredentialsFile, cfg.GoogleTokenFile)
	if err != nil || !client.IsAuthenticated() {
		fmt.Println("Google Calendar mirror not configured")
		return nil
	}
	fmt.Println("Google Calendar mirror configured")
	return gcal.NewMirror(client, cfg.GoogleCalendarID, timezone)
}

func initChannel(cfg *config.Env) channel.Channel {
	if cfg.TelegramToken != "" && cfg.TelegramChatID != 0 {
		tg, err := channel.NewTelegram(cfg.TelegramToken, cfg.TelegramChatID)
		if err == nil {
			fmt.Println("Telegram channel configured")
			return tg
		}
		fmt.Printf("Warning: Failed to create Telegram channel: %v\n", err)
	}
	return channel.NewConsole()
}

func fatal(context string, err error) {
	fmt.Fprintf(os.Stderr, "Error %s: %v\n", context, err)
	os.Exit(1)
}
