package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"github.com/mixelka/codefetch/internal/config"
	"github.com/mixelka/codefetch/internal/database"
	"github.com/mixelka/codefetch/internal/mailapi"
	"github.com/mixelka/codefetch/internal/notify"
	"github.com/mixelka/codefetch/internal/poller"
	"github.com/mixelka/codefetch/internal/receiver"
	"github.com/mixelka/codefetch/pkg/models"
)

func fetchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fetch <email>",
		Short: "Poll the account's mailbox until a fresh verification code arrives",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFetch(args[0])
		},
	}
}

func runFetch(email string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := setupLogger(cfg.LogLevel, cfg.LogFormat)

	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := db.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	account, err := db.GetAccountByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("unknown account %q (register it with \"codefetch add\"): %w", email, err)
	}

	fetcher, err := buildFetcher(cfg, account, logger)
	if err != nil {
		return err
	}

	p := poller.New(fetcher, poller.Options{
		MaxAttempts:   cfg.MaxAttempts,
		RetryDelay:    cfg.RetryDelay,
		RecencyWindow: cfg.RecencyWindow,
		FetchSize:     cfg.FetchSize,
		Timezone:      cfg.Timezone,
	}, logger)

	outcome, err := p.Poll(ctx, account.AccountID)
	if err != nil {
		return fmt.Errorf("poll session aborted: %w", err)
	}

	if err := db.TouchAccount(ctx, account.ID); err != nil {
		logger.Warn("failed to update account usage", "error", err)
	}

	if !outcome.Found() {
		logger.Info(fmt.Sprintf("no code found within %d attempts", outcome.Attempts))
		return nil
	}

	result := outcome.Result
	// stdout carries only the code so the tool can be used in scripts
	fmt.Println(result.Code)

	if cfg.TelegramEnabled() {
		notifyResult(ctx, cfg, result, logger)
	}
	return nil
}

func buildFetcher(cfg *config.Config, account *models.Account, logger *slog.Logger) (poller.Fetcher, error) {
	switch cfg.FetchMode {
	case "imap":
		if account.IMAPPassword == "" {
			return nil, fmt.Errorf("account %q has no IMAP password configured", account.Email)
		}
		return receiver.NewIMAPFetcher(receiver.Config{
			Email:       account.Email,
			Password:    account.IMAPPassword,
			Server:      account.IMAPServer,
			DialTimeout: cfg.IMAPDialTimeout,
		}, logger), nil
	default:
		if cfg.MailAPIURL == "" {
			return nil, fmt.Errorf("MAIL_API_URL is required in api mode")
		}
		client := mailapi.NewClient(mailapi.Config{BaseURL: cfg.MailAPIURL})
		return client.Session(account.SessionToken), nil
	}
}

func notifyResult(ctx context.Context, cfg *config.Config, result *models.VerificationResult, logger *slog.Logger) {
	n, err := notify.New(cfg.TelegramToken, cfg.TelegramChatID)
	if err != nil {
		logger.Warn("failed to create telegram notifier", "error", err)
		return
	}
	if err := n.SendResult(ctx, result); err != nil {
		logger.Warn("failed to send telegram notification", "error", err)
		return
	}
	logger.Info("code sent to telegram", "chat_id", cfg.TelegramChatID)
}

func setupLogger(level, format string) *slog.Logger {
	var handler slog.Handler
	logLevel := parseLevel(level)

	if format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			Level: logLevel,
		})
	} else {
		// Pretty colored output for console
		handler = tint.NewHandler(os.Stderr, &tint.Options{
			Level:      logLevel,
			TimeFormat: time.DateTime,
			NoColor:    false,
		})
	}

	return slog.New(handler)
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
