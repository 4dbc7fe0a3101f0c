package poller

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mixelka/codefetch/internal/parser"
	"github.com/mixelka/codefetch/internal/timestamp"
	"github.com/mixelka/codefetch/pkg/models"
)

// Fetcher retrieves up to limit of the most recent messages for an account.
// Implementations report transport and provider failures as errors; an empty
// mailbox is a successful fetch of zero messages.
type Fetcher interface {
	FetchMessages(ctx context.Context, accountID string, limit int) ([]models.Message, error)
}

// Options tune one poll session. Zero-value fields fall back to the defaults,
// which match the behavior the tool has always had.
type Options struct {
	MaxAttempts   int           // default 5
	RetryDelay    time.Duration // default 10s
	RecencyWindow time.Duration // default 3m
	FetchSize     int           // default 10
	Timezone      string        // default "UTC"
}

// DefaultOptions returns the documented default tuning.
func DefaultOptions() Options {
	return Options{
		MaxAttempts:   5,
		RetryDelay:    10 * time.Second,
		RecencyWindow: 3 * time.Minute,
		FetchSize:     10,
		Timezone:      "UTC",
	}
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.MaxAttempts <= 0 {
		o.MaxAttempts = def.MaxAttempts
	}
	if o.RetryDelay <= 0 {
		o.RetryDelay = def.RetryDelay
	}
	if o.RecencyWindow <= 0 {
		o.RecencyWindow = def.RecencyWindow
	}
	if o.FetchSize <= 0 {
		o.FetchSize = def.FetchSize
	}
	if o.Timezone == "" {
		o.Timezone = def.Timezone
	}
	return o
}

// Outcome is the terminal state of one poll session: either a verification
// code was recovered (Result non-nil) or every attempt was exhausted.
// Exhaustion is a normal negative outcome, not an error.
type Outcome struct {
	Result   *models.VerificationResult
	Attempts int
}

// Found reports whether the session recovered a code.
func (o *Outcome) Found() bool {
	return o.Result != nil
}

// Poller runs the bounded-retry poll session against a fetch backend
type Poller struct {
	fetcher   Fetcher
	extractor *parser.Extractor
	opts      Options
	logger    *slog.Logger

	sleep func(time.Duration)
	now   func() time.Time
}

// New creates a poller over the given fetch backend.
func New(fetcher Fetcher, opts Options, logger *slog.Logger) *Poller {
	return &Poller{
		fetcher:   fetcher,
		extractor: parser.NewExtractor(),
		opts:      opts.withDefaults(),
		logger:    logger.With("component", "poller"),
		sleep:     time.Sleep,
		now:       time.Now,
	}
}

// Poll runs one poll session for the account. Attempts are strictly
// sequential: fetch, rank, check recency, extract, then either finish or
// sleep and try again.
//
// Fetch errors are not retried: a TransportError or ProviderError from the
// backend aborts the session immediately and is returned to the caller, who
// owns the decision whether to start a new session. A missing or stale code
// only consumes the attempt.
func (p *Poller) Poll(ctx context.Context, accountID string) (*Outcome, error) {
	for attempt := 1; ; attempt++ {
		p.logger.Info("polling mailbox", "attempt", attempt, "max_attempts", p.opts.MaxAttempts)

		msgs, err := p.fetcher.FetchMessages(ctx, accountID, p.opts.FetchSize)
		if err != nil {
			return nil, fmt.Errorf("attempt %d: %w", attempt, err)
		}

		if result := p.inspect(msgs, attempt); result != nil {
			p.logger.Info("verification code found",
				"attempt", attempt, "code", result.Code, "from", result.FromAddr)
			return &Outcome{Result: result, Attempts: attempt}, nil
		}

		if attempt >= p.opts.MaxAttempts {
			p.logger.Info("no code found", "attempts", attempt)
			return &Outcome{Attempts: attempt}, nil
		}

		p.logger.Info("waiting before retry", "delay", p.opts.RetryDelay)
		p.sleep(p.opts.RetryDelay)
	}
}

// inspect examines one fetched batch and returns a result when a fresh code
// is present, nil when this attempt should fall through to retry.
func (p *Poller) inspect(msgs []models.Message, attempt int) *models.VerificationResult {
	if len(msgs) == 0 {
		p.logger.Info("mailbox is empty", "attempt", attempt)
		return nil
	}

	ranked := Rank(msgs, p.opts.Timezone)

	// The newest message gates the whole batch: if even it is unreadable or
	// outside the window, the code mail has not arrived yet.
	head := ranked[0]
	age, ok := timestamp.Age(head.CreateTime, p.opts.Timezone, p.now())
	if !ok {
		p.logger.Warn("newest message has unreadable timestamp",
			"attempt", attempt, "subject", head.Subject)
		return nil
	}
	p.logger.Info("newest message",
		"attempt", attempt, "age", age.Round(time.Second), "subject", head.Subject)
	if age > p.opts.RecencyWindow {
		p.logger.Info("newest message outside recency window", "attempt", attempt)
		return nil
	}

	for _, m := range ranked {
		code, found := p.extractor.Extract(m.Subject)
		if !found {
			continue
		}
		// The code mail may not be the newest message; check its own
		// timestamp before trusting it. A stale code is never a success.
		if !p.isRecent(m.CreateTime) {
			p.logger.Info("code found but message is stale",
				"attempt", attempt, "subject", m.Subject)
			return nil
		}
		return &models.VerificationResult{
			Code:     code,
			Time:     m.CreateTime,
			Subject:  m.Subject,
			FromName: m.FromName,
			FromAddr: m.FromAddr,
		}
	}

	p.logger.Info("no code in fetched messages", "attempt", attempt, "count", len(ranked))
	return nil
}

func (p *Poller) isRecent(input any) bool {
	age, ok := timestamp.Age(input, p.opts.Timezone, p.now())
	return ok && age <= p.opts.RecencyWindow
}
