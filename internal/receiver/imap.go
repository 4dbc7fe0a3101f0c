package receiver

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"log/slog"
	"net"
	"strings"
	"time"

	"github.com/emersion/go-imap"
	"github.com/emersion/go-imap/client"
	"github.com/emersion/go-message/mail"

	"github.com/mixelka/codefetch/internal/parser"
	"github.com/mixelka/codefetch/pkg/models"
)

// Config for the IMAP fetcher
type Config struct {
	Email       string
	Password    string
	Server      string // host:port; resolved from the email address when empty
	DialTimeout time.Duration
}

// IMAPFetcher fetches recent messages over IMAP for accounts that are not
// reachable through the provider's HTTP API. Each fetch is a full
// connect/login/fetch/logout cycle; nothing is kept between poll attempts.
type IMAPFetcher struct {
	config    Config
	snippeter *parser.HTMLSnippeter
	logger    *slog.Logger
}

// NewIMAPFetcher creates a new IMAP fetcher
func NewIMAPFetcher(cfg Config, logger *slog.Logger) *IMAPFetcher {
	return &IMAPFetcher{
		config:    cfg,
		snippeter: parser.NewHTMLSnippeter(),
		logger:    logger.With("component", "imap_fetcher", "email", cfg.Email),
	}
}

// FetchMessages implements the poller's Fetcher interface. The accountID is
// unused here: the configured mailbox is the account. Returns the last limit
// messages of the INBOX, unordered; the caller ranks them.
func (f *IMAPFetcher) FetchMessages(ctx context.Context, _ string, limit int) ([]models.Message, error) {
	server := f.config.Server
	if server == "" {
		resolved, err := ResolveIMAPServer(f.config.Email)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve IMAP server: %w", err)
		}
		server = resolved
	}

	timeout := f.config.DialTimeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	f.logger.Debug("connecting to IMAP server", "server", server)
	dialer := &net.Dialer{Timeout: timeout}
	conn, err := tls.DialWithDialer(dialer, "tcp", server, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to connect: %w", err)
	}

	c, err := client.New(conn)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create IMAP client: %w", err)
	}
	defer c.Logout()

	if err := c.Login(f.config.Email, f.config.Password); err != nil {
		return nil, fmt.Errorf("failed to login: %w", err)
	}

	mbox, err := c.Select("INBOX", true)
	if err != nil {
		return nil, fmt.Errorf("failed to select INBOX: %w", err)
	}
	if mbox.Messages == 0 {
		return nil, nil
	}

	from := uint32(1)
	if mbox.Messages > uint32(limit) {
		from = mbox.Messages - uint32(limit) + 1
	}
	seqSet := new(imap.SeqSet)
	seqSet.AddRange(from, mbox.Messages)

	section := &imap.BodySectionName{Peek: true}
	items := []imap.FetchItem{imap.FetchEnvelope, section.FetchItem()}

	ch := make(chan *imap.Message, limit)
	done := make(chan error, 1)
	go func() {
		done <- c.Fetch(seqSet, items, ch)
	}()

	var msgs []models.Message
	for msg := range ch {
		msgs = append(msgs, f.toMessage(msg, section))
	}
	if err := <-done; err != nil {
		return nil, fmt.Errorf("failed to fetch: %w", err)
	}

	return msgs, nil
}

func (f *IMAPFetcher) toMessage(msg *imap.Message, section *imap.BodySectionName) models.Message {
	var m models.Message

	if msg.Envelope != nil {
		m.Subject = msg.Envelope.Subject
		m.CreateTime = msg.Envelope.Date
		if len(msg.Envelope.From) > 0 {
			from := msg.Envelope.From[0]
			m.FromName = from.PersonalName
			m.FromAddr = from.Address()
		}
	}

	if body := msg.GetBody(section); body != nil {
		m.Snippet = f.snippet(body)
	}

	return m
}

// snippet extracts a short plain-text preview from the message body, for
// progress output only. Parse failures degrade to an empty snippet.
func (f *IMAPFetcher) snippet(body io.Reader) string {
	mr, err := mail.CreateReader(body)
	if err != nil {
		f.logger.Debug("failed to create mail reader", "error", err)
		return ""
	}

	var html string
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			f.logger.Debug("failed to read part", "error", err)
			break
		}

		h, ok := part.Header.(*mail.InlineHeader)
		if !ok {
			continue
		}
		ct, _, _ := h.ContentType()
		data, err := io.ReadAll(part.Body)
		if err != nil {
			continue
		}

		if strings.HasPrefix(ct, "text/plain") {
			return strings.TrimSpace(string(data))
		}
		if strings.HasPrefix(ct, "text/html") && html == "" {
			html = string(data)
		}
	}

	return f.snippeter.Snippet(html)
}
