package models

import "time"

// Account represents a mailbox account the tool can poll
type Account struct {
	ID           int64     `db:"id"`
	Email        string    `db:"email"`
	AccountID    string    `db:"account_id"`    // provider-side account identifier
	SessionToken string    `db:"session_token"` // API session token
	IMAPServer   string    `db:"imap_server"`   // e.g., imap.gmail.com:993 (imap mode only)
	IMAPPassword string    `db:"imap_password"` // app password (imap mode only)
	CreatedAt    time.Time `db:"created_at"`
	LastUsedAt   time.Time `db:"last_used_at"`
}
