package database

// Only account/session bindings are stored. Fetched messages and recovered
// codes are never written to disk.
const schema = `
CREATE TABLE IF NOT EXISTS accounts (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    email TEXT NOT NULL UNIQUE,
    account_id TEXT NOT NULL,
    session_token TEXT NOT NULL,
    imap_server TEXT NOT NULL DEFAULT '',
    imap_password TEXT NOT NULL DEFAULT '',
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
    last_used_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_accounts_account_id ON accounts(account_id);
`
