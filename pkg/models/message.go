package models

// Message is one mailbox entry as returned by a fetch backend.
//
// CreateTime is deliberately loose: providers return epoch seconds, epoch
// milliseconds, ISO strings with an offset, or naive local-time strings,
// sometimes mixed within one response. It is normalized on demand and never
// retained beyond the poll attempt that fetched it.
type Message struct {
	Subject    string `json:"subject"`
	CreateTime any    `json:"createTime"`
	FromName   string `json:"fromName"`
	FromAddr   string `json:"fromAddr"`
	Snippet    string `json:"snippet,omitempty"` // plain-text body preview, diagnostics only
}

// VerificationResult is a successfully recovered verification code.
type VerificationResult struct {
	Code     string
	Time     any
	Subject  string
	FromName string
	FromAddr string
}
