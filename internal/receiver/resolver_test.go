package receiver

import "testing"

func TestResolveIMAPServer_KnownProviders(t *testing.T) {
	tests := []struct {
		email string
		want  string
	}{
		{"user@gmail.com", "imap.gmail.com:993"},
		{"User@GMAIL.com", "imap.gmail.com:993"},
		{"someone@outlook.com", "outlook.office365.com:993"},
		{"someone@icloud.com", "imap.mail.me.com:993"},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			got, err := ResolveIMAPServer(tt.email)
			if err != nil {
				t.Fatalf("ResolveIMAPServer() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ResolveIMAPServer(%q) = %q, want %q", tt.email, got, tt.want)
			}
		})
	}
}

func TestResolveIMAPServer_InvalidAddress(t *testing.T) {
	for _, email := range []string{"no-at-sign", "two@at@signs", ""} {
		if _, err := ResolveIMAPServer(email); err == nil {
			t.Errorf("ResolveIMAPServer(%q) should fail", email)
		}
	}
}
