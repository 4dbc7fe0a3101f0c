package parser

import "testing"

func TestExtractor_Extract(t *testing.T) {
	e := NewExtractor()

	tests := []struct {
		name    string
		subject string
		want    string
		found   bool
	}{
		{"english", "Your code is 654321", "654321", true},
		{"english verification", "Your verification code is 111222", "111222", true},
		{"english colon", "Code: 482913", "482913", true},
		{"chinese", "你的验证码为 123456", "123456", true},
		{"chinese no separator", "验证码123456，请勿泄露", "123456", true},
		{"spanish", "Tu código es 000000", "000000", true},
		{"spanish full", "Tu código de verificación es 987654", "987654", true},
		{"no lead-in phrase", "order 123456 shipped", "", false},
		{"bare number", "123456", "", false},
		{"five digits", "Your code is 12345", "", false},
		{"seven digits", "Your code is 1234567", "", false},
		{"empty subject", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := e.Extract(tt.subject)
			if found != tt.found {
				t.Fatalf("Extract(%q) found = %v, want %v", tt.subject, found, tt.found)
			}
			if got != tt.want {
				t.Errorf("Extract(%q) = %q, want %q", tt.subject, got, tt.want)
			}
		})
	}
}
