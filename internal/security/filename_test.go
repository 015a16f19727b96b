package security

import (
	"strings"
	"testing"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"UK123456", "UK123456"},
		{"UK 123/456", "UK_123_456"},
		{"", "unknown"},
		{"///", "unknown"},
		{"..hidden..", "hidden"},
		{"a--b__c.d", "a--b__c.d"},
		{"héllo wörld", "h_llo_w_rld"},
		{"repeat   spaces", "repeat_spaces"},
	}
	for _, tt := range tests {
		if got := SanitizeFilename(tt.in); got != tt.want {
			t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSanitizeFilenameLength(t *testing.T) {
	long := strings.Repeat("a", 500)
	got := SanitizeFilename(long)
	if len(got) > 128 {
		t.Errorf("SanitizeFilename length = %d, want <= 128", len(got))
	}
}
