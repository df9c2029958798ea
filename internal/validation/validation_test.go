package validation

import (
	"net"
	"strings"
	"testing"

	"linkdeck/internal/models"
)

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		valid   bool
		wantMsg string
	}{
		{"valid https", "https://example.com", true, ""},
		{"valid http", "http://example.com", true, ""},
		{"valid with path", "https://example.com/path/to/page", true, ""},
		{"valid with query", "https://example.com?foo=bar", true, ""},
		{"valid with port", "https://example.com:8080", true, ""},
		{"empty string", "", false, "URL is required"},
		{"javascript scheme", "javascript:alert(1)", false, "URL must use http:// or https:// scheme"},
		{"data scheme", "data:text/html,<script>alert(1)</script>", false, "URL must use http:// or https:// scheme"},
		{"file scheme", "file:///etc/passwd", false, "URL must use http:// or https:// scheme"},
		{"ftp scheme", "ftp://example.com", false, "URL must use http:// or https:// scheme"},
		{"no scheme", "example.com", false, "URL must use http:// or https:// scheme"},
		{"relative url", "/path/to/page", false, "URL must use http:// or https:// scheme"},
		{"uppercase scheme", "HTTPS://example.com", true, ""},
		{"scheme only", "https://", false, "URL must have a valid host"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			valid, msg := ValidateURL(tt.url)
			if valid != tt.valid {
				t.Errorf("ValidateURL(%q) valid = %v, want %v", tt.url, valid, tt.valid)
			}
			if !valid && msg != tt.wantMsg {
				t.Errorf("ValidateURL(%q) msg = %q, want %q", tt.url, msg, tt.wantMsg)
			}
		})
	}
}

func TestValidateOptionalURL(t *testing.T) {
	tests := []struct {
		name  string
		url   string
		valid bool
	}{
		{"empty allowed", "", true},
		{"valid https", "https://example.com/favicon.ico", true},
		{"javascript scheme", "javascript:alert(1)", false},
		{"garbled scheme", "ht!tp://example.com/icon.png", false},
		{"scheme-relative", "//example.com/icon.png", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			valid, _ := ValidateOptionalURL(tt.url)
			if valid != tt.valid {
				t.Errorf("ValidateOptionalURL(%q) valid = %v, want %v", tt.url, valid, tt.valid)
			}
		})
	}
}

func TestValidateTitle(t *testing.T) {
	tests := []struct {
		name  string
		title string
		max   int
		valid bool
	}{
		{"simple", "My Reading List", models.MaxCollectionTitleLen, true},
		{"empty", "", models.MaxCollectionTitleLen, false},
		{"whitespace only", "   ", models.MaxCollectionTitleLen, false},
		{"at limit", strings.Repeat("a", 500), models.MaxTitleLen, true},
		{"over limit", strings.Repeat("a", 501), models.MaxTitleLen, false},
		{"multibyte at limit", strings.Repeat("я", 500), models.MaxTitleLen, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			valid, _ := ValidateTitle(tt.title, tt.max)
			if valid != tt.valid {
				t.Errorf("ValidateTitle(%q, %d) = %v, want %v", tt.title, tt.max, valid, tt.valid)
			}
		})
	}
}

func TestValidateDescription(t *testing.T) {
	if valid, _ := ValidateDescription(strings.Repeat("a", 1000)); !valid {
		t.Error("ValidateDescription() rejected 1000-rune description")
	}
	if valid, _ := ValidateDescription(strings.Repeat("a", 1001)); valid {
		t.Error("ValidateDescription() accepted 1001-rune description")
	}
	if valid, _ := ValidateDescription(""); !valid {
		t.Error("ValidateDescription() rejected empty description")
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"simple", "My Reading List", "my-reading-list"},
		{"punctuation", "AI & ML: Resources!", "ai-ml-resources"},
		{"leading and trailing junk", "  --Hello--  ", "hello"},
		{"collapses runs", "a   b---c", "a-b-c"},
		{"numbers kept", "Top 10 Tools 2026", "top-10-tools-2026"},
		{"no usable chars", "!!!", "collection"},
		{"unicode stripped", "日本語のタイトル", "collection"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Slugify(tt.title); got != tt.want {
				t.Errorf("Slugify(%q) = %q, want %q", tt.title, got, tt.want)
			}
		})
	}
}

func TestSlugifyLongTitle(t *testing.T) {
	got := Slugify(strings.Repeat("word ", 40))
	if len(got) > 80 {
		t.Errorf("Slugify() produced %d chars, want <= 80", len(got))
	}
	if strings.HasSuffix(got, "-") || strings.HasPrefix(got, "-") {
		t.Errorf("Slugify() = %q, has dangling hyphen", got)
	}
}

func TestIsPrivateIP(t *testing.T) {
	tests := []struct {
		name string
		ip   string
		want bool
	}{
		{"loopback", "127.0.0.1", true},
		{"private 10", "10.1.2.3", true},
		{"private 192.168", "192.168.1.1", true},
		{"link local", "169.254.1.1", true},
		{"aws metadata", "169.254.169.254", true},
		{"azure metadata", "168.63.129.16", true},
		{"unspecified", "0.0.0.0", true},
		{"public", "93.184.216.34", false},
		{"public dns", "8.8.8.8", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsPrivateIP(net.ParseIP(tt.ip)); got != tt.want {
				t.Errorf("IsPrivateIP(%s) = %v, want %v", tt.ip, got, tt.want)
			}
		})
	}
}
