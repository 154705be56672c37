package validation

import (
	"net"
	"strings"
	"testing"
)

func TestValidateTagName(t *testing.T) {
	tests := []struct {
		name  string
		valid bool
	}{
		{"nlp", true},
		{"machine learning", true},
		{"text-to-speech", true},
		{"gpt4", true},
		{"", false},
		{"NLP", false},
		{"nlp ", false},
		{" nlp", false},
		{"nlp--vision", false},
		{"nlp,vision", false},
		{"tag_name", false},
		{strings.Repeat("a", 51), false},
	}
	for _, tt := range tests {
		if got := ValidateTagName(tt.name); got != tt.valid {
			t.Errorf("ValidateTagName(%q) = %v, want %v", tt.name, got, tt.valid)
		}
	}
}

func TestValidateToolName(t *testing.T) {
	tests := []struct {
		name  string
		valid bool
	}{
		{"GPT-4", true},
		{"ab", false},
		{"  ab  ", false},
		{strings.Repeat("a", 100), true},
		{strings.Repeat("a", 101), false},
	}
	for _, tt := range tests {
		valid, msg := ValidateToolName(tt.name)
		if valid != tt.valid {
			t.Errorf("ValidateToolName(%q) = %v (%q), want %v", tt.name, valid, msg, tt.valid)
		}
		if !valid && msg == "" {
			t.Errorf("ValidateToolName(%q) rejected with empty message", tt.name)
		}
	}
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		url   string
		valid bool
	}{
		{"https://example.com", true},
		{"http://example.com/path?q=1", true},
		{"", false},
		{"example.com", false},
		{"ftp://example.com", false},
		{"javascript:alert(1)", false},
		{"data:text/html,hi", false},
		{"https://", false},
		{"https://" + strings.Repeat("a", 2048), false},
	}
	for _, tt := range tests {
		valid, msg := ValidateURL(tt.url)
		if valid != tt.valid {
			t.Errorf("ValidateURL(%q) = %v (%q), want %v", tt.url, valid, msg, tt.valid)
		}
	}
}

func TestIsPrivateIP(t *testing.T) {
	tests := []struct {
		ip      string
		private bool
	}{
		{"127.0.0.1", true},
		{"10.0.0.1", true},
		{"172.16.0.1", true},
		{"192.168.1.1", true},
		{"169.254.169.254", true},
		{"168.63.129.16", true},
		{"0.0.0.0", true},
		{"::1", true},
		{"8.8.8.8", false},
		{"93.184.216.34", false},
	}
	for _, tt := range tests {
		if got := IsPrivateIP(net.ParseIP(tt.ip)); got != tt.private {
			t.Errorf("IsPrivateIP(%s) = %v, want %v", tt.ip, got, tt.private)
		}
	}

	if IsPrivateIP(nil) {
		t.Error("IsPrivateIP(nil) = true, want false")
	}
}

func TestValidateURLForHealthCheckRejectsPrivate(t *testing.T) {
	tests := []string{
		"http://localhost:8080",
		"http://127.0.0.1/health",
		"http://169.254.169.254/latest/meta-data/",
	}
	for _, url := range tests {
		if valid, _ := ValidateURLForHealthCheck(url); valid {
			t.Errorf("ValidateURLForHealthCheck(%q) = true, want rejection", url)
		}
	}
}
