package email

import (
	"strings"
	"testing"

	"toolhub/internal/config"
	"toolhub/internal/models"
)

func testTemplates() *Templates {
	return NewTemplates(&config.Config{
		SiteTitle: "ToolHub",
		BaseURL:   "https://tools.example.com",
	})
}

func TestRequestSubmittedForReview(t *testing.T) {
	req := &models.ToolRequest{
		Name:        "Whisper",
		URL:         "https://example.com/whisper",
		Description: "Speech to text",
		Tags:        models.TagList{"Speech", "audio"},
	}
	submitter := &models.User{Name: "Alice Example", Email: "alice@example.com"}

	subject, htmlBody, textBody := testTemplates().RequestSubmittedForReview(req, submitter)

	if !strings.Contains(subject, "Whisper") || !strings.Contains(subject, "[ToolHub]") {
		t.Errorf("subject = %q, want site title and request name", subject)
	}
	for _, want := range []string{"Whisper", "https://example.com/whisper", "alice@example.com", "speech", "audio", "/admin/requests"} {
		if !strings.Contains(htmlBody, want) {
			t.Errorf("html body missing %q", want)
		}
		if !strings.Contains(textBody, want) && want != "speech" && want != "audio" {
			t.Errorf("text body missing %q", want)
		}
	}
}

func TestRequestSubmittedForReviewAnonymous(t *testing.T) {
	req := &models.ToolRequest{Name: "Whisper", URL: "https://example.com/whisper"}

	_, htmlBody, _ := testTemplates().RequestSubmittedForReview(req, nil)
	if !strings.Contains(htmlBody, "Anonymous") {
		t.Error("html body missing anonymous submitter label")
	}
}

func TestRequestSubmittedEscapesHTML(t *testing.T) {
	req := &models.ToolRequest{
		Name:        "<script>alert(1)</script>",
		URL:         "https://example.com/x",
		Description: "desc",
	}

	_, htmlBody, _ := testTemplates().RequestSubmittedForReview(req, nil)
	if strings.Contains(htmlBody, "<script>alert(1)</script>") {
		t.Error("html body contains unescaped submitter input")
	}
	if !strings.Contains(htmlBody, "&lt;script&gt;") {
		t.Error("html body missing escaped name")
	}
}

func TestRequestApproved(t *testing.T) {
	req := &models.ToolRequest{Name: "Whisper", URL: "https://example.com/whisper", AdminNotes: "solid pick"}
	tool := &models.Tool{Name: "Whisper", URL: "https://example.com/whisper"}

	subject, htmlBody, textBody := testTemplates().RequestApproved(req, tool)

	if !strings.Contains(subject, "approved") {
		t.Errorf("subject = %q, want approval wording", subject)
	}
	if !strings.Contains(htmlBody, "solid pick") || !strings.Contains(textBody, "solid pick") {
		t.Error("bodies missing reviewer notes")
	}
}

func TestRequestDenied(t *testing.T) {
	tests := []struct {
		name       string
		notes      string
		wantReason string
	}{
		{"with reason", "already listed", "already listed"},
		{"without reason", "", "No reason was provided."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := &models.ToolRequest{Name: "Whisper", URL: "https://example.com/whisper", AdminNotes: tt.notes}

			_, htmlBody, textBody := testTemplates().RequestDenied(req)
			if !strings.Contains(htmlBody, tt.wantReason) || !strings.Contains(textBody, tt.wantReason) {
				t.Errorf("bodies missing reason %q", tt.wantReason)
			}
		})
	}
}
