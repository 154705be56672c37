package email

import (
	"fmt"
	"html"
	"strings"

	"toolhub/internal/config"
	"toolhub/internal/models"
)

// Templates provides email template generation.
type Templates struct {
	cfg *config.Config
}

// NewTemplates creates a new templates instance.
func NewTemplates(cfg *config.Config) *Templates {
	return &Templates{cfg: cfg}
}

// baseHTML wraps content in a consistent HTML email template.
func (t *Templates) baseHTML(title, content string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>%s</title>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #7c3aed; color: white; padding: 20px; text-align: center; border-radius: 8px 8px 0 0; }
        .header h1 { margin: 0; font-size: 24px; }
        .content { background: #f9fafb; padding: 20px; border: 1px solid #e5e7eb; }
        .footer { background: #f3f4f6; padding: 15px; text-align: center; font-size: 12px; color: #6b7280; border-radius: 0 0 8px 8px; border: 1px solid #e5e7eb; border-top: none; }
        .button { display: inline-block; background: #7c3aed; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; margin: 10px 0; }
        .button:hover { background: #6d28d9; }
        .info-box { background: white; border: 1px solid #e5e7eb; border-radius: 6px; padding: 15px; margin: 15px 0; }
        .label { font-weight: 600; color: #374151; }
        .value { color: #6b7280; }
        .success { color: #059669; }
        .error { color: #dc2626; }
        .tag { background: #ede9fe; color: #5b21b6; padding: 2px 8px; border-radius: 9999px; font-size: 12px; }
    </style>
</head>
<body>
    <div class="header">
        <h1>%s</h1>
    </div>
    <div class="content">
        %s
    </div>
    <div class="footer">
        <p>This email was sent by %s</p>
        <p><a href="%s">%s</a></p>
    </div>
</body>
</html>`, html.EscapeString(title), html.EscapeString(t.cfg.SiteTitle), content, html.EscapeString(t.cfg.SiteTitle), t.cfg.BaseURL, t.cfg.BaseURL)
}

func tagSpans(tags []string) string {
	if len(tags) == 0 {
		return "<span class=\"value\">none</span>"
	}
	spans := make([]string, len(tags))
	for i, tag := range tags {
		spans[i] = fmt.Sprintf("<span class=\"tag\">%s</span>", html.EscapeString(tag))
	}
	return strings.Join(spans, " ")
}

// RequestSubmittedForReview generates email for admins when a tool request
// needs review.
func (t *Templates) RequestSubmittedForReview(req *models.ToolRequest, submitter *models.User) (subject, htmlBody, textBody string) {
	subject = fmt.Sprintf("[%s] New tool request pending review: %s", t.cfg.SiteTitle, req.Name)

	submitterName := "Anonymous"
	submitterEmail := ""
	if submitter != nil {
		submitterName = submitter.Name
		submitterEmail = submitter.Email
	}

	tags := req.Tags.Normalized()

	content := fmt.Sprintf(`
        <p>A new tool has been suggested and requires your review.</p>

        <div class="info-box">
            <p><span class="label">Name:</span> %s</p>
            <p><span class="label">URL:</span> <a href="%s">%s</a></p>
            <p><span class="label">Description:</span> %s</p>
            <p><span class="label">Tags:</span> %s</p>
            <p><span class="label">Submitted by:</span> %s (%s)</p>
        </div>

        <p style="text-align: center;">
            <a href="%s/admin/requests" class="button">Review in Dashboard</a>
        </p>
    `,
		html.EscapeString(req.Name),
		html.EscapeString(req.URL),
		html.EscapeString(req.URL),
		html.EscapeString(req.Description),
		tagSpans(tags),
		html.EscapeString(submitterName),
		html.EscapeString(submitterEmail),
		t.cfg.BaseURL,
	)

	htmlBody = t.baseHTML(subject, content)

	textBody = fmt.Sprintf(`New tool request pending review

Name: %s
URL: %s
Description: %s
Tags: %s
Submitted by: %s (%s)

Review at: %s/admin/requests

--
%s
%s`,
		req.Name,
		req.URL,
		req.Description,
		strings.Join(tags, ", "),
		submitterName,
		submitterEmail,
		t.cfg.BaseURL,
		t.cfg.SiteTitle,
		t.cfg.BaseURL,
	)

	return subject, htmlBody, textBody
}

// RequestApproved generates email for the submitter when their request is
// approved and the tool is live in the catalog.
func (t *Templates) RequestApproved(req *models.ToolRequest, tool *models.Tool) (subject, htmlBody, textBody string) {
	subject = fmt.Sprintf("[%s] Your tool request was approved: %s", t.cfg.SiteTitle, req.Name)

	notes := ""
	if req.AdminNotes != "" {
		notes = fmt.Sprintf(`<p><span class="label">Reviewer notes:</span> %s</p>`, html.EscapeString(req.AdminNotes))
	}

	content := fmt.Sprintf(`
        <p class="success">Good news! Your tool suggestion has been approved and is now listed.</p>

        <div class="info-box">
            <p><span class="label">Name:</span> %s</p>
            <p><span class="label">URL:</span> <a href="%s">%s</a></p>
            %s
        </div>

        <p style="text-align: center;">
            <a href="%s" class="button">Browse the Directory</a>
        </p>
    `,
		html.EscapeString(tool.Name),
		html.EscapeString(tool.URL),
		html.EscapeString(tool.URL),
		notes,
		t.cfg.BaseURL,
	)

	htmlBody = t.baseHTML(subject, content)

	textNotes := ""
	if req.AdminNotes != "" {
		textNotes = fmt.Sprintf("\nReviewer notes: %s\n", req.AdminNotes)
	}

	textBody = fmt.Sprintf(`Your tool request was approved

Name: %s
URL: %s
%s
Browse the directory at: %s

--
%s
%s`,
		tool.Name,
		tool.URL,
		textNotes,
		t.cfg.BaseURL,
		t.cfg.SiteTitle,
		t.cfg.BaseURL,
	)

	return subject, htmlBody, textBody
}

// RequestDenied generates email for the submitter when their request is
// denied.
func (t *Templates) RequestDenied(req *models.ToolRequest) (subject, htmlBody, textBody string) {
	subject = fmt.Sprintf("[%s] Your tool request was not approved: %s", t.cfg.SiteTitle, req.Name)

	reason := "No reason was provided."
	if req.AdminNotes != "" {
		reason = req.AdminNotes
	}

	content := fmt.Sprintf(`
        <p>Your tool suggestion was reviewed and was not approved.</p>

        <div class="info-box">
            <p><span class="label">Name:</span> %s</p>
            <p><span class="label">URL:</span> <a href="%s">%s</a></p>
            <p><span class="label">Reason:</span> <span class="error">%s</span></p>
        </div>

        <p>You are welcome to submit a revised suggestion.</p>
    `,
		html.EscapeString(req.Name),
		html.EscapeString(req.URL),
		html.EscapeString(req.URL),
		html.EscapeString(reason),
	)

	htmlBody = t.baseHTML(subject, content)

	textBody = fmt.Sprintf(`Your tool request was not approved

Name: %s
URL: %s
Reason: %s

You are welcome to submit a revised suggestion.

--
%s
%s`,
		req.Name,
		req.URL,
		reason,
		t.cfg.SiteTitle,
		t.cfg.BaseURL,
	)

	return subject, htmlBody, textBody
}
