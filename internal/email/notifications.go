package email

import (
	"context"
	"log"

	"github.com/google/uuid"

	"toolhub/internal/config"
	"toolhub/internal/models"
)

// RecipientStore is the user-lookup surface the notifier needs.
type RecipientStore interface {
	GetAdminEmails(ctx context.Context) ([]string, error)
	GetUserByID(ctx context.Context, userID uuid.UUID) (*models.User, error)
}

// Notifier sends email notifications for tool request events.
type Notifier struct {
	service   *Service
	templates *Templates
	cfg       *config.Config
	db        RecipientStore
}

// NewNotifier creates a new email notifier.
func NewNotifier(cfg *config.Config, db RecipientStore) *Notifier {
	return &Notifier{
		service:   NewService(cfg),
		templates: NewTemplates(cfg),
		cfg:       cfg,
		db:        db,
	}
}

// NotifyRequestSubmitted notifies admins that a new tool request needs review.
func (n *Notifier) NotifyRequestSubmitted(ctx context.Context, req *models.ToolRequest, submitter *models.User) {
	if !n.service.IsEnabled() || !n.cfg.EmailNotifyAdminsOnSubmit {
		return
	}

	emails, err := n.db.GetAdminEmails(ctx)
	if err != nil {
		log.Printf("Failed to get admin emails: %v", err)
		return
	}

	if len(emails) == 0 {
		log.Println("No admin emails found for notification")
		return
	}

	subject, htmlBody, textBody := n.templates.RequestSubmittedForReview(req, submitter)
	n.service.SendAsync(emails, subject, htmlBody, textBody)
}

// NotifyRequestApproved notifies the submitter that their request was
// approved. No-op for anonymous submissions.
func (n *Notifier) NotifyRequestApproved(ctx context.Context, req *models.ToolRequest, tool *models.Tool) {
	if !n.service.IsEnabled() || !n.cfg.EmailNotifyUserOnDecision {
		return
	}

	submitter := n.submitter(ctx, req)
	if submitter == nil {
		return
	}

	subject, htmlBody, textBody := n.templates.RequestApproved(req, tool)
	n.service.SendAsync([]string{submitter.Email}, subject, htmlBody, textBody)
}

// NotifyRequestDenied notifies the submitter that their request was denied.
// No-op for anonymous submissions.
func (n *Notifier) NotifyRequestDenied(ctx context.Context, req *models.ToolRequest) {
	if !n.service.IsEnabled() || !n.cfg.EmailNotifyUserOnDecision {
		return
	}

	submitter := n.submitter(ctx, req)
	if submitter == nil {
		return
	}

	subject, htmlBody, textBody := n.templates.RequestDenied(req)
	n.service.SendAsync([]string{submitter.Email}, subject, htmlBody, textBody)
}

func (n *Notifier) submitter(ctx context.Context, req *models.ToolRequest) *models.User {
	if req.SubmittedBy == nil {
		return nil
	}

	user, err := n.db.GetUserByID(ctx, *req.SubmittedBy)
	if err != nil {
		log.Printf("Failed to get request submitter: %v", err)
		return nil
	}
	if user.Email == "" {
		return nil
	}
	return user
}
