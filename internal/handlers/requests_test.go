package handlers

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v3"

	"toolhub/internal/approval"
	"toolhub/internal/db"
)

func TestDecisionErrorStatus(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"unknown request", db.ErrRequestNotFound, fiber.StatusNotFound},
		{"bad decision value", approval.ErrInvalidDecision, fiber.StatusBadRequest},
		{"already decided", approval.ErrInvalidTransition, fiber.StatusConflict},
		{"malformed request record", approval.ErrInvalidRequest, fiber.StatusUnprocessableEntity},
		{"wrapped transition error", fmt.Errorf("decide: %w", approval.ErrInvalidTransition), fiber.StatusConflict},
		{"store failure", errors.New("connection reset"), fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, message := decisionErrorStatus(tt.err)
			if status != tt.wantStatus {
				t.Errorf("decisionErrorStatus(%v) = %d, want %d", tt.err, status, tt.wantStatus)
			}
			if message == "" {
				t.Error("empty error message")
			}
		})
	}
}
