package jobs

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"toolhub/internal/db"
	"toolhub/internal/models"
	"toolhub/internal/validation"
)

// HealthChecker performs background health checks on catalog tool URLs.
type HealthChecker struct {
	db       *db.DB
	interval time.Duration
	maxAge   time.Duration
	client   *http.Client
}

// NewHealthChecker creates a new health checker.
func NewHealthChecker(database *db.DB, interval, maxAge time.Duration) *HealthChecker {
	return &HealthChecker{
		db:       database,
		interval: interval,
		maxAge:   maxAge,
		client: &http.Client{
			Timeout: 10 * time.Second,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return errors.New("too many redirects")
				}
				return nil
			},
		},
	}
}

// Start begins the background health check loop.
func (h *HealthChecker) Start(ctx context.Context) {
	log.Printf("Health checker started (interval: %v, maxAge: %v)", h.interval, h.maxAge)

	// Run immediately on start
	h.checkAll(ctx)

	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Health checker stopped")
			return
		case <-ticker.C:
			h.checkAll(ctx)
		}
	}
}

// checkAll checks all tools whose last check is older than maxAge.
func (h *HealthChecker) checkAll(ctx context.Context) {
	tools, err := h.db.GetToolsNeedingHealthCheck(ctx, h.maxAge, 50)
	if err != nil {
		log.Printf("Health checker: failed to get tools: %v", err)
		return
	}

	if len(tools) == 0 {
		return
	}

	log.Printf("Health checker: checking %d tools", len(tools))

	for _, tool := range tools {
		select {
		case <-ctx.Done():
			return
		default:
		}

		status, errorMsg := h.CheckURL(ctx, tool.URL)
		if err := h.db.UpdateToolHealthStatus(ctx, tool.ID, status, errorMsg); err != nil {
			log.Printf("Health checker: failed to update tool %s: %v", tool.Name, err)
			continue
		}

		// Delay between checks to avoid overwhelming external servers
		time.Sleep(1 * time.Second)
	}
}

// CheckURL performs a HEAD request to check if a URL is reachable.
// URLs are validated before any request is made to prevent SSRF.
func (h *HealthChecker) CheckURL(ctx context.Context, url string) (string, *string) {
	if valid, msg := validation.ValidateURLForHealthCheck(url); !valid {
		return models.HealthUnhealthy, &msg
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		errMsg := "invalid URL: " + err.Error()
		return models.HealthUnhealthy, &errMsg
	}

	req.Header.Set("User-Agent", "ToolHub-HealthChecker/1.0")

	resp, err := h.client.Do(req)
	if err != nil {
		errMsg := "connection failed: " + err.Error()
		return models.HealthUnknown, &errMsg
	}
	defer resp.Body.Close()

	// Any HTTP response means the site is reachable
	return models.HealthHealthy, nil
}
