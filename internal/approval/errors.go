package approval

import "errors"

var (
	// ErrInvalidDecision means the target status is not approved or denied.
	ErrInvalidDecision = errors.New("invalid decision: must be approved or denied")

	// ErrInvalidTransition means the request is not pending. Terminal states
	// are terminal; re-deciding a decided request is rejected, including
	// approve-after-approve.
	ErrInvalidTransition = errors.New("request has already been processed")

	// ErrInvalidRequest means the request record is malformed (empty name
	// or URL). Upstream validation should prevent this.
	ErrInvalidRequest = errors.New("request is missing a name or url")
)
