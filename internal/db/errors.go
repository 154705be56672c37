package db

import "errors"

// Domain-level database error sentinels.
var (
	// Tool errors
	ErrToolNotFound     = errors.New("tool not found")
	ErrDuplicateToolURL = errors.New("a tool with this url already exists")

	// Tag errors
	ErrTagNotFound      = errors.New("tag not found")
	ErrDuplicateTagName = errors.New("a tag with this name already exists")
	ErrTagInUse         = errors.New("tag is associated with one or more tools")

	// Request errors
	ErrRequestNotFound     = errors.New("tool request not found")
	ErrRequestNotPending   = errors.New("tool request is not pending")
	ErrPendingRequestLimit = errors.New("you have reached the maximum number of pending requests")

	// User errors
	ErrUserNotFound = errors.New("user not found")
)
