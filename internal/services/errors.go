package services

import "errors"

// Sentinel errors shared across the service layer. Handlers branch on
// these with errors.Is to pick the HTTP status and message.
var (
	// Not found
	ErrUserNotFound          = errors.New("user not found")
	ErrProductNotFound       = errors.New("product not found or inactive")
	ErrMoveNotFound          = errors.New("money move not found")
	ErrConsumptionNotFound   = errors.New("consumption not found")
	ErrAuditEntryNotFound    = errors.New("audit entry not found")
	ErrStockPurchaseNotFound = errors.New("stock purchase not found")

	// Invalid state
	ErrMoveNotPending        = errors.New("money move is not pending")
	ErrStockAlreadyProcessed = errors.New("stock purchase cash-out already processed")

	// Invariant violations
	ErrSelfResolution = errors.New("creator cannot resolve their own money move")
	ErrInvalidAmount  = errors.New("amount must be a positive number of cents")
	ErrInvalidType    = errors.New("money move type must be deposit or payout")
	ErrInvalidQty     = errors.New("quantity must be positive")
	ErrLastAdmin      = errors.New("cannot remove the last admin")
	ErrUserHasRecords = errors.New("user has dependent records")
	ErrUserInactive   = errors.New("user is not active")

	// Authorization
	ErrUnauthorized = errors.New("actor is not allowed to perform this action")

	// Concurrency: a concurrent resolution won the pending->terminal race.
	ErrMoveResolvedConcurrently = errors.New("money move was resolved concurrently")

	// Credentials
	ErrInvalidCredentials = errors.New("invalid user or PIN")
	ErrPinMismatch        = errors.New("current PIN does not match")
	ErrDuplicateUser      = errors.New("user with this display name or email already exists")
)
