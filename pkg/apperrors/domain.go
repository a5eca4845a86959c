package apperrors

import (
	"net/http"
)

// Factories and predefined errors for the matching domain.

// ErrNotFound converts a repository miss (gorm.ErrRecordNotFound and
// friends) into a 404.
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// ErrAlreadyExists converts a uniqueness violation into a 409.
func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

// ErrConflict is the generic 409 factory.
func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

// ErrInvalidOperation is the generic 400 factory for operations the current
// state does not allow.
func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

// --- Matching ---

// ErrInvalidCriteria rejects a search whose criteria or weight overrides
// fail semantic validation. The message carries the concrete reason.
func ErrInvalidCriteria(message string) *AppError {
	return New(CodeInvalidCriteria, "matching", message, http.StatusBadRequest)
}

// ErrCandidateNotFound covers a single-candidate score request for a
// freelancer that does not exist or is outside the active pool.
var ErrCandidateNotFound = New(
	CodeCandidateNotFound,
	"matching",
	"Candidate not found",
	http.StatusNotFound,
)

// ErrMatchingEventNotFound covers outcome reports against unknown events.
var ErrMatchingEventNotFound = New(
	CodeNotFound,
	"matching",
	"Matching event not found",
	http.StatusNotFound,
)

// ErrScoringFailure wraps a panic or error raised while scoring one
// candidate. Internal only: the orchestrator logs it and drops the
// candidate, it never reaches a response body.
func ErrScoringFailure(err error, freelancerID string) *AppError {
	return Wrap(err, CodeScoringFailure, "matching", "Candidate scoring failed", http.StatusInternalServerError).
		WithDetails(map[string]string{"freelancer_id": freelancerID})
}

// --- Profile ---

// ErrSelfEndorsementNotAllowed rejects endorsing your own skill.
var ErrSelfEndorsementNotAllowed = New(
	CodeForbidden,
	"profile",
	"You cannot endorse your own skills",
	http.StatusForbidden,
)

// ErrEndorsementExists rejects a duplicate endorsement of the same skill by
// the same endorser.
var ErrEndorsementExists = New(
	CodeAlreadyExists,
	"profile",
	"You have already endorsed this skill",
	http.StatusConflict,
)

// ErrProfileNotFound covers lookups of missing freelancer profiles.
var ErrProfileNotFound = New(
	CodeNotFound,
	"profile",
	"Freelancer profile not found",
	http.StatusNotFound,
)

// --- Auth ---

var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired token",
	http.StatusUnauthorized,
)

var ErrInsufficientPermissions = New(
	CodeForbidden,
	"auth",
	"Insufficient permissions",
	http.StatusForbidden,
)
