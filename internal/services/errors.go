package services

// Custom errors returned by services, mapped to HTTP codes by the
// handlers' handleServiceError switch.

type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string { return "Validation error" }

type ConflictError struct{ Message string }

func (e *ConflictError) Error() string { return e.Message }

type NotFoundError struct{ Message string }

func (e *NotFoundError) Error() string { return e.Message }

type UnauthorizedError struct{ Message string }

func (e *UnauthorizedError) Error() string { return e.Message }

type ForbiddenError struct{ Message string }

func (e *ForbiddenError) Error() string { return e.Message }

// PreconditionError covers failed preconditions: insufficient content for
// generation, missing watched flag, unconfigured AI service.
type PreconditionError struct{ Message string }

func (e *PreconditionError) Error() string { return e.Message }

// ExpiredError is a quiz session past its expiry, distinct from not found
// so the client can show a clearer message.
type ExpiredError struct{ Message string }

func (e *ExpiredError) Error() string { return e.Message }

// UnavailableError is an upstream dependency failure (caption fetch, AI
// call). Never retried server-side; the user retries the action.
type UnavailableError struct{ Message string }

func (e *UnavailableError) Error() string { return e.Message }

type RateLimitError struct{ Message string }

func (e *RateLimitError) Error() string { return e.Message }
