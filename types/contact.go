package types

import "context"

// ContactSubmission carries the raw contact form fields as posted by the
// marketing site. Fields are validated and normalized by the contact service;
// nothing here is persisted.
type ContactSubmission struct {
	Name    string `form:"name" json:"name"`
	Company string `form:"company" json:"company"`
	Email   string `form:"email" json:"email"`
	Phone   string `form:"phone" json:"phone"`
	Message string `form:"message" json:"message"`
	// Website is the honeypot field. It is hidden from humans in the form
	// markup, so any non-empty value marks the submission as automated.
	Website string `form:"website" json:"website"`
}

// RequestMeta holds the request headers the pipeline needs for origin
// checking and rate-limit identity. The handler extracts these so the
// service stays independent of the HTTP layer.
type RequestMeta struct {
	Origin       string
	Referer      string
	ForwardedFor string
	RealIP       string
	RemoteAddr   string
	UserAgent    string
}

// SubmissionStatus enumerates the closed set of pipeline outcomes.
type SubmissionStatus string

const (
	SubmissionIdle        SubmissionStatus = "idle"
	SubmissionSuccess     SubmissionStatus = "success"
	SubmissionError       SubmissionStatus = "error"
	SubmissionRateLimited SubmissionStatus = "rate_limited"
)

// SubmissionResult is the only value the pipeline ever returns to the caller.
// Field and Message are set for the error variant; Field identifies the first
// failing form field when the failure came from validation.
type SubmissionResult struct {
	Status  SubmissionStatus `json:"status"`
	Field   string           `json:"field,omitempty"`
	Message string           `json:"message,omitempty"`
}

// ContactEmailPayload is the normalized data handed to the notifier.
// Company and Phone may be empty; the email body omits them entirely
// rather than rendering blank rows.
type ContactEmailPayload struct {
	Name    string
	Company string
	Email   string
	Phone   string
	Message string
}

// ContactNotifier delivers an operator notification for a validated
// submission. A single attempt, no retries; the pipeline decides how a
// failure is surfaced.
type ContactNotifier interface {
	SendContactEmail(ctx context.Context, payload ContactEmailPayload) error
}
