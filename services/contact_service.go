package services

import (
	"context"
	"math/rand/v2"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/thekpsgroup/contractorjobcosting-backend/config"
	"github.com/thekpsgroup/contractorjobcosting-backend/logger"
	"github.com/thekpsgroup/contractorjobcosting-backend/types"
)

const (
	// Honeypot hits wait a randomized interval before the fake success so
	// response timing doesn't distinguish them from real processing.
	botDelayBase   = 150 * time.Millisecond
	botDelayJitter = 250 * time.Millisecond

	// User-agent contribution to the rate-limit identifier is truncated so
	// an oversized UA header can't bloat the limiter map.
	maxUserAgentLen = 120

	unknownIdentifier = "unknown"

	deliveryFailureMessage = "We couldn't send your message right now. Please email us directly or try again in a moment."
)

// Local-development origins accepted alongside the configured allow-list
// when not running in production.
var devOrigins = []string{"http://localhost:3000", "http://localhost"}

type ContactMetrics struct {
	receivedCount   prometheus.Counter
	suppressedCount prometheus.Counter
	throttledCount  prometheus.Counter
}

// ContactService runs the contact submission pipeline: honeypot check, size
// pre-check, origin check, rate limiting, validation, and notification
// dispatch. Every outcome is folded into a types.SubmissionResult; no error
// escapes the pipeline boundary.
type ContactService struct {
	cfg            *config.Config
	limiter        RateLimiter
	notifier       types.ContactNotifier
	validator      *ContactValidator
	metrics        *ContactMetrics
	allowedOrigins map[string]bool

	// delay is swapped out in tests to avoid real sleeps.
	delay func(ctx context.Context, d time.Duration)
}

func NewContactService(cfg *config.Config, limiter RateLimiter, notifier types.ContactNotifier) *ContactService {
	return NewContactServiceWithRegistry(cfg, limiter, notifier, prometheus.DefaultRegisterer)
}

func NewContactServiceWithRegistry(cfg *config.Config, limiter RateLimiter, notifier types.ContactNotifier, reg prometheus.Registerer) *ContactService {
	metrics := &ContactMetrics{
		receivedCount: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "jobcosting_contact_submissions_total",
			Help: "Total number of contact submissions accepted",
		}),
		suppressedCount: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "jobcosting_contact_suppressed_total",
			Help: "Total number of submissions silently suppressed (honeypot or forged origin)",
		}),
		throttledCount: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "jobcosting_contact_throttled_total",
			Help: "Total number of rate-limited contact submissions",
		}),
	}

	reg.MustRegister(metrics.receivedCount)
	reg.MustRegister(metrics.suppressedCount)
	reg.MustRegister(metrics.throttledCount)

	allowed := make(map[string]bool, len(cfg.Server.AllowedOrigins)+len(devOrigins))
	for _, origin := range cfg.Server.AllowedOrigins {
		allowed[origin] = true
	}
	if !cfg.IsProduction() {
		for _, origin := range devOrigins {
			allowed[origin] = true
		}
	}

	return &ContactService{
		cfg:            cfg,
		limiter:        limiter,
		notifier:       notifier,
		validator:      NewContactValidator(),
		metrics:        metrics,
		allowedOrigins: allowed,
		delay:          sleepContext,
	}
}

// Submit runs one submission through the pipeline stages in order. Stage
// order matters: each short-circuit depends on the previous stages not
// having already rejected the request.
func (s *ContactService) Submit(ctx context.Context, sub types.ContactSubmission, meta types.RequestMeta) types.SubmissionResult {
	log := logger.GetLogger()

	// Stage 1: honeypot. A filled hidden field means a bot. Return success
	// on purpose — an honest rejection would teach the bot which field to
	// leave blank. Do not "fix" this into an error.
	if strings.TrimSpace(sub.Website) != "" {
		s.metrics.suppressedCount.Inc()
		s.delay(ctx, botDelayBase+rand.N(botDelayJitter))
		return types.SubmissionResult{Status: types.SubmissionSuccess}
	}

	// Stage 2: hard cap on the raw message before any further work. The cap
	// counts characters, matching how the schema bounds are measured.
	if utf8.RuneCountInString(sub.Message) > s.cfg.Contact.MessageHardCap {
		return types.SubmissionResult{
			Status:  types.SubmissionError,
			Message: "Message is too long.",
		}
	}

	// Stage 3: origin allow-list. A present origin outside the list is a
	// cross-site forgery; it also gets a silent success so the forger
	// learns nothing. Requests without any origin signal pass through.
	if origin := requestOrigin(meta); origin != "" && !s.allowedOrigins[origin] {
		s.metrics.suppressedCount.Inc()
		return types.SubmissionResult{Status: types.SubmissionSuccess}
	}

	// Stage 4 + 5: rate limit by client identifier.
	allowed, _ := s.limiter.Check(clientIdentifier(meta))
	if !allowed {
		s.metrics.throttledCount.Inc()
		return types.SubmissionResult{Status: types.SubmissionRateLimited}
	}

	// Stage 6: schema validation, first failing field wins.
	normalized, fieldErr := s.validator.Validate(sub)
	if fieldErr != nil {
		return types.SubmissionResult{
			Status:  types.SubmissionError,
			Field:   fieldErr.Field,
			Message: fieldErr.Message,
		}
	}

	// Stage 7: notification dispatch. The transport error stays internal;
	// the submitter sees a generic message and may simply try again.
	payload := types.ContactEmailPayload{
		Name:    normalized.Name,
		Company: normalized.Company,
		Email:   normalized.Email,
		Phone:   normalized.Phone,
		Message: normalized.Message,
	}
	if err := s.notifier.SendContactEmail(ctx, payload); err != nil {
		// Timestamp only — submitted content never reaches the logs.
		log.Errorw("Contact email delivery failed",
			"at", time.Now().UTC().Format(time.RFC3339))
		return types.SubmissionResult{
			Status:  types.SubmissionError,
			Message: deliveryFailureMessage,
		}
	}

	s.metrics.receivedCount.Inc()
	log.Infow("Contact submission received",
		"at", time.Now().UTC().Format(time.RFC3339))
	return types.SubmissionResult{Status: types.SubmissionSuccess}
}

// sleepContext waits for d without holding anything but this goroutine,
// returning early if the request context is done.
func sleepContext(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

// requestOrigin extracts scheme://host from the Origin header, falling back
// to the Referer. Returns "" when neither parses.
func requestOrigin(meta types.RequestMeta) string {
	if origin := parseOrigin(meta.Origin); origin != "" {
		return origin
	}
	return parseOrigin(meta.Referer)
}

func parseOrigin(raw string) string {
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host
}

// clientIdentifier composes the rate-limit key from the best available
// network address signal plus a truncated user-agent.
func clientIdentifier(meta types.RequestMeta) string {
	ip := ""
	if meta.ForwardedFor != "" {
		ip = strings.TrimSpace(strings.Split(meta.ForwardedFor, ",")[0])
	}
	if ip == "" {
		ip = meta.RealIP
	}
	if ip == "" {
		ip = meta.RemoteAddr
	}
	if ip == "" {
		ip = unknownIdentifier
	}

	ua := meta.UserAgent
	if ua == "" {
		ua = unknownIdentifier
	}
	if len(ua) > maxUserAgentLen {
		ua = ua[:maxUserAgentLen]
	}

	return ip + ":" + ua
}
