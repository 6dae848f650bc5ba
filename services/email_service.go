package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/resend/resend-go/v2"

	"github.com/thekpsgroup/contractorjobcosting-backend/config"
	apperrors "github.com/thekpsgroup/contractorjobcosting-backend/errors"
	"github.com/thekpsgroup/contractorjobcosting-backend/logger"
	"github.com/thekpsgroup/contractorjobcosting-backend/types"
)

type EmailMetrics struct {
	sendLatency prometheus.Histogram
	errorCount  prometheus.Counter
	sentCount   prometheus.Counter
}

// EmailService delivers contact notifications to the operator inbox through
// Resend. It implements types.ContactNotifier.
type EmailService struct {
	config  *config.EmailConfig
	client  *resend.Client
	metrics *EmailMetrics
	timeout time.Duration
}

func NewEmailService(cfg *config.EmailConfig) *EmailService {
	return NewEmailServiceWithRegistry(cfg, prometheus.DefaultRegisterer)
}

func NewEmailServiceWithRegistry(cfg *config.EmailConfig, reg prometheus.Registerer) *EmailService {
	logger.GetLogger().Infow("Initializing email service",
		"from", cfg.FromAddress,
		"to", logger.MaskEmail(cfg.NotificationEmail))

	client := resend.NewClient(cfg.ResendAPIKey)
	metrics := &EmailMetrics{
		sendLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "jobcosting_email_send_duration_seconds",
			Help:    "Time taken to send contact notification emails",
			Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10},
		}),
		errorCount: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "jobcosting_email_errors_total",
			Help: "Total number of email sending errors",
		}),
		sentCount: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "jobcosting_emails_sent_total",
			Help: "Total number of contact notification emails sent",
		}),
	}

	reg.MustRegister(metrics.sendLatency)
	reg.MustRegister(metrics.errorCount)
	reg.MustRegister(metrics.sentCount)

	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &EmailService{
		config:  cfg,
		client:  client,
		metrics: metrics,
		timeout: timeout,
	}
}

// SendContactEmail formats and delivers a single contact notification.
// One attempt, bounded by the configured timeout; no retries. User-supplied
// text is embedded through html/template, which escapes it against HTML
// injection.
func (s *EmailService) SendContactEmail(ctx context.Context, payload types.ContactEmailPayload) error {
	startTime := time.Now()
	log := logger.GetLogger()
	defer func() {
		s.metrics.sendLatency.Observe(time.Since(startTime).Seconds())
	}()

	tmpl, err := template.New("contact").Parse(contactEmailTemplate)
	if err != nil {
		s.metrics.errorCount.Inc()
		log.Errorw("Failed to parse email template", "error", err)
		return fmt.Errorf("failed to parse template: %w", err)
	}

	var htmlContent bytes.Buffer
	if err := tmpl.Execute(&htmlContent, payload); err != nil {
		s.metrics.errorCount.Inc()
		log.Errorw("Failed to execute email template", "error", err)
		return fmt.Errorf("failed to execute template: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", s.config.FromName, s.config.FromAddress),
		To:      []string{s.config.NotificationEmail},
		ReplyTo: payload.Email,
		Subject: contactEmailSubject(payload),
		Html:    htmlContent.String(),
	}

	if _, err := s.client.Emails.SendWithContext(ctx, params); err != nil {
		s.metrics.errorCount.Inc()
		return apperrors.EmailDeliveryFailed(err)
	}

	s.metrics.sentCount.Inc()
	return nil
}

func contactEmailSubject(payload types.ContactEmailPayload) string {
	if payload.Company != "" {
		return fmt.Sprintf("New inquiry from %s — %s", payload.Name, payload.Company)
	}
	return fmt.Sprintf("New inquiry from %s", payload.Name)
}

// Template constants
const contactEmailTemplate = `<!DOCTYPE html>
<html lang="en">
<head><meta charset="UTF-8"><meta name="viewport" content="width=device-width,initial-scale=1"></head>
<body style="margin:0;padding:0;background:#f4f4f4;font-family:-apple-system,BlinkMacSystemFont,'Segoe UI',sans-serif">
  <table width="100%" cellpadding="0" cellspacing="0" style="background:#f4f4f4;padding:40px 20px">
    <tr><td align="center">
      <table width="600" cellpadding="0" cellspacing="0" style="max-width:600px;background:#fff;border-radius:4px;overflow:hidden">
        <tr>
          <td style="background:#0a0a0a;padding:24px 32px">
            <p style="margin:0;color:#f59e0b;font-size:12px;font-weight:700;letter-spacing:0.1em;text-transform:uppercase">Contractor Job Costing</p>
            <h1 style="margin:4px 0 0;color:#fff;font-size:20px;font-weight:700">New Contact Form Submission</h1>
          </td>
        </tr>
        <tr>
          <td style="padding:32px">
            <table width="100%" cellpadding="0" cellspacing="0" style="border-top:1px solid #e5e5e5">
              <tr><td style="padding:8px 0;color:#888;font-size:13px;width:100px">Name</td><td style="padding:8px 0;font-size:14px;font-weight:600">{{.Name}}</td></tr>
              {{if .Company}}<tr><td style="padding:8px 0;color:#888;font-size:13px;width:100px">Company</td><td style="padding:8px 0;font-size:14px">{{.Company}}</td></tr>{{end}}
              <tr><td style="padding:8px 0;color:#888;font-size:13px">Email</td><td style="padding:8px 0;font-size:14px"><a href="mailto:{{.Email}}" style="color:#f59e0b">{{.Email}}</a></td></tr>
              {{if .Phone}}<tr><td style="padding:8px 0;color:#888;font-size:13px">Phone</td><td style="padding:8px 0;font-size:14px">{{.Phone}}</td></tr>{{end}}
            </table>
            <div style="margin-top:24px;padding-top:24px;border-top:1px solid #e5e5e5">
              <p style="margin:0 0 8px;color:#888;font-size:13px;text-transform:uppercase;letter-spacing:0.05em">Message</p>
              <p style="margin:0;font-size:15px;line-height:1.7;color:#1a1a1a;white-space:pre-wrap">{{.Message}}</p>
            </div>
            <div style="margin-top:32px">
              <a href="mailto:{{.Email}}" style="display:inline-block;background:#f59e0b;color:#000;font-weight:700;font-size:14px;padding:12px 24px;text-decoration:none;border-radius:2px">Reply to {{.Name}}</a>
            </div>
          </td>
        </tr>
        <tr>
          <td style="background:#f9f9f9;padding:16px 32px;border-top:1px solid #e5e5e5">
            <p style="margin:0;font-size:12px;color:#999">Sent from contractorjobcosting.com contact form</p>
          </td>
        </tr>
      </table>
    </td></tr>
  </table>
</body>
</html>`
