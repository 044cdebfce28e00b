package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/smtp"
	"strings"
	"time"

	"github.com/worktide-hr/absence-backend-go/internal/config"
)

//go:embed templates/*.html
var templateFS embed.FS

const maxRetries = 3

// Service defines the interface for sending absence emails
type Service interface {
	SendRequestCreated(to []string, data RequestCreatedData) error
	SendRequestDecided(to string, data RequestDecidedData) error
}

type serviceImpl struct {
	cfg       config.SMTPConfig
	templates *template.Template
}

// NewService creates a new email service instance
func NewService(cfg config.SMTPConfig) (Service, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse email templates: %w", err)
	}

	return &serviceImpl{
		cfg:       cfg,
		templates: tmpl,
	}, nil
}

type RequestCreatedData struct {
	RequesterName string
	CategoryLabel string
	StartDate     string
	EndDate       string
	Days          int
	Reason        string
	ApproverNames string
}

// SendRequestCreated notifies the assigned approvers about a new request
func (s *serviceImpl) SendRequestCreated(to []string, data RequestCreatedData) error {
	if len(to) == 0 {
		return nil
	}

	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, "request_created.html", data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	subject := fmt.Sprintf("New %s request from %s", data.CategoryLabel, data.RequesterName)
	return s.sendHTML(to, subject, body.String())
}

type RequestDecidedData struct {
	OwnerName     string
	CategoryLabel string
	StartDate     string
	EndDate       string
	Days          int
	StatusLabel   string
	ApproverName  string
	Comment       string
}

// SendRequestDecided notifies the owner that their request was decided
func (s *serviceImpl) SendRequestDecided(to string, data RequestDecidedData) error {
	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, "request_decided.html", data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	subject := fmt.Sprintf("Your %s request has been %s", data.CategoryLabel, data.StatusLabel)
	return s.sendHTML([]string{to}, subject, body.String())
}

func (s *serviceImpl) sendHTML(to []string, subject, htmlBody string) error {
	// Skip sending if SMTP is not configured
	if s.cfg.Host == "" {
		slog.Warn("SMTP not configured, skipping email send", "to", to, "subject", subject)
		return nil
	}

	from := s.cfg.From

	headers := fmt.Sprintf("From: %s <%s>\r\n", s.cfg.FromName, from)
	headers += fmt.Sprintf("To: %s\r\n", strings.Join(to, ", "))
	headers += fmt.Sprintf("Subject: %s\r\n", subject)
	headers += "MIME-Version: 1.0\r\n"
	headers += "Content-Type: text/html; charset=\"UTF-8\"\r\n"
	headers += "\r\n"

	message := []byte(headers + htmlBody)

	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		err := smtp.SendMail(addr, auth, from, to, message)
		if err == nil {
			slog.Info("Email sent successfully", "to", to, "subject", subject, "attempt", attempt)
			return nil
		}

		lastErr = err
		slog.Error("Failed to send email",
			"to", to,
			"subject", subject,
			"attempt", attempt,
			"max_retries", maxRetries,
			"error", err,
		)

		// Wait before retrying (exponential backoff: 1s, 2s, 4s)
		if attempt < maxRetries {
			time.Sleep(time.Duration(1<<(attempt-1)) * time.Second)
		}
	}

	return fmt.Errorf("failed to send email after %d attempts: %w", maxRetries, lastErr)
}
