package services

import (
	"context"
	"fmt"
	"log/slog"

	"agenda/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
	logger   *slog.Logger
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer, logger *slog.Logger) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer, logger: logger}
}

// SendEventShare sends the "event_share" email with the event's calendar file attached.
func (s *emailService) SendEventShare(ctx context.Context, data *domain.EventShareEmailData) error {
	if data == nil {
		return fmt.Errorf("event share data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render("event_share", data)
	if err != nil {
		return fmt.Errorf("failed to render event_share template: %w", err)
	}
	msg := &domain.Message{
		To:      data.ContactEmail,
		Subject: subject,
		HTML:    htmlBody,
		Text:    textBody,
	}
	if len(data.Calendar.Data) > 0 {
		msg.Attachments = []domain.Attachment{data.Calendar}
	}
	if err := s.mailer.Send(ctx, msg); err != nil {
		return fmt.Errorf("failed to send event share email: %w", err)
	}
	s.logger.InfoContext(ctx, "event share email sent", "to", data.ContactEmail, "title", data.Title)
	return nil
}
