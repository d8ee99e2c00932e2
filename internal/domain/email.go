package domain

import (
	"context"
	"time"
)

// Attachment is a file sent along with an email.
type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Message is an outgoing email.
type Message struct {
	To          string
	Subject     string
	HTML        string
	Text        string
	Attachments []Attachment
}

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(ctx context.Context, msg *Message) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// EventShareEmailData holds data for the event share email.
type EventShareEmailData struct {
	ContactName  string
	ContactEmail string
	Title        string
	Location     string
	Notes        string
	StartDate    time.Time
	EndDate      time.Time
	Calendar     Attachment
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendEventShare(ctx context.Context, data *EventShareEmailData) error
}
