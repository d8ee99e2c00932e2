package email

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"io"
	"log/slog"
	"mime"
	"mime/multipart"
	"net/mail"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agenda/internal/domain"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestTemplateRenderer_EventShare(t *testing.T) {
	data := &domain.EventShareEmailData{
		ContactName: "Ana",
		Title:       "Standup <daily>",
		Location:    "Room 1",
		StartDate:   time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2025, 3, 1, 9, 15, 0, 0, time.UTC),
	}

	subject, html, text, err := NewTemplateRenderer().Render("event_share", data)

	require.NoError(t, err)
	assert.Equal(t, "Invitation: Standup <daily>", subject)
	assert.Contains(t, html, "Standup &lt;daily&gt;")
	assert.Contains(t, html, "Room 1")
	assert.Contains(t, text, "Hi Ana,")
	assert.Contains(t, text, "Sat, 01 Mar 2025 09:00 UTC")
	assert.NotContains(t, text, "Notes")
}

func TestTemplateRenderer_UnknownTemplate(t *testing.T) {
	_, _, _, err := NewTemplateRenderer().Render("missing", nil)
	require.ErrorContains(t, err, "render subject")
}

func TestBuildMessage(t *testing.T) {
	msg := &domain.Message{
		To:      "ana@example.com",
		Subject: "Invitation: Café",
		HTML:    "<p>hi</p>",
		Text:    "hi",
		Attachments: []domain.Attachment{
			{Filename: "event-1.ics", ContentType: "text/calendar", Data: []byte(strings.Repeat("BEGIN:VCALENDAR\r\n", 10))},
		},
	}

	raw, err := buildMessage("Agenda", "noreply@example.com", msg)
	require.NoError(t, err)

	parsed, err := mail.ReadMessage(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, `"Agenda" <noreply@example.com>`, parsed.Header.Get("From"))
	subject, err := new(mime.WordDecoder).DecodeHeader(parsed.Header.Get("Subject"))
	require.NoError(t, err)
	assert.Equal(t, "Invitation: Café", subject)

	mediaType, params, err := mime.ParseMediaType(parsed.Header.Get("Content-Type"))
	require.NoError(t, err)
	assert.Equal(t, "multipart/mixed", mediaType)

	reader := multipart.NewReader(parsed.Body, params["boundary"])
	alt, err := reader.NextPart()
	require.NoError(t, err)
	altType, _, err := mime.ParseMediaType(alt.Header.Get("Content-Type"))
	require.NoError(t, err)
	assert.Equal(t, "multipart/alternative", altType)

	attachment, err := reader.NextPart()
	require.NoError(t, err)
	assert.Equal(t, "event-1.ics", attachment.FileName())
	encoded, err := io.ReadAll(attachment)
	require.NoError(t, err)
	for _, line := range strings.Split(strings.TrimSpace(string(encoded)), "\r\n") {
		assert.LessOrEqual(t, len(line), 76)
	}
	decoded, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(string(encoded), "\r\n", ""))
	require.NoError(t, err)
	assert.Equal(t, msg.Attachments[0].Data, decoded)

	_, err = reader.NextPart()
	assert.ErrorIs(t, err, io.EOF)
}

func TestBuildMessage_NoRecipient(t *testing.T) {
	_, err := buildMessage("", "noreply@example.com", &domain.Message{})
	require.Error(t, err)
}

type fakeRawSender struct {
	input *ses.SendRawEmailInput
	err   error
}

func (f *fakeRawSender) SendRawEmail(ctx context.Context, params *ses.SendRawEmailInput, optFns ...func(*ses.Options)) (*ses.SendRawEmailOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &ses.SendRawEmailOutput{MessageId: aws.String("msg-1")}, nil
}

func TestSESMailer_Send(t *testing.T) {
	sender := &fakeRawSender{}
	m := &sesMailer{client: sender, fromAddress: "noreply@example.com", logger: testLogger}

	err := m.Send(context.Background(), &domain.Message{To: "ana@example.com", Subject: "s", Text: "t"})

	require.NoError(t, err)
	require.NotNil(t, sender.input)
	assert.Equal(t, []string{"ana@example.com"}, sender.input.Destinations)
	assert.Equal(t, "noreply@example.com", aws.ToString(sender.input.Source))
	assert.Contains(t, string(sender.input.RawMessage.Data), "MIME-Version: 1.0")

	sender.err = errors.New("throttled")
	err = m.Send(context.Background(), &domain.Message{To: "ana@example.com"})
	require.ErrorContains(t, err, "SES")
}

func TestNewMailer(t *testing.T) {
	tests := []struct {
		name    string
		config  MailerConfig
		wantSES bool
		wantErr bool
	}{
		{name: "noop", config: MailerConfig{Provider: "noop"}},
		{name: "unknown falls back to noop", config: MailerConfig{Provider: "smtp"}},
		{name: "ses", config: MailerConfig{Provider: "ses", FromAddress: "noreply@example.com", SES: SESConfig{Region: "eu-west-1"}}, wantSES: true},
		{name: "ses without sender", config: MailerConfig{Provider: "ses"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewMailer(tt.config, testLogger)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			_, isSES := m.(*sesMailer)
			assert.Equal(t, tt.wantSES, isSES)
			if !isSES {
				require.NoError(t, m.Send(context.Background(), &domain.Message{To: "x@example.com"}))
			}
		})
	}
}
