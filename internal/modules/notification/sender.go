// Package notification sends the two guest emails: "booking received" after
// the contact form, "booking confirmed" after an admin confirms. Sends are
// fire-once: no queue, no retry, no dedup.
package notification

import (
	"context"
	"errors"
	"fmt"
)

type Template string

const (
	TemplateBookingReceived  Template = "booking_received"
	TemplateBookingConfirmed Template = "booking_confirmed"
)

// ErrNotConfigured means the transport lacks credentials; nothing was sent.
var ErrNotConfigured = errors.New("email configuration is missing")

// RecommendedAttachmentBytes is the raw size above which a send is still
// attempted but logged; EmailJS's free plan rejects larger payloads.
const RecommendedAttachmentBytes = 50 * 1024

type Attachment struct {
	Name     string
	MIMEType string
	Data     []byte
}

// PDFAttachment builds an application/pdf attachment, naming it
// attachment.pdf when name is empty.
func PDFAttachment(data []byte, name string) Attachment {
	if name == "" {
		name = "attachment.pdf"
	}
	return Attachment{Name: name, MIMEType: "application/pdf", Data: data}
}

// Message is one templated email. Params are the template variables.
type Message struct {
	Template    Template
	To          string
	Subject     string
	Params      map[string]string
	Attachments []Attachment
}

type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// EmailError is a send that did not go through.
type EmailError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *EmailError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("failed to send email: %d - %s", e.StatusCode, e.Body)
	}
	return fmt.Sprintf("failed to send email: %v", e.Err)
}

func (e *EmailError) Unwrap() error { return e.Err }
