// Package email sends operator notifications for failed submissions.
package email

import "context"

// FailureAlert describes a submission failure worth waking somebody up for.
type FailureAlert struct {
	DocumentType   string
	DocumentNumber string
	BusinessTIN    string
	ErrorType      string
	ErrorCode      string
	ErrorMessage   string
}

type Provider interface {
	Send(ctx context.Context, to []string, subject, htmlBody string) error
	SendFailureAlert(ctx context.Context, alert FailureAlert) error
}

// NoOpProvider is used when no SMTP host is configured.
type NoOpProvider struct{}

func (NoOpProvider) Send(ctx context.Context, to []string, subject, htmlBody string) error {
	return nil
}

func (NoOpProvider) SendFailureAlert(ctx context.Context, alert FailureAlert) error {
	return nil
}
