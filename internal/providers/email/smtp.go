package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/smtp"
	"strings"
)

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	NotifyTo string
}

type SMTPProvider struct {
	cfg Config
}

func NewSMTP(cfg Config) *SMTPProvider {
	return &SMTPProvider{cfg: cfg}
}

func (p *SMTPProvider) Send(ctx context.Context, to []string, subject, htmlBody string) error {
	_ = ctx
	if len(to) == 0 {
		return fmt.Errorf("no recipients")
	}

	auth := smtp.PlainAuth("", p.cfg.Username, p.cfg.Password, p.cfg.Host)
	addr := fmt.Sprintf("%s:%d", p.cfg.Host, p.cfg.Port)

	mime := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n\n"
	msg := []byte(fmt.Sprintf("To: %s\r\nSubject: %s\r\n%s\r\n%s", strings.Join(to, ", "), subject, mime, htmlBody))

	return smtp.SendMail(addr, auth, p.cfg.From, to, msg)
}

var failureTmpl = template.Must(template.New("failure_alert").Parse(`
<h3>EBM submission failed</h3>
<table>
  <tr><td>Document</td><td>{{.DocumentType}} {{.DocumentNumber}}</td></tr>
  <tr><td>Business TIN</td><td>{{.BusinessTIN}}</td></tr>
  <tr><td>Error type</td><td>{{.ErrorType}}</td></tr>
  {{if .ErrorCode}}<tr><td>Result code</td><td>{{.ErrorCode}}</td></tr>{{end}}
  <tr><td>Message</td><td>{{.ErrorMessage}}</td></tr>
</table>
`))

func (p *SMTPProvider) SendFailureAlert(ctx context.Context, alert FailureAlert) error {
	to := strings.TrimSpace(p.cfg.NotifyTo)
	if to == "" {
		return nil
	}

	var body bytes.Buffer
	if err := failureTmpl.Execute(&body, alert); err != nil {
		return fmt.Errorf("render failure alert: %w", err)
	}

	subject := fmt.Sprintf("EBM submission failed: %s %s", alert.DocumentType, alert.DocumentNumber)
	return p.Send(ctx, strings.Split(to, ","), subject, body.String())
}
