package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log/slog"
)

type ContactFormEmailData struct {
	Name      string
	Email     string
	Message   string
	Timestamp string
}

// ContactNotifier tells the site owner about a stored submission. The
// return value reports delivery; failures are never fatal to the caller.
type ContactNotifier interface {
	NotifyContact(ctx context.Context, data ContactFormEmailData) bool
}

type EmailContactNotifier struct {
	sender     EmailSender
	adminEmail string
	subject    string
}

func NewEmailContactNotifier(sender EmailSender, adminEmail, subject string) *EmailContactNotifier {
	return &EmailContactNotifier{sender: sender, adminEmail: adminEmail, subject: subject}
}

func (n *EmailContactNotifier) NotifyContact(ctx context.Context, data ContactFormEmailData) bool {
	html, err := contactHTMLBody(data)
	if err != nil {
		slog.Error("render contact email html", "error", err)
		html = ""
	}
	return n.sender.SendEmail(ctx, EmailRequest{
		To:       n.adminEmail,
		Subject:  n.subject,
		Body:     contactTextBody(data),
		HTMLBody: html,
		ReplyTo:  data.Email,
	})
}

func contactTextBody(d ContactFormEmailData) string {
	return fmt.Sprintf(`New Contact Form Submission

Name: %s
Email: %s
Time: %s

Message:
%s

---
You can reply directly to this email to respond to %s.`,
		d.Name, d.Email, d.Timestamp, d.Message, d.Name)
}

var contactHTMLTemplate = template.Must(template.New("contact").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <title>New Contact Form Submission</title>
</head>
<body style="font-family: -apple-system, 'Segoe UI', Roboto, Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #2c3e50;">New Contact Form Submission</h2>
  <table style="width: 100%; border-collapse: collapse;">
    <tr><td style="padding: 8px 0; font-weight: 600; width: 100px;">Name:</td><td>{{.Name}}</td></tr>
    <tr><td style="padding: 8px 0; font-weight: 600;">Email:</td><td><a href="mailto:{{.Email}}">{{.Email}}</a></td></tr>
    <tr><td style="padding: 8px 0; font-weight: 600;">Time:</td><td style="color: #6c757d;">{{.Timestamp}}</td></tr>
  </table>
  <p style="font-weight: 600; margin-top: 20px;">Message:</p>
  <div style="background-color: #f8f9fa; border-left: 4px solid #007bff; padding: 15px; white-space: pre-wrap; word-wrap: break-word;">{{.Message}}</div>
  <p style="color: #004085; font-size: 14px;">You can reply directly to this email to respond to {{.Name}}.</p>
  <p style="text-align: center; color: #6c757d; font-size: 12px;">This is an automated notification from your blog contact form.</p>
</body>
</html>
`))

func contactHTMLBody(d ContactFormEmailData) (string, error) {
	var buf bytes.Buffer
	if err := contactHTMLTemplate.Execute(&buf, d); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// MultiNotifier fans a notification out to every channel in order and
// reports success if any channel delivered.
type MultiNotifier []ContactNotifier

func (m MultiNotifier) NotifyContact(ctx context.Context, data ContactFormEmailData) bool {
	delivered := false
	for _, n := range m {
		if n.NotifyContact(ctx, data) {
			delivered = true
		}
	}
	return delivered
}
