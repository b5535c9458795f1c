package mailer

import (
	"context"
	"errors"
	"time"

	"github.com/rafhaeldeandrade/south-american-universities/pkg/mailer/templates"
)

const (
	TemplateWelcome         = templates.Welcome
	TemplatePasswordChanged = templates.PasswordChanged
)

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// Either Template (+Data) or Subject/Text/HTML must be set.
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Template string         `json:"template,omitempty"`
	Data     map[string]any `json:"data,omitempty"`
}

// Resolve renders Template into Subject/Text/HTML when present.
func (j EmailJob) Resolve() (EmailJob, error) {
	if j.To == "" {
		return j, errors.New("email job has no recipient")
	}
	if j.Template == "" {
		if j.Subject == "" || (j.Text == "" && j.HTML == "") {
			return j, errors.New("email job has neither template nor content")
		}
		return j, nil
	}
	subject, text, html, err := templates.Render(j.Template, templates.FromMap(j.Data))
	if err != nil {
		return j, err
	}
	j.Subject, j.Text, j.HTML = subject, text, html
	return j, nil
}

// JSONPublisher is satisfied by helpers.RabbitPublisher.
type JSONPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// QueueNotifier implements contract.Notifier by queueing EmailJobs for the
// notification worker.
type QueueNotifier struct {
	Publisher  JSONPublisher
	AppName    string
	DocsURL    string
	SupportURL string
	Now        func() time.Time
}

func NewQueueNotifier(p JSONPublisher, appName, docsURL, supportURL string) *QueueNotifier {
	return &QueueNotifier{Publisher: p, AppName: appName, DocsURL: docsURL, SupportURL: supportURL, Now: time.Now}
}

func (n *QueueNotifier) Notify(ctx context.Context, to, template string, data map[string]any) error {
	if !templates.Known(template) {
		return errors.New("unknown email template: " + template)
	}
	now := time.Now
	if n.Now != nil {
		now = n.Now
	}
	base := templates.NewBaseEmailData(n.AppName, "", to,
		templates.WithLinks(n.DocsURL, n.SupportURL),
		templates.WithTime(now()),
	)
	merged := templates.ToMap(base)
	for k, v := range data {
		merged[k] = v
	}
	return n.Publisher.PublishJSON(ctx, EmailJob{To: to, Template: template, Data: merged})
}
