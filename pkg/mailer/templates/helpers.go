package templates

import "time"

// Option pattern
type Option func(*EmailData)

func WithTime(t time.Time) Option {
	return func(d *EmailData) {
		utc := t.UTC()
		d.TimeAt = utc
		d.Time = utc.Format("02 January 2006, 15:04")
	}
}

func WithLinks(docsURL, supportURL string) Option {
	return func(d *EmailData) {
		d.DocsURL = docsURL
		d.SupportURL = supportURL
	}
}

// NewBaseEmailData fills the shared fields, then applies opts.
func NewBaseEmailData(appName, name, email string, opts ...Option) EmailData {
	d := EmailData{Name: name, Email: email, AppName: appName}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}
