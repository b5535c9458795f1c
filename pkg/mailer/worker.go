package mailer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// ErrMalformedJob marks a message that can never be delivered; the worker
// drops it instead of requeueing.
var ErrMalformedJob = errors.New("malformed email job")

// Worker turns queued EmailJobs into sent mail.
type Worker struct {
	Sender  Sender
	Logger  logrus.FieldLogger
	Timeout time.Duration
}

func NewWorker(s Sender, logger logrus.FieldLogger) *Worker {
	return &Worker{Sender: s, Logger: logger, Timeout: 15 * time.Second}
}

// Process decodes, renders and sends one message body.
func (w *Worker) Process(ctx context.Context, body []byte) error {
	var job EmailJob
	if err := json.Unmarshal(body, &job); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedJob, err)
	}
	resolved, err := job.Resolve()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedJob, err)
	}

	c, cancel := context.WithTimeout(ctx, w.Timeout)
	defer cancel()
	if err := w.Sender.Send(c, resolved.To, resolved.Subject, resolved.Text, resolved.HTML); err != nil {
		return fmt.Errorf("send %s email: %w", job.Template, err)
	}
	if w.Logger != nil {
		w.Logger.WithFields(logrus.Fields{"template": job.Template}).Info("email sent")
	}
	return nil
}
