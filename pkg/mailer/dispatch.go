package mailer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	mailtpl "github.com/oksasatya/noteful/pkg/mailer/templates"
)

var (
	ErrEmptyJob = errors.New("email job has no recipient or body")
	ErrRender   = errors.New("email template render failed")
)

// Dispatch renders job (when it names a template) and hands it to s.
func Dispatch(ctx context.Context, s Sender, job EmailJob) error {
	if strings.TrimSpace(job.To) == "" {
		return ErrEmptyJob
	}
	subject, text, html := job.Subject, job.Text, job.HTML
	if job.Template != "" {
		var err error
		subject, text, html, err = mailtpl.Render(job.Template, job.Data)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrRender, job.Template, err)
		}
	}
	if strings.TrimSpace(text) == "" && strings.TrimSpace(html) == "" {
		return ErrEmptyJob
	}
	return s.Send(ctx, job.To, strings.TrimSpace(subject), text, html)
}
