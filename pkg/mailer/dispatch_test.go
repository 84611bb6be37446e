package mailer

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	mailtpl "github.com/oksasatya/noteful/pkg/mailer/templates"
)

type fakeSender struct {
	to, subject, text, html string
	err                     error
	calls                   int
}

func (f *fakeSender) Send(_ context.Context, to, subject, text, html string) error {
	f.calls++
	f.to, f.subject, f.text, f.html = to, subject, text, html
	return f.err
}

func TestDispatch_RendersTemplate(t *testing.T) {
	s := &fakeSender{}
	job := EmailJob{
		To:       "ops@example.com",
		Template: mailtpl.SignupNotification,
		Data: mailtpl.NewSignupNotificationData("Noteful", "bobuser", "Bob User",
			mailtpl.WithUserID("3c5b1f5e-6d1c-4a62-9a0f-5b3c2f1d0e11"),
			mailtpl.WithTime(time.Date(2024, 1, 2, 3, 4, 0, 0, time.UTC)),
		),
	}
	if err := Dispatch(context.Background(), s, job); err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if s.to != "ops@example.com" {
		t.Fatalf("to = %q", s.to)
	}
	if s.subject != "[Noteful] New account: bobuser" {
		t.Fatalf("subject = %q", s.subject)
	}
	if !strings.Contains(s.text, "Full name: Bob User") || !strings.Contains(s.text, "02 January 2024, 03:04 UTC") {
		t.Fatalf("unexpected text body:\n%s", s.text)
	}
	if !strings.Contains(s.html, "<td>bobuser</td>") {
		t.Fatalf("unexpected html body:\n%s", s.html)
	}
}

func TestDispatch_EscapesHTML(t *testing.T) {
	s := &fakeSender{}
	job := EmailJob{
		To:       "ops@example.com",
		Template: mailtpl.SignupNotification,
		Data:     mailtpl.NewSignupNotificationData("Noteful", "<script>", ""),
	}
	if err := Dispatch(context.Background(), s, job); err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if strings.Contains(s.html, "<script>") {
		t.Fatalf("html body not escaped:\n%s", s.html)
	}
	if !strings.Contains(s.text, "(not provided)") {
		t.Fatalf("expected fullname fallback in text:\n%s", s.text)
	}
}

func TestDispatch_PlainBody(t *testing.T) {
	s := &fakeSender{}
	if err := Dispatch(context.Background(), s, EmailJob{To: "a@b.c", Subject: "hi", Text: "hello"}); err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if s.subject != "hi" || s.text != "hello" || s.html != "" {
		t.Fatalf("unexpected message: %+v", s)
	}
}

func TestDispatch_Errors(t *testing.T) {
	s := &fakeSender{}
	if err := Dispatch(context.Background(), s, EmailJob{Text: "x"}); !errors.Is(err, ErrEmptyJob) {
		t.Fatalf("missing recipient: got %v", err)
	}
	if err := Dispatch(context.Background(), s, EmailJob{To: "a@b.c"}); !errors.Is(err, ErrEmptyJob) {
		t.Fatalf("missing body: got %v", err)
	}
	if err := Dispatch(context.Background(), s, EmailJob{To: "a@b.c", Template: "nope"}); !errors.Is(err, ErrRender) {
		t.Fatalf("unknown template: got %v", err)
	}
	if s.calls != 0 {
		t.Fatalf("sender called %d times", s.calls)
	}

	s.err = errors.New("mailgun down")
	if err := Dispatch(context.Background(), s, EmailJob{To: "a@b.c", Text: "x"}); err == nil {
		t.Fatal("expected sender error")
	}
}
