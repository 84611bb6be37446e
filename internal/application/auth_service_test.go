package application

import (
	"context"
	"errors"
	"testing"

	"github.com/oksasatya/noteful/pkg/helpers"
)

func TestUserService_Register(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	u, err := f.users.Register(ctx, RegisterInput{Username: "bobuser", Password: "password123", Fullname: "  Bob User "})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if u.ID == "" || u.Username != "bobuser" || u.Fullname != "Bob User" {
		t.Fatalf("unexpected user: %+v", u)
	}
	if u.Password == "password123" {
		t.Fatal("password stored in plain text")
	}

	_, err = f.users.Register(ctx, RegisterInput{Username: "bobuser", Password: "password456"})
	e := assertKind(t, err, KindValidation)
	if e.Field != "username" || e.Message != "Username already taken" {
		t.Fatalf("unexpected error: %+v", e)
	}
}

type recordingPublisher struct {
	jobs []any
	err  error
}

func (p *recordingPublisher) PublishJSON(_ context.Context, body any) error {
	p.jobs = append(p.jobs, body)
	return p.err
}

func TestUserService_SignupNotificationIsBestEffort(t *testing.T) {
	f := newFixture(t)
	pub := &recordingPublisher{err: errors.New("broker down")}
	f.users.WithSignupNotifications(pub, "Noteful", "ops@example.com")

	if _, err := f.users.Register(context.Background(), RegisterInput{Username: "alice", Password: "password123"}); err != nil {
		t.Fatalf("registration must not fail on publish error: %v", err)
	}
	if len(pub.jobs) != 1 {
		t.Fatalf("jobs published = %d, want 1", len(pub.jobs))
	}
}

func TestAuthService_LoginAndVerify(t *testing.T) {
	f := newFixture(t)
	u := f.register(t, "bobuser")
	ctx := context.Background()

	token, err := f.auth.Login(ctx, "bobuser", "password123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	id, err := f.auth.VerifyToken(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if id.ID != u.ID || id.Username != "bobuser" || id.Fullname != "bobuser" {
		t.Fatalf("unexpected identity: %+v", id)
	}

	refreshed, err := f.auth.Refresh(ctx, *id)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if _, err := f.auth.VerifyToken(refreshed); err != nil {
		t.Fatalf("verify refreshed: %v", err)
	}
}

func TestAuthService_BadCredentials(t *testing.T) {
	f := newFixture(t)
	f.register(t, "bobuser")
	ctx := context.Background()

	cases := []struct{ user, pass string }{
		{"bobuser", "wrong-password"},
		{"nobody", "password123"},
		{"", "password123"},
		{"bobuser", ""},
	}
	for _, c := range cases {
		if _, err := f.auth.Login(ctx, c.user, c.pass); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("login(%q,%q) = %v, want ErrInvalidCredentials", c.user, c.pass, err)
		}
	}
}

func TestAuthService_VerifyRejectsGarbage(t *testing.T) {
	f := newFixture(t)
	for _, tok := range []string{"", "not-a-token", "a.b.c"} {
		_, err := f.auth.VerifyToken(tok)
		assertKind(t, err, KindUnauthorized)
	}
}

func TestAuthService_RefreshRequiresStoredUser(t *testing.T) {
	f := newFixture(t)
	u := f.register(t, "bobuser")
	ctx := context.Background()

	// stale claims are replaced by the stored account
	token, err := f.auth.Refresh(ctx, helpers.Identity{ID: u.ID, Username: "bobuser", Fullname: "Old Name"})
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	id, err := f.auth.VerifyToken(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if id.Fullname != "bobuser" {
		t.Fatalf("fullname = %q, want the stored value", id.Fullname)
	}

	_, err = f.auth.Refresh(ctx, helpers.Identity{ID: "3c5b1f5e-6d1c-4a62-9a0f-5b3c2f1d0e11", Username: "ghost"})
	assertKind(t, err, KindUnauthorized)
}
