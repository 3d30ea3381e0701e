package announce

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"placecast/models"
	"placecast/pkg/forum"
)

type mockForum struct {
	calls  int
	params forum.CreatePostParams
	postID string
	err    error
}

func (m *mockForum) CreatePost(_ context.Context, params forum.CreatePostParams) (string, error) {
	m.calls++
	m.params = params
	return m.postID, m.err
}

type mockFallback struct {
	calls   int
	content string
	err     error
}

func (m *mockFallback) Send(_ context.Context, content string) error {
	m.calls++
	m.content = content
	return m.err
}

type mockRecorder struct {
	attempts []Attempt
	err      error
}

func (m *mockRecorder) Record(_ context.Context, a Attempt) error {
	m.attempts = append(m.attempts, a)
	return m.err
}

func testConfig() Config {
	return Config{
		ExperienceID:  "exp_42",
		UserID:        "user_1",
		CompanyID:     "biz_1",
		ViewerBaseURL: "https://viewer.example.com",
	}
}

func testPlace() models.Place {
	return models.Place{ID: "plc_1", Name: "Blue Bottle", Address: "300 Webster St"}
}

func TestAnnounce_Posted(t *testing.T) {
	f := &mockForum{postID: "post_1"}
	rec := &mockRecorder{}
	p := NewPoster(testConfig(), f, nil, rec, zerolog.Nop())

	res := p.Announce(context.Background(), testPlace())

	if res.Outcome != OutcomePosted {
		t.Fatalf("Outcome = %v, want posted", res.Outcome)
	}
	if res.PostID != "post_1" {
		t.Errorf("PostID = %q, want post_1", res.PostID)
	}
	if !f.params.NotifyAllMembers {
		t.Error("post should request notifying all members")
	}
	if f.params.UserID != "user_1" || f.params.CompanyID != "biz_1" {
		t.Errorf("post not scoped to the configured user/company: %+v", f.params)
	}
	if len(rec.attempts) != 1 || rec.attempts[0].Outcome != OutcomePosted {
		t.Errorf("recorder should hold one posted attempt, got %+v", rec.attempts)
	}
	if rec.attempts[0].Error != "" {
		t.Errorf("posted attempt should have no error, got %q", rec.attempts[0].Error)
	}
}

func TestAnnounce_FallbackOnForumFailure(t *testing.T) {
	f := &mockForum{err: errors.New("permission denied")}
	fb := &mockFallback{}
	rec := &mockRecorder{}
	p := NewPoster(testConfig(), f, fb, rec, zerolog.Nop())

	res := p.Announce(context.Background(), testPlace())

	if res.Outcome != OutcomeFallback {
		t.Fatalf("Outcome = %v, want fallback", res.Outcome)
	}
	if res.PostID != "" {
		t.Errorf("PostID = %q, want empty", res.PostID)
	}
	if fb.calls != 1 {
		t.Fatalf("fallback calls = %d, want exactly 1", fb.calls)
	}
	if !strings.Contains(fb.content, "Blue Bottle") {
		t.Errorf("fallback content %q should contain the place name", fb.content)
	}
	if len(rec.attempts) != 1 || rec.attempts[0].Outcome != OutcomeFallback {
		t.Errorf("recorder should hold one fallback attempt, got %+v", rec.attempts)
	}
	if !strings.Contains(rec.attempts[0].Error, "permission denied") {
		t.Errorf("attempt error %q should carry the forum failure", rec.attempts[0].Error)
	}
}

func TestAnnounce_FailureWithoutFallback(t *testing.T) {
	f := &mockForum{err: errors.New("network down")}
	rec := &mockRecorder{}
	p := NewPoster(testConfig(), f, nil, rec, zerolog.Nop())

	res := p.Announce(context.Background(), testPlace())

	if res.Outcome != OutcomeFailed {
		t.Fatalf("Outcome = %v, want failed", res.Outcome)
	}
	if f.calls != 1 {
		t.Errorf("forum calls = %d, want 1 (no retries, no extra network calls)", f.calls)
	}
}

func TestAnnounce_FallbackAlsoFails(t *testing.T) {
	f := &mockForum{err: errors.New("network down")}
	fb := &mockFallback{err: errors.New("webhook gone")}
	rec := &mockRecorder{}
	p := NewPoster(testConfig(), f, fb, rec, zerolog.Nop())

	res := p.Announce(context.Background(), testPlace())

	if res.Outcome != OutcomeFailed {
		t.Fatalf("Outcome = %v, want failed", res.Outcome)
	}
	if fb.calls != 1 {
		t.Errorf("fallback calls = %d, want exactly 1", fb.calls)
	}
	if len(rec.attempts) != 1 {
		t.Fatalf("recorder should hold one attempt, got %d", len(rec.attempts))
	}
	got := rec.attempts[0].Error
	if !strings.Contains(got, "network down") || !strings.Contains(got, "webhook gone") {
		t.Errorf("attempt error %q should carry both failures", got)
	}
}

func TestAnnounce_RecorderErrorIsSwallowed(t *testing.T) {
	f := &mockForum{postID: "post_1"}
	rec := &mockRecorder{err: errors.New("database unavailable")}
	p := NewPoster(testConfig(), f, nil, rec, zerolog.Nop())

	res := p.Announce(context.Background(), testPlace())
	if res.Outcome != OutcomePosted {
		t.Fatalf("Outcome = %v, want posted despite recorder failure", res.Outcome)
	}
}

func TestAnnounce_NilRecorder(t *testing.T) {
	f := &mockForum{postID: "post_1"}
	p := NewPoster(testConfig(), f, nil, nil, zerolog.Nop())

	res := p.Announce(context.Background(), testPlace())
	if res.Outcome != OutcomePosted {
		t.Fatalf("Outcome = %v, want posted", res.Outcome)
	}
}
