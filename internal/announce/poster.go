// Package announce turns place records into forum announcements.
//
// Announcement delivery is strictly best-effort. Announce never returns an
// error: a failed forum post falls back to a generic webhook (when one is
// configured), and every attempt is logged and recorded so callers can see
// which path a given place took. The workflow that created the place is never
// interrupted by a delivery failure.
package announce

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"placecast/models"
	"placecast/pkg/forum"
)

// Outcome names the path an announcement took.
type Outcome int

const (
	// OutcomeFailed means the forum post failed and no fallback was
	// delivered (none configured, or it failed too).
	OutcomeFailed Outcome = iota
	// OutcomePosted means the forum post was created.
	OutcomePosted
	// OutcomeFallback means the forum post failed but the simplified
	// fallback message was delivered.
	OutcomeFallback
)

func (o Outcome) String() string {
	switch o {
	case OutcomePosted:
		return "posted"
	case OutcomeFallback:
		return "fallback"
	default:
		return "failed"
	}
}

// Result reports what happened to one announcement. PostID is set only for
// OutcomePosted.
type Result struct {
	Outcome Outcome
	PostID  string
}

// Attempt is the diagnostic record of one announcement attempt.
type Attempt struct {
	PlaceID      string
	PlaceName    string
	ExperienceID string
	Outcome      Outcome
	PostID       string
	Error        string
	At           time.Time
}

// PostCreator creates a forum post and returns its id.
type PostCreator interface {
	CreatePost(ctx context.Context, params forum.CreatePostParams) (string, error)
}

// FallbackSender delivers the simplified fallback message.
type FallbackSender interface {
	Send(ctx context.Context, content string) error
}

// Recorder persists attempt diagnostics. Recorder errors are swallowed by
// the poster; they must never affect the announcement outcome.
type Recorder interface {
	Record(ctx context.Context, a Attempt) error
}

// Config carries the routing identifiers every announcement is scoped to.
// All of them are opaque strings validated only by the remote service.
type Config struct {
	ExperienceID  string
	UserID        string
	CompanyID     string
	ViewerBaseURL string
}

type Poster struct {
	cfg      Config
	forum    PostCreator
	fallback FallbackSender
	recorder Recorder
	log      zerolog.Logger
}

// NewPoster builds a poster. fallback may be nil when no fallback webhook is
// configured; recorder may be nil to record attempts in the log only.
func NewPoster(cfg Config, forumClient PostCreator, fallback FallbackSender, recorder Recorder, log zerolog.Logger) *Poster {
	return &Poster{
		cfg:      cfg,
		forum:    forumClient,
		fallback: fallback,
		recorder: recorder,
		log:      log,
	}
}

// Announce composes and submits the forum post for a place. It is total:
// every failure is swallowed, logged and recorded, and the returned Result
// tells the caller which path the announcement took.
func (p *Poster) Announce(ctx context.Context, place models.Place) Result {
	title, body := Compose(place, p.cfg.ExperienceID, p.cfg.ViewerBaseURL)

	postID, err := p.forum.CreatePost(ctx, forum.CreatePostParams{
		ExperienceID:     p.cfg.ExperienceID,
		UserID:           p.cfg.UserID,
		CompanyID:        p.cfg.CompanyID,
		Title:            title,
		Content:          body,
		NotifyAllMembers: true,
	})
	if err == nil {
		p.log.Info().
			Str("place_id", place.ID).
			Str("post_id", postID).
			Msg("announcement posted")
		res := Result{Outcome: OutcomePosted, PostID: postID}
		p.record(ctx, place, res, nil)
		return res
	}

	p.log.Warn().
		Err(err).
		Str("place_id", place.ID).
		Str("title", title).
		Msg("failed to create forum post")

	if p.fallback == nil {
		res := Result{Outcome: OutcomeFailed}
		p.record(ctx, place, res, err)
		return res
	}

	content := fmt.Sprintf("New place %q was added, but the forum announcement could not be posted.", place.Name)
	if sendErr := p.fallback.Send(ctx, content); sendErr != nil {
		p.log.Warn().
			Err(sendErr).
			Str("place_id", place.ID).
			Msg("fallback delivery failed")
		res := Result{Outcome: OutcomeFailed}
		p.record(ctx, place, res, errors.Join(err, sendErr))
		return res
	}

	p.log.Info().Str("place_id", place.ID).Msg("announcement delivered via fallback webhook")
	res := Result{Outcome: OutcomeFallback}
	p.record(ctx, place, res, err)
	return res
}

func (p *Poster) record(ctx context.Context, place models.Place, res Result, cause error) {
	if p.recorder == nil {
		return
	}
	a := Attempt{
		PlaceID:      place.ID,
		PlaceName:    place.Name,
		ExperienceID: p.cfg.ExperienceID,
		Outcome:      res.Outcome,
		PostID:       res.PostID,
		At:           time.Now(),
	}
	if cause != nil {
		a.Error = cause.Error()
	}
	if err := p.recorder.Record(ctx, a); err != nil {
		p.log.Warn().Err(err).Str("place_id", place.ID).Msg("failed to record announcement attempt")
	}
}
