// Package feedback requests short AI-generated encouragement text for a
// scored submission. The request is the one outbound call that is allowed to
// fail soft: persistence proceeds whatever happens here.
package feedback

import (
	"context"
	"fmt"
	"strings"

	"github.com/lagiland/scoreboard/internal/domain/model"
	"github.com/lagiland/scoreboard/internal/domain/scoring"
	"github.com/lagiland/scoreboard/pkg/logger"
	"github.com/lagiland/scoreboard/pkg/metrics"
)

// Request carries everything the prompt needs about a scored submission.
type Request struct {
	Name      string
	EntryCode string
	Category  model.Category
	Breakdown scoring.Breakdown
	Rubric    scoring.Rubric
	Likes     int
	Shares    int
	Comments  int
}

// Prompt renders the judge-style encouragement prompt for this request.
func (r Request) Prompt() string {
	var b strings.Builder
	b.WriteString("You are a professional judge for the \"Lagi City Land & Me\" contest.\n")
	fmt.Fprintf(&b, "Contestant: %s, entry code: %s, category: %s.\n", r.Name, r.EntryCode, r.Category.Label())
	fmt.Fprintf(&b, "Score achieved: %.2f/%.0f.\n", r.Breakdown.Total, r.Rubric.MaxTotal())
	b.WriteString("Score breakdown:\n")
	fmt.Fprintf(&b, "- General criteria: %.1f/%.0f\n", r.Breakdown.GeneralSubtotal, r.Rubric.General.Sum())
	fmt.Fprintf(&b, "- Category criteria: %.1f/%.0f\n", r.Breakdown.SpecificSubtotal, r.Rubric.Specific.Sum())
	fmt.Fprintf(&b, "- Social engagement: %.1f/%.0f (likes %d, shares %d, comments %d)\n",
		r.Breakdown.SocialSubtotal, r.Rubric.Social.MaxPoints(), r.Likes, r.Shares, r.Comments)
	b.WriteString("Write a short encouraging remark (about two sentences) for the contestant based on this score.")
	return b.String()
}

// Generator produces feedback text and may fail. GeminiGenerator is the real
// implementation; tests substitute stubs.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// Requester wraps a Generator with the fail-soft contract: it always returns
// a usable string. Failures are logged and counted, never propagated.
type Requester struct {
	gen      Generator
	fallback string
	log      logger.Logger
}

// NewRequester builds a Requester around gen. A nil gen means feedback is
// disabled; every request yields the fallback text.
func NewRequester(gen Generator, opts ...Option) *Requester {
	r := &Requester{gen: gen}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Request returns generated feedback for req, or the fallback text when the
// generator is absent or fails. The caller can persist the result as-is.
func (r *Requester) Request(ctx context.Context, req Request) string {
	if r.gen == nil {
		return r.fallback
	}

	text, err := r.gen.Generate(ctx, req)
	if err != nil {
		metrics.RecordFeedbackFailure()
		if r.log != nil {
			r.log.Warn(ctx, "feedback generation failed",
				logger.String("entryCode", req.EntryCode),
				logger.Error(err),
			)
		}
		return r.fallback
	}
	return text
}
