// Package scoring converts raw judge inputs into point totals.
package scoring

import (
	"fmt"
	"math"

	"github.com/lagiland/scoreboard/internal/domain/model"
)

// Channel holds the conversion parameters for one social channel: raw counts
// are divided by Rate and the result is clamped at Cap.
type Channel struct {
	Cap  float64 `koanf:"cap"`
	Rate float64 `koanf:"rate"`
}

// Points converts a raw interaction count into clamped points.
func (c Channel) Points(count int) float64 {
	return math.Min(c.Cap, float64(count)/c.Rate)
}

// GeneralCaps holds the per-field maxima for the five general criteria.
type GeneralCaps struct {
	Topic      float64 `koanf:"topic"`
	Mention    float64 `koanf:"mention"`
	Emotion    float64 `koanf:"emotion"`
	Message    float64 `koanf:"message"`
	Compliance float64 `koanf:"compliance"`
}

// Sum returns the maximum general subtotal.
func (g GeneralCaps) Sum() float64 {
	return g.Topic + g.Mention + g.Emotion + g.Message + g.Compliance
}

// SpecificCaps holds the per-field maxima for the three specific criteria.
// The caps are category-independent; only the labels vary.
type SpecificCaps struct {
	Criteria1 float64 `koanf:"criteria1"`
	Criteria2 float64 `koanf:"criteria2"`
	Criteria3 float64 `koanf:"criteria3"`
}

// Sum returns the maximum specific subtotal.
func (s SpecificCaps) Sum() float64 {
	return s.Criteria1 + s.Criteria2 + s.Criteria3
}

// SocialChannels groups the conversion parameters for the three channels.
type SocialChannels struct {
	Like    Channel `koanf:"like"`
	Share   Channel `koanf:"share"`
	Comment Channel `koanf:"comment"`
}

// MaxPoints returns the maximum social subtotal.
func (s SocialChannels) MaxPoints() float64 {
	return s.Like.Cap + s.Share.Cap + s.Comment.Cap
}

// Rubric is the full scoring configuration. It is loaded from external
// configuration rather than hard-baked; DefaultRubric supplies the canonical
// table.
type Rubric struct {
	General  GeneralCaps    `koanf:"general"`
	Specific SpecificCaps   `koanf:"specific"`
	Social   SocialChannels `koanf:"social"`
}

// DefaultRubric returns the canonical rubric: 60 general points, 20 specific
// points, and 20 social points (like 1pt/25 capped at 8, share 1pt/25 capped
// at 5, comment 1pt/10 capped at 7).
func DefaultRubric() Rubric {
	return Rubric{
		General: GeneralCaps{
			Topic:      10,
			Mention:    10,
			Emotion:    15,
			Message:    15,
			Compliance: 10,
		},
		Specific: SpecificCaps{
			Criteria1: 8,
			Criteria2: 6,
			Criteria3: 6,
		},
		Social: SocialChannels{
			Like:    Channel{Cap: 8, Rate: 25},
			Share:   Channel{Cap: 5, Rate: 25},
			Comment: Channel{Cap: 7, Rate: 10},
		},
	}
}

// MaxTotal returns the maximum achievable total under this rubric.
func (r Rubric) MaxTotal() float64 {
	return r.General.Sum() + r.Specific.Sum() + r.Social.MaxPoints()
}

// Validate rejects rubrics that would make score conversion undefined.
// A zero exchange rate must fail here rather than surface as a division later.
func (r Rubric) Validate() error {
	for _, ch := range []struct {
		name string
		c    Channel
	}{
		{"like", r.Social.Like},
		{"share", r.Social.Share},
		{"comment", r.Social.Comment},
	} {
		if ch.c.Rate <= 0 {
			return fmt.Errorf("%s channel rate %v: %w", ch.name, ch.c.Rate, ErrInvalidRubric)
		}
		if ch.c.Cap < 0 {
			return fmt.Errorf("%s channel cap %v: %w", ch.name, ch.c.Cap, ErrInvalidRubric)
		}
	}
	for _, cap := range []float64{
		r.General.Topic, r.General.Mention, r.General.Emotion,
		r.General.Message, r.General.Compliance,
		r.Specific.Criteria1, r.Specific.Criteria2, r.Specific.Criteria3,
	} {
		if cap < 0 {
			return fmt.Errorf("negative criteria cap %v: %w", cap, ErrInvalidRubric)
		}
	}
	return nil
}

// ValidateInput checks that every rating lies in [0, cap] on a half-point
// grid and that interaction counts are non-negative. The calculator itself
// never re-clamps ratings; out-of-range input is rejected up front.
func (r Rubric) ValidateInput(in Input) error {
	ratings := []struct {
		name  string
		value float64
		max   float64
	}{
		{"general.topic", in.General.Topic, r.General.Topic},
		{"general.mention", in.General.Mention, r.General.Mention},
		{"general.emotion", in.General.Emotion, r.General.Emotion},
		{"general.message", in.General.Message, r.General.Message},
		{"general.compliance", in.General.Compliance, r.General.Compliance},
		{"specific.criteria1", in.Specific.Criteria1, r.Specific.Criteria1},
		{"specific.criteria2", in.Specific.Criteria2, r.Specific.Criteria2},
		{"specific.criteria3", in.Specific.Criteria3, r.Specific.Criteria3},
	}
	for _, f := range ratings {
		if f.value < 0 || f.value > f.max {
			return fmt.Errorf("%s=%v exceeds [0,%v]: %w", f.name, f.value, f.max, ErrOutOfRange)
		}
		if !isHalfStep(f.value) {
			return fmt.Errorf("%s=%v is not a half-point step: %w", f.name, f.value, ErrOutOfRange)
		}
	}
	counts := []struct {
		name  string
		value int
	}{
		{"likes", in.Likes},
		{"shares", in.Shares},
		{"comments", in.Comments},
	}
	for _, c := range counts {
		if c.value < 0 {
			return fmt.Errorf("%s=%d: %w", c.name, c.value, ErrNegativeCount)
		}
	}
	return nil
}

// isHalfStep reports whether v sits on a 0.5 grid.
func isHalfStep(v float64) bool {
	doubled := v * 2
	return math.Abs(doubled-math.Round(doubled)) < 1e-9
}

// Input carries the raw judge inputs for one submission.
type Input struct {
	General  model.GeneralScores
	Specific model.SpecificScores
	Likes    int
	Shares   int
	Comments int
}

// Breakdown is the computed score decomposition for one submission.
type Breakdown struct {
	GeneralSubtotal  float64
	SpecificSubtotal float64
	LikePoints       float64
	SharePoints      float64
	CommentPoints    float64
	SocialSubtotal   float64
	// Total is the sum of all subtotals, rounded once to two decimals.
	Total float64
}

// Calculator converts judge inputs to totals under a fixed rubric.
// It is stateless and deterministic.
type Calculator struct {
	rubric Rubric
}

// Option applies a configuration option to the Calculator.
type Option func(*Calculator)

// WithRubric overrides the default rubric.
func WithRubric(r Rubric) Option {
	return func(c *Calculator) {
		c.rubric = r
	}
}

// NewCalculator builds a Calculator, defaulting to the canonical rubric.
func NewCalculator(opts ...Option) *Calculator {
	c := &Calculator{rubric: DefaultRubric()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Rubric returns the rubric this calculator was configured with.
func (c *Calculator) Rubric() Rubric {
	return c.rubric
}

// Score computes the breakdown for in. The only failure mode is an invalid
// rubric (a zero exchange rate); ratings are summed as given, social counts
// are converted and clamped per channel, and the total is rounded to two
// decimals at the end.
func (c *Calculator) Score(in Input) (Breakdown, error) {
	if err := c.rubric.Validate(); err != nil {
		return Breakdown{}, err
	}

	b := Breakdown{
		GeneralSubtotal:  in.General.Sum(),
		SpecificSubtotal: in.Specific.Sum(),
		LikePoints:       c.rubric.Social.Like.Points(in.Likes),
		SharePoints:      c.rubric.Social.Share.Points(in.Shares),
		CommentPoints:    c.rubric.Social.Comment.Points(in.Comments),
	}
	b.SocialSubtotal = b.LikePoints + b.SharePoints + b.CommentPoints
	b.Total = round2(b.GeneralSubtotal + b.SpecificSubtotal + b.SocialSubtotal)
	return b, nil
}

// round2 rounds to two decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
