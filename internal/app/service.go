// Package service orchestrates submissions: validation, score conversion,
// feedback generation and persistence, plus the read side of the dashboard.
package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/lagiland/scoreboard/internal/adapters/feedback"
	"github.com/lagiland/scoreboard/internal/adapters/repository"
	"github.com/lagiland/scoreboard/internal/domain/inflight"
	"github.com/lagiland/scoreboard/internal/domain/model"
	"github.com/lagiland/scoreboard/internal/domain/scoring"
	"github.com/lagiland/scoreboard/pkg/logger"
	"github.com/lagiland/scoreboard/pkg/metrics"
)

// Submission carries the raw judge inputs for one contestant.
type Submission struct {
	Name      string
	EntryCode string
	Category  model.Category
	General   model.GeneralScores
	Specific  model.SpecificScores
	Likes     int
	Shares    int
	Comments  int
}

// Stats summarizes the contest for the dashboard.
type Stats struct {
	Total           int                    `json:"total"`
	AverageScore    float64                `json:"average_score"`
	TopContestant   *model.Contestant      `json:"top_contestant,omitempty"`
	CategoryCounts  map[model.Category]int `json:"category_counts"`
	MaxInteractions int                    `json:"max_interactions"`
	MaxTotalScore   float64                `json:"max_total_score"`
}

// Service implements the API dependencies for the scoring dashboard.
//
// The store owns all durable state; Service keeps a read-through cached list
// that is only ever replaced wholesale after a successful re-list. A failed
// refresh preserves the previous list so the dashboard never blanks out.
type Service struct {
	mu sync.RWMutex

	store     repository.Store
	calc      *scoring.Calculator
	requester *feedback.Requester
	guard     inflight.Guard

	exportFilename string

	// Cached contestant list, most recent first.
	contestants []model.Contestant

	log logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithStore sets the contestant store.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithCalculator sets the score calculator.
func WithCalculator(calc *scoring.Calculator) Option {
	return func(s *Service) {
		if calc != nil {
			s.calc = calc
		}
	}
}

// WithFeedback sets the feedback requester.
func WithFeedback(requester *feedback.Requester) Option {
	return func(s *Service) {
		if requester != nil {
			s.requester = requester
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(log logger.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// WithExportFilename sets the suggested CSV download name.
func WithExportFilename(name string) Option {
	return func(s *Service) {
		if name != "" {
			s.exportFilename = name
		}
	}
}

// New constructs a Service. Without options it runs on the in-memory store
// with the canonical rubric and feedback disabled.
func New(opts ...Option) *Service {
	s := &Service{
		store:          repository.NewMemoryStore(),
		calc:           scoring.NewCalculator(),
		requester:      feedback.NewRequester(nil),
		guard:          inflight.NewInMemoryGuard(),
		exportFilename: "contest_results.csv",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start primes the cached list from the store.
func (s *Service) Start(ctx context.Context) error {
	if s.log == nil {
		s.log = logger.Get()
	}
	if err := s.Refresh(ctx); err != nil {
		return fmt.Errorf("initial list: %w", err)
	}
	s.log.Info(ctx, "scoring service started",
		logger.Float64("maxTotal", s.calc.Rubric().MaxTotal()),
	)
	return nil
}

// Rubric returns the active scoring rubric.
func (s *Service) Rubric() scoring.Rubric {
	return s.calc.Rubric()
}

// Submit validates, scores, requests feedback and persists one submission.
//
// The flow is strictly sequential: compute (pure), feedback (fail-soft),
// persist (fail-hard), re-list. When persistence fails the generated feedback
// is discarded; the judge resubmits from scratch.
func (s *Service) Submit(ctx context.Context, sub Submission) (model.Contestant, error) {
	start := time.Now()

	name := strings.TrimSpace(sub.Name)
	entryCode := strings.TrimSpace(sub.EntryCode)
	if name == "" || entryCode == "" {
		return model.Contestant{}, fmt.Errorf("name and entry code are required: %w", ErrValidation)
	}
	if !sub.Category.Valid() {
		return model.Contestant{}, fmt.Errorf("unknown category %q: %w", sub.Category, ErrValidation)
	}

	rubric := s.calc.Rubric()
	input := scoring.Input{
		General:  sub.General,
		Specific: sub.Specific,
		Likes:    sub.Likes,
		Shares:   sub.Shares,
		Comments: sub.Comments,
	}
	if err := rubric.ValidateInput(input); err != nil {
		return model.Contestant{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	// One outstanding submission per entry code.
	if !s.guard.Begin(ctx, entryCode) {
		metrics.RecordDuplicateSubmission()
		return model.Contestant{}, fmt.Errorf("entry %s: %w", entryCode, ErrDuplicateSubmission)
	}
	defer s.guard.End(ctx, entryCode)

	breakdown, err := s.calc.Score(input)
	if err != nil {
		return model.Contestant{}, err
	}

	// Fail-soft: always yields a usable string.
	aiFeedback := s.requester.Request(ctx, feedback.Request{
		Name:      name,
		EntryCode: entryCode,
		Category:  sub.Category,
		Breakdown: breakdown,
		Rubric:    rubric,
		Likes:     sub.Likes,
		Shares:    sub.Shares,
		Comments:  sub.Comments,
	})

	contestant := model.Contestant{
		Name:      name,
		EntryCode: entryCode,
		Category:  sub.Category,
		General:   sub.General,
		Specific:  sub.Specific,
		Social: model.SocialScores{
			LikeCount:     sub.Likes,
			ShareCount:    sub.Shares,
			CommentCount:  sub.Comments,
			LikePoints:    breakdown.LikePoints,
			SharePoints:   breakdown.SharePoints,
			CommentPoints: breakdown.CommentPoints,
		},
		TotalScore: breakdown.Total,
		AIFeedback: aiFeedback,
	}

	id, err := s.store.Create(ctx, contestant)
	if err != nil {
		metrics.RecordStoreError("create")
		return model.Contestant{}, err
	}
	contestant.ID = id
	metrics.RecordSubmission(float64(time.Since(start).Milliseconds()))

	// Reconcile the cache; a failed refresh keeps the previous list.
	if err := s.Refresh(ctx); err != nil {
		s.log.Warn(ctx, "list refresh after create failed; keeping previous list",
			logger.String("id", id),
			logger.Error(err),
		)
	} else if fresh, ok := s.find(id); ok {
		contestant = fresh
	}

	s.log.Info(ctx, "submission persisted",
		logger.String("id", id),
		logger.String("entryCode", entryCode),
		logger.Float64("totalScore", contestant.TotalScore),
	)
	return contestant, nil
}

// Refresh re-lists from the store and replaces the cached list wholesale.
// On failure the previous list is preserved.
func (s *Service) Refresh(ctx context.Context) error {
	list, err := s.store.List(ctx)
	if err != nil {
		metrics.RecordStoreError("list")
		return err
	}

	s.mu.Lock()
	s.contestants = list
	s.mu.Unlock()

	metrics.UpdateContestantCount(len(list))
	metrics.UpdateAverageScore(averageScore(list))
	return nil
}

// Contestants returns the contestant list, refreshed from the store when
// possible. The boolean reports whether the data is stale because the
// refresh failed.
func (s *Service) Contestants(ctx context.Context, query string) ([]model.Contestant, bool) {
	stale := false
	if err := s.Refresh(ctx); err != nil {
		stale = true
		s.log.Warn(ctx, "list refresh failed; serving cached data", logger.Error(err))
	}

	s.mu.RLock()
	cached := s.contestants
	s.mu.RUnlock()

	query = strings.ToLower(strings.TrimSpace(query))
	out := make([]model.Contestant, 0, len(cached))
	for _, c := range cached {
		if query == "" ||
			strings.Contains(strings.ToLower(c.Name), query) ||
			strings.Contains(strings.ToLower(c.EntryCode), query) {
			out = append(out, c)
		}
	}
	return out, stale
}

// Delete removes one contestant and re-lists to reconcile the cache; there
// is no optimistic local removal.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		metrics.RecordStoreError("delete")
		return err
	}
	metrics.RecordDeletion()

	if err := s.Refresh(ctx); err != nil {
		s.log.Warn(ctx, "list refresh after delete failed; keeping previous list",
			logger.String("id", id),
			logger.Error(err),
		)
	}
	s.log.Info(ctx, "contestant deleted", logger.String("id", id))
	return nil
}

// Stats computes dashboard statistics over the cached list.
func (s *Service) Stats(ctx context.Context) Stats {
	if err := s.Refresh(ctx); err != nil {
		s.log.Warn(ctx, "list refresh for stats failed; using cached data", logger.Error(err))
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := Stats{
		Total:          len(s.contestants),
		AverageScore:   averageScore(s.contestants),
		CategoryCounts: make(map[model.Category]int, 3),
		MaxTotalScore:  s.calc.Rubric().MaxTotal(),
	}
	for _, cat := range model.Categories() {
		stats.CategoryCounts[cat] = 0
	}

	var top *model.Contestant
	for i := range s.contestants {
		c := s.contestants[i]
		stats.CategoryCounts[c.Category]++
		if n := c.Social.Interactions(); n > stats.MaxInteractions {
			stats.MaxInteractions = n
		}
		if top == nil || c.TotalScore > top.TotalScore {
			top = &s.contestants[i]
		}
	}
	if top != nil {
		leader := *top
		stats.TopContestant = &leader
	}
	return stats
}

// ExportCSV writes the contestant list as comma-separated rows with a fixed
// header, most recent first.
func (s *Service) ExportCSV(ctx context.Context, w io.Writer) error {
	list, stale := s.Contestants(ctx, "")
	if stale {
		s.log.Warn(ctx, "exporting from stale cached data")
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Name", "EntryCode", "CategoryLabel", "TotalScore", "LikeCount", "ShareCount", "CommentCount"}); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, c := range list {
		record := []string{
			c.Name,
			c.EntryCode,
			c.Category.Label(),
			strconv.FormatFloat(c.TotalScore, 'f', -1, 64),
			strconv.Itoa(c.Social.LikeCount),
			strconv.Itoa(c.Social.ShareCount),
			strconv.Itoa(c.Social.CommentCount),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// ExportFilename returns the suggested download name for CSV exports.
func (s *Service) ExportFilename() string {
	return s.exportFilename
}

// find looks up a contestant by id in the cached list.
func (s *Service) find(id string) (model.Contestant, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, c := range s.contestants {
		if c.ID == id {
			return c, true
		}
	}
	return model.Contestant{}, false
}

func averageScore(list []model.Contestant) float64 {
	if len(list) == 0 {
		return 0
	}
	sum := 0.0
	for _, c := range list {
		sum += c.TotalScore
	}
	return sum / float64(len(list))
}
