package seed

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lagiland/scoreboard/pkg/logger"
)

// Run generates cfg.Count submissions and posts them concurrently.
func Run(ctx context.Context, cfg *Config) (*Stats, error) {
	log := logger.Get().Named("seed")

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	submissions := Generate(cfg.Count, rng)

	stats := &Stats{
		Generated: len(submissions),
		StartTime: time.Now(),
	}

	client := &http.Client{Timeout: cfg.Timeout}
	jobs := make(chan Submission)

	var created, rejected, failed atomic.Int64
	var totalScore atomicFloat

	var wg sync.WaitGroup
	for i := 0; i < cfg.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for sub := range jobs {
				score, status, err := post(ctx, client, cfg.BaseURL, sub)
				switch {
				case err != nil:
					failed.Add(1)
					log.Warn(ctx, "submission failed", logger.String("entryCode", sub.EntryCode), logger.Error(err))
				case status == http.StatusCreated:
					created.Add(1)
					totalScore.add(score)
					if cfg.Verbose {
						log.Info(ctx, "submitted",
							logger.String("entryCode", sub.EntryCode),
							logger.Float64("totalScore", score),
						)
					}
				default:
					rejected.Add(1)
					log.Warn(ctx, "submission rejected",
						logger.String("entryCode", sub.EntryCode),
						logger.Int("status", status),
					)
				}
			}
		}()
	}

	for _, sub := range submissions {
		select {
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return stats, ctx.Err()
		case jobs <- sub:
		}
	}
	close(jobs)
	wg.Wait()

	stats.Created = int(created.Load())
	stats.Rejected = int(rejected.Load())
	stats.Failed = int(failed.Load())
	stats.Submitted = stats.Created + stats.Rejected + stats.Failed
	stats.TotalScore = totalScore.load()
	stats.Duration = time.Since(stats.StartTime)

	avg := 0.0
	if stats.Created > 0 {
		avg = stats.TotalScore / float64(stats.Created)
	}
	log.Info(ctx, "seeding finished",
		logger.Int("created", stats.Created),
		logger.Int("rejected", stats.Rejected),
		logger.Int("failed", stats.Failed),
		logger.Float64("averageScore", avg),
		logger.String("duration", stats.Duration.String()),
	)
	return stats, nil
}

// post submits one contestant and returns the reported total score.
func post(ctx context.Context, client *http.Client, baseURL string, sub Submission) (float64, int, error) {
	body, err := json.Marshal(sub)
	if err != nil {
		return 0, 0, fmt.Errorf("marshal submission: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+"/contestants", bytes.NewReader(body))
	if err != nil {
		return 0, 0, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return 0, 0, fmt.Errorf("post submission: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		_, _ = io.Copy(io.Discard, resp.Body)
		return 0, resp.StatusCode, nil
	}

	var contestant struct {
		TotalScore float64 `json:"total_score"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&contestant); err != nil {
		return 0, resp.StatusCode, fmt.Errorf("decode response: %w", err)
	}
	return contestant.TotalScore, resp.StatusCode, nil
}

// atomicFloat accumulates float64 values under a mutex; contention here is
// negligible next to the HTTP round trips.
type atomicFloat struct {
	mu  sync.Mutex
	val float64
}

func (a *atomicFloat) add(v float64) {
	a.mu.Lock()
	a.val += v
	a.mu.Unlock()
}

func (a *atomicFloat) load() float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.val
}
