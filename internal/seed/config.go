// Package seed posts generated sample submissions against a running
// scoring service, for demos and manual testing.
package seed

import "time"

// Config holds configuration for a seeding run.
type Config struct {
	BaseURL string        // Base URL of the service
	Count   int           // Number of submissions to generate
	Workers int           // Number of concurrent workers
	Timeout time.Duration // HTTP request timeout
	Verbose bool          // Log every submission
}

// Submission mirrors the POST /contestants request body.
type Submission struct {
	Name      string         `json:"name"`
	EntryCode string         `json:"entry_code"`
	Category  string         `json:"category"`
	General   GeneralScores  `json:"general"`
	Specific  SpecificScores `json:"specific"`
	Social    SocialCounts   `json:"social"`
}

// GeneralScores carries the shared judging criteria.
type GeneralScores struct {
	Topic      float64 `json:"topic"`
	Mention    float64 `json:"mention"`
	Emotion    float64 `json:"emotion"`
	Message    float64 `json:"message"`
	Compliance float64 `json:"compliance"`
}

// SpecificScores carries the per-category criteria.
type SpecificScores struct {
	Criteria1 float64 `json:"criteria1"`
	Criteria2 float64 `json:"criteria2"`
	Criteria3 float64 `json:"criteria3"`
}

// SocialCounts carries raw interaction counts.
type SocialCounts struct {
	LikeCount    int `json:"like_count"`
	ShareCount   int `json:"share_count"`
	CommentCount int `json:"comment_count"`
}

// Stats summarizes a seeding run.
type Stats struct {
	Generated  int
	Submitted  int
	Created    int
	Rejected   int
	Failed     int
	StartTime  time.Time
	Duration   time.Duration
	TotalScore float64 // sum of returned totals, for a quick average
}
