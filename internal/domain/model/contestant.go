// Package model contains the contestant entity and its category enumeration.
package model

// Category identifies the kind of entry a contestant submitted.
type Category string

// Supported entry categories. The set is closed and fixed at creation time.
const (
	CategoryVideo   Category = "VIDEO"
	CategoryArticle Category = "ARTICLE"
	CategorySong    Category = "SONG"
)

// Categories lists every valid category in display order.
func Categories() []Category {
	return []Category{CategoryVideo, CategoryArticle, CategorySong}
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryVideo, CategoryArticle, CategorySong:
		return true
	}
	return false
}

// Label returns the human-readable name used in exports and prompts.
func (c Category) Label() string {
	switch c {
	case CategoryVideo:
		return "Video"
	case CategoryArticle:
		return "Article"
	case CategorySong:
		return "Song"
	}
	return string(c)
}

// SpecificLabels returns the per-category names of the three specific
// criteria. The labels are cosmetic; caps are category-independent.
func (c Category) SpecificLabels() [3]string {
	switch c {
	case CategoryVideo:
		return [3]string{"Script & narrative", "Visuals & editing", "Sound & backing track"}
	case CategoryArticle:
		return [3]string{"Structure", "Language & style", "Illustrations"}
	case CategorySong:
		return [3]string{"Lyrics", "Melody & arrangement", "Performance"}
	}
	return [3]string{"Criteria 1", "Criteria 2", "Criteria 3"}
}

// GeneralScores holds the five contest-wide rating dimensions.
type GeneralScores struct {
	Topic      float64 `json:"topic"`
	Mention    float64 `json:"mention"`
	Emotion    float64 `json:"emotion"`
	Message    float64 `json:"message"`
	Compliance float64 `json:"compliance"`
}

// Sum returns the general subtotal.
func (g GeneralScores) Sum() float64 {
	return g.Topic + g.Mention + g.Emotion + g.Message + g.Compliance
}

// SpecificScores holds the three category-specific rating dimensions.
type SpecificScores struct {
	Criteria1 float64 `json:"criteria1"`
	Criteria2 float64 `json:"criteria2"`
	Criteria3 float64 `json:"criteria3"`
}

// Sum returns the specific subtotal.
func (s SpecificScores) Sum() float64 {
	return s.Criteria1 + s.Criteria2 + s.Criteria3
}

// SocialScores holds raw interaction counts alongside the point values they
// were converted to at submission time.
type SocialScores struct {
	LikeCount     int     `json:"like_count"`
	ShareCount    int     `json:"share_count"`
	CommentCount  int     `json:"comment_count"`
	LikePoints    float64 `json:"like_points"`
	SharePoints   float64 `json:"share_points"`
	CommentPoints float64 `json:"comment_points"`
}

// Points returns the social subtotal.
func (s SocialScores) Points() float64 {
	return s.LikePoints + s.SharePoints + s.CommentPoints
}

// Interactions returns the combined raw interaction count.
func (s SocialScores) Interactions() int {
	return s.LikeCount + s.ShareCount + s.CommentCount
}

// Contestant is the sole persisted entity. A contestant is created once at
// submission, never updated in place, and deleted wholesale by id.
type Contestant struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	EntryCode  string         `json:"entry_code"`
	Category   Category       `json:"category"`
	General    GeneralScores  `json:"general"`
	Specific   SpecificScores `json:"specific"`
	Social     SocialScores   `json:"social"`
	TotalScore float64        `json:"total_score"`
	// Timestamp is the creation instant in milliseconds since the epoch.
	Timestamp  int64  `json:"timestamp"`
	AIFeedback string `json:"ai_feedback,omitempty"`
}
