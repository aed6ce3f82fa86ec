package seed

import (
	"fmt"
	"math/rand"
)

var sampleNames = []string{
	"Nguyen Van An",
	"Tran Thi Binh",
	"Le Van Cuong",
	"Pham Thi Dao",
	"Hoang Van Em",
	"Vu Thi Giang",
	"Dang Van Hai",
	"Bui Thi Kim",
	"Do Van Long",
	"Ngo Thi Mai",
}

var categories = []string{"VIDEO", "ARTICLE", "SONG"}

// Generate produces n plausible submissions. Ratings stay on the 0.5 grid
// and within the canonical caps so the service accepts every one of them.
func Generate(n int, rng *rand.Rand) []Submission {
	out := make([]Submission, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, Submission{
			Name:      sampleNames[rng.Intn(len(sampleNames))],
			EntryCode: fmt.Sprintf("LG-2024-%03d", i+1),
			Category:  categories[i%len(categories)],
			General: GeneralScores{
				Topic:      halfStep(rng, 10),
				Mention:    halfStep(rng, 10),
				Emotion:    halfStep(rng, 15),
				Message:    halfStep(rng, 15),
				Compliance: halfStep(rng, 10),
			},
			Specific: SpecificScores{
				Criteria1: halfStep(rng, 8),
				Criteria2: halfStep(rng, 6),
				Criteria3: halfStep(rng, 6),
			},
			Social: SocialCounts{
				LikeCount:    rng.Intn(500),
				ShareCount:   rng.Intn(200),
				CommentCount: rng.Intn(120),
			},
		})
	}
	return out
}

// halfStep returns a random rating in [0, cap] at 0.5 granularity.
func halfStep(rng *rand.Rand, cap float64) float64 {
	steps := int(cap * 2)
	return float64(rng.Intn(steps+1)) / 2
}
