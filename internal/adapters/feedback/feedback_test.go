package feedback_test

import (
	"context"
	"errors"
	"testing"

	"github.com/lagiland/scoreboard/internal/adapters/feedback"
	"github.com/lagiland/scoreboard/internal/domain/model"
	"github.com/lagiland/scoreboard/internal/domain/scoring"
	. "github.com/smartystreets/goconvey/convey"
)

type stubGenerator struct {
	text string
	err  error
	got  *feedback.Request
}

func (s *stubGenerator) Generate(_ context.Context, req feedback.Request) (string, error) {
	s.got = &req
	return s.text, s.err
}

func sampleRequest() feedback.Request {
	return feedback.Request{
		Name:      "Tran Thi B",
		EntryCode: "LG-2024-042",
		Category:  model.CategorySong,
		Breakdown: scoring.Breakdown{
			GeneralSubtotal:  52,
			SpecificSubtotal: 17.5,
			SocialSubtotal:   12.3,
			Total:            81.8,
		},
		Rubric:   scoring.DefaultRubric(),
		Likes:    150,
		Shares:   20,
		Comments: 33,
	}
}

func TestRequester(t *testing.T) {
	Convey("Given a requester with a working generator", t, func() {
		gen := &stubGenerator{text: "Great work, keep it up!"}
		req := feedback.NewRequester(gen, feedback.WithFallback("fallback"))

		Convey("When requesting feedback", func() {
			text := req.Request(context.Background(), sampleRequest())

			Convey("Then it returns the generated text", func() {
				So(text, ShouldEqual, "Great work, keep it up!")
			})

			Convey("And the generator received the submission details", func() {
				So(gen.got, ShouldNotBeNil)
				So(gen.got.EntryCode, ShouldEqual, "LG-2024-042")
			})
		})
	})

	Convey("Given a requester whose generator fails", t, func() {
		gen := &stubGenerator{err: errors.New("quota exceeded")}
		req := feedback.NewRequester(gen, feedback.WithFallback("Thanks for taking part!"))

		Convey("When requesting feedback", func() {
			text := req.Request(context.Background(), sampleRequest())

			Convey("Then it degrades to the fallback instead of failing", func() {
				So(text, ShouldEqual, "Thanks for taking part!")
			})
		})
	})

	Convey("Given a requester with no generator", t, func() {
		req := feedback.NewRequester(nil)

		Convey("When requesting feedback", func() {
			text := req.Request(context.Background(), sampleRequest())

			Convey("Then it returns the empty fallback", func() {
				So(text, ShouldBeEmpty)
			})
		})
	})

	Convey("Given a generator that returns empty text without error", t, func() {
		gen := &stubGenerator{text: ""}
		req := feedback.NewRequester(gen, feedback.WithFallback("fallback"))

		Convey("When requesting feedback", func() {
			text := req.Request(context.Background(), sampleRequest())

			Convey("Then the empty result is passed through as-is", func() {
				So(text, ShouldBeEmpty)
			})
		})
	})
}

func TestRequest_Prompt(t *testing.T) {
	Convey("Given a scored submission", t, func() {
		prompt := sampleRequest().Prompt()

		Convey("Then the prompt names the contestant, entry and category", func() {
			So(prompt, ShouldContainSubstring, "Tran Thi B")
			So(prompt, ShouldContainSubstring, "LG-2024-042")
			So(prompt, ShouldContainSubstring, "Song")
		})

		Convey("And it includes the score against the rubric maximum", func() {
			So(prompt, ShouldContainSubstring, "81.80/100")
		})

		Convey("And it includes the raw interaction counts", func() {
			So(prompt, ShouldContainSubstring, "likes 150")
			So(prompt, ShouldContainSubstring, "shares 20")
			So(prompt, ShouldContainSubstring, "comments 33")
		})
	})
}
