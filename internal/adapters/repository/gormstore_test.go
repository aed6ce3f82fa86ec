package repository_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	glogger "gorm.io/gorm/logger"

	"github.com/lagiland/scoreboard/internal/adapters/repository"
	"github.com/lagiland/scoreboard/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func openTestStore(t *testing.T) *repository.GormStore {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: glogger.Default.LogMode(glogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	store, err := repository.NewGormStore(db)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return store
}

func sampleContestant(entryCode string) model.Contestant {
	return model.Contestant{
		Name:      "Nguyen Van A",
		EntryCode: entryCode,
		Category:  model.CategoryVideo,
		General:   model.GeneralScores{Topic: 9, Mention: 8.5, Emotion: 14, Message: 13, Compliance: 10},
		Specific:  model.SpecificScores{Criteria1: 7, Criteria2: 5.5, Criteria3: 6},
		Social: model.SocialScores{
			LikeCount: 120, ShareCount: 40, CommentCount: 33,
			LikePoints: 4.8, SharePoints: 1.6, CommentPoints: 3.3,
		},
		TotalScore: 82.7,
		AIFeedback: "A heartfelt entry with strong engagement.",
	}
}

func TestGormStore(t *testing.T) {
	Convey("Given an empty store", t, func() {
		store := openTestStore(t)
		ctx := context.Background()

		Convey("When a contestant is created", func() {
			id, err := store.Create(ctx, sampleContestant("LG-2024-001"))

			Convey("Then it returns a store-assigned id", func() {
				So(err, ShouldBeNil)
				So(id, ShouldNotBeEmpty)
			})

			Convey("And listing reconstructs the nested payloads", func() {
				list, err := store.List(ctx)
				So(err, ShouldBeNil)
				So(list, ShouldHaveLength, 1)

				got := list[0]
				So(got.ID, ShouldEqual, id)
				So(got.Category, ShouldEqual, model.CategoryVideo)
				So(got.General.Emotion, ShouldEqual, 14)
				So(got.Specific.Criteria2, ShouldEqual, 5.5)
				So(got.Social.LikeCount, ShouldEqual, 120)
				So(got.Social.CommentPoints, ShouldEqual, 3.3)
				So(got.TotalScore, ShouldEqual, 82.7)
				So(got.AIFeedback, ShouldNotBeEmpty)
				So(got.Timestamp, ShouldBeGreaterThan, 0)
			})
		})

		Convey("When several contestants are created over time", func() {
			var ids []string
			for i := 0; i < 3; i++ {
				id, err := store.Create(ctx, sampleContestant(fmt.Sprintf("LG-2024-%03d", i+1)))
				So(err, ShouldBeNil)
				ids = append(ids, id)
				time.Sleep(5 * time.Millisecond)
			}

			Convey("Then listing orders them most recent first", func() {
				list, err := store.List(ctx)
				So(err, ShouldBeNil)
				So(list, ShouldHaveLength, 3)
				So(list[0].ID, ShouldEqual, ids[2])
				So(list[1].ID, ShouldEqual, ids[1])
				So(list[2].ID, ShouldEqual, ids[0])
			})

			Convey("And count matches", func() {
				n, err := store.Count(ctx)
				So(err, ShouldBeNil)
				So(n, ShouldEqual, 3)
			})

			Convey("And deleting one removes exactly that row", func() {
				So(store.Delete(ctx, ids[1]), ShouldBeNil)

				list, err := store.List(ctx)
				So(err, ShouldBeNil)
				So(list, ShouldHaveLength, 2)
				for _, c := range list {
					So(c.ID, ShouldNotEqual, ids[1])
				}
			})
		})

		Convey("When deleting an unknown id", func() {
			err := store.Delete(ctx, "nope")

			Convey("Then it reports not found", func() {
				So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
			})
		})

		Convey("When a contestant has no feedback", func() {
			c := sampleContestant("LG-2024-009")
			c.AIFeedback = ""
			_, err := store.Create(ctx, c)
			So(err, ShouldBeNil)

			Convey("Then the field round-trips as empty", func() {
				list, err := store.List(ctx)
				So(err, ShouldBeNil)
				So(list[0].AIFeedback, ShouldBeEmpty)
			})
		})
	})
}

func TestMemoryStore(t *testing.T) {
	Convey("Given an in-memory store with a fake clock", t, func() {
		now := time.Unix(1700000000, 0)
		store := repository.NewMemoryStore(repository.WithClock(func() time.Time {
			now = now.Add(time.Second)
			return now
		}))
		ctx := context.Background()

		Convey("When contestants are created", func() {
			first, err := store.Create(ctx, sampleContestant("LG-2024-001"))
			So(err, ShouldBeNil)
			second, err := store.Create(ctx, sampleContestant("LG-2024-002"))
			So(err, ShouldBeNil)

			Convey("Then listing orders most recent first with ms timestamps", func() {
				list, err := store.List(ctx)
				So(err, ShouldBeNil)
				So(list, ShouldHaveLength, 2)
				So(list[0].ID, ShouldEqual, second)
				So(list[1].ID, ShouldEqual, first)
				So(list[0].Timestamp, ShouldBeGreaterThan, list[1].Timestamp)
			})

			Convey("And deleting an unknown id reports not found", func() {
				So(errors.Is(store.Delete(ctx, "missing"), repository.ErrNotFound), ShouldBeTrue)

				n, err := store.Count(ctx)
				So(err, ShouldBeNil)
				So(n, ShouldEqual, 2)
			})
		})
	})
}
