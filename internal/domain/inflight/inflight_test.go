package inflight_test

import (
	"context"
	"sync"
	"testing"

	"github.com/lagiland/scoreboard/internal/domain/inflight"
	. "github.com/smartystreets/goconvey/convey"
)

func TestInMemoryGuard(t *testing.T) {
	Convey("Given an empty guard", t, func() {
		guard := inflight.NewInMemoryGuard()
		ctx := context.Background()

		Convey("When a key begins", func() {
			ok := guard.Begin(ctx, "LG-2024-001")

			Convey("Then it is acquired and counted", func() {
				So(ok, ShouldBeTrue)
				So(guard.Size(), ShouldEqual, 1)
			})

			Convey("And a second begin for the same key fails", func() {
				So(guard.Begin(ctx, "LG-2024-001"), ShouldBeFalse)
			})

			Convey("And a different key is unaffected", func() {
				So(guard.Begin(ctx, "LG-2024-002"), ShouldBeTrue)
			})

			Convey("And after End the key can begin again", func() {
				guard.End(ctx, "LG-2024-001")
				So(guard.Size(), ShouldEqual, 0)
				So(guard.Begin(ctx, "LG-2024-001"), ShouldBeTrue)
			})
		})

		Convey("When End is called for a key never begun", func() {
			guard.End(ctx, "unknown")

			Convey("Then the size stays at zero", func() {
				So(guard.Size(), ShouldEqual, 0)
			})
		})

		Convey("When many goroutines race on the same key", func() {
			const attempts = 64
			var wg sync.WaitGroup
			wins := make(chan struct{}, attempts)
			for i := 0; i < attempts; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					if guard.Begin(ctx, "contested") {
						wins <- struct{}{}
					}
				}()
			}
			wg.Wait()
			close(wins)

			Convey("Then exactly one acquisition wins", func() {
				count := 0
				for range wins {
					count++
				}
				So(count, ShouldEqual, 1)
			})
		})
	})
}
