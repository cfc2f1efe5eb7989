package scoring_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/okian/loanscope/internal/domain/request"
	scoring "github.com/okian/loanscope/internal/domain/scoring"
	. "github.com/smartystreets/goconvey/convey"
)

func sampleRequest() request.ScoringRequest {
	return request.ScoringRequest{
		ClientID:                   100002,
		DaysBirth:                  -35 * 365,
		OrganizationType:           "School",
		ExtSource1:                 0.5,
		ExtSource2:                 0.5,
		ExtSource3:                 0.5,
		YearsBeginExpluatationMode: 0.4,
		CommonAreaMode:             0.4,
		FloorsMaxMode:              0.4,
		LivingApartmentsMode:       0.4,
		YearsBuildMedi:             0.4,
		CodeGender:                 "F",
		FlagOwnCar:                 "N",
	}
}

func TestInMemoryScorer_Score(t *testing.T) {
	Convey("Given an in-memory scorer without latency", t, func() {
		scorer := scoring.NewInMemoryScorer(scoring.WithLatencyRange(0, 0))

		Convey("When scoring a request", func() {
			p, err := scorer.Score(context.Background(), sampleRequest())

			Convey("Then it applies the weighted blend", func() {
				So(err, ShouldBeNil)
				// 0.6*0.5 + 0.25*0.4 + 0.15*0.5
				So(p, ShouldAlmostEqual, 0.475, 1e-9)
			})
		})

		Convey("When the inputs saturate", func() {
			req := sampleRequest()
			req.ExtSource1, req.ExtSource2, req.ExtSource3 = 1, 1, 1
			req.YearsBeginExpluatationMode, req.CommonAreaMode, req.FloorsMaxMode = 1, 1, 1
			req.LivingApartmentsMode, req.YearsBuildMedi = 1, 1
			req.DaysBirth = -90 * 365

			Convey("Then the probability is clamped to 1", func() {
				So(scoring.Probability(req), ShouldEqual, 1)
			})
		})

		Convey("When scoring concurrently", func() {
			var wg sync.WaitGroup
			results := make([]float64, 16)
			for i := range results {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					results[i], _ = scorer.Score(context.Background(), sampleRequest())
				}(i)
			}
			wg.Wait()

			Convey("Then every call is deterministic", func() {
				for _, p := range results {
					So(p, ShouldEqual, results[0])
				}
			})
		})
	})

	Convey("Given a scorer with a fixed probability", t, func() {
		scorer := scoring.NewInMemoryScorer(scoring.WithLatencyRange(0, 0), scoring.WithFixedProbability(0.427))

		Convey("Then every request echoes it", func() {
			p, err := scorer.Score(context.Background(), sampleRequest())
			So(err, ShouldBeNil)
			So(p, ShouldEqual, 0.427)
		})
	})

	Convey("Given a fixed probability outside [0,1]", t, func() {
		scorer := scoring.NewInMemoryScorer(scoring.WithLatencyRange(0, 0), scoring.WithFixedProbability(1.5))

		Convey("Then the option is ignored", func() {
			p, err := scorer.Score(context.Background(), sampleRequest())
			So(err, ShouldBeNil)
			So(p, ShouldBeLessThanOrEqualTo, 1)
		})
	})
}

func TestInMemoryScorer_Latency(t *testing.T) {
	Convey("Given a scorer with simulated latency", t, func() {
		scorer := scoring.NewInMemoryScorer(scoring.WithLatencyRange(200*time.Millisecond, 300*time.Millisecond))

		Convey("When the context is cancelled first", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
			defer cancel()
			_, err := scorer.Score(ctx, sampleRequest())

			Convey("Then the call is abandoned", func() {
				So(errors.Is(err, context.DeadlineExceeded), ShouldBeTrue)
			})
		})

		Convey("When the call completes", func() {
			start := time.Now()
			_, err := scorer.Score(context.Background(), sampleRequest())

			Convey("Then it waited at least the minimum latency", func() {
				So(err, ShouldBeNil)
				So(time.Since(start), ShouldBeGreaterThanOrEqualTo, 200*time.Millisecond)
			})
		})
	})
}
