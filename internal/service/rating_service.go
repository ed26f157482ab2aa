package service

import (
	"context"
	"math"

	"github.com/rs/zerolog"

	"github.com/collegecoursera/api/internal/observability"
	"github.com/collegecoursera/api/internal/repository"
)

// RatingAggregator recomputes a course's derived rating columns from its
// current review set. Callers trigger it after every review mutation; a
// failed recompute is logged and swallowed so the review write itself
// still succeeds, leaving the derived columns eventually consistent.
type RatingAggregator interface {
	Recompute(ctx context.Context, courseID uint) error
}

type ratingAggregator struct {
	reviews repository.ReviewRepository
	courses repository.CourseRepository
	logger  zerolog.Logger
}

// NewRatingAggregator constructs a RatingAggregator instance.
func NewRatingAggregator(reviews repository.ReviewRepository, courses repository.CourseRepository, logger zerolog.Logger) RatingAggregator {
	return &ratingAggregator{
		reviews: reviews,
		courses: courses,
		logger:  logger.With().Str("component", "rating_aggregator").Logger(),
	}
}

func (a *ratingAggregator) Recompute(ctx context.Context, courseID uint) error {
	ratings, err := a.reviews.RatingsByCourse(ctx, courseID)
	if err != nil {
		return err
	}

	average := 0.0
	if len(ratings) > 0 {
		sum := 0
		for _, rating := range ratings {
			sum += rating
		}
		average = math.Round(float64(sum)/float64(len(ratings))*100) / 100
	}

	if err := a.courses.UpdateRating(ctx, courseID, average, len(ratings)); err != nil {
		return err
	}

	observability.RatingsRecomputed().Inc()

	a.logger.Debug().
		Uint("course_id", courseID).
		Float64("average_rating", average).
		Int("total_ratings", len(ratings)).
		Msg("course rating recomputed")

	return nil
}

// recomputeRating runs the aggregator and downgrades failures to a log line.
func recomputeRating(ctx context.Context, aggregator RatingAggregator, courseID uint, logger zerolog.Logger) {
	if err := aggregator.Recompute(ctx, courseID); err != nil {
		logger.Error().Err(err).Uint("course_id", courseID).Msg("rating recompute failed")
	}
}
