package service

import (
	"context"
	"testing"
	"time"

	"eventwave/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateReview_FutureEventIsValidationFailure(t *testing.T) {
	f := newFixture(t)
	ev := f.event(t, 5, time.Now().Add(24*time.Hour))
	u := f.attendees(t, 1)[0]
	ctx := context.Background()

	// Without registration
	_, err := f.reviews.Create(ctx, u.ID, ev.ID, "looking forward")
	assert.ErrorIs(t, err, domain.ErrValidation)

	// And with one
	_, err = f.regs.Register(ctx, u.ID, ev.ID)
	require.NoError(t, err)
	_, err = f.reviews.Create(ctx, u.ID, ev.ID, "looking forward")
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Contains(t, err.Error(), "not started")
}

func TestCreateReview_Gating(t *testing.T) {
	f := newFixture(t)
	start := time.Now().Add(time.Hour)
	ev := f.event(t, 5, start)
	users := f.attendees(t, 2)
	attended, stranger := users[0], users[1]
	ctx := context.Background()

	_, err := f.regs.Register(ctx, attended.ID, ev.ID)
	require.NoError(t, err)

	// Move the clock past the start
	reviews := f.reviews.WithClock(func() time.Time { return start.Add(2 * time.Hour) })

	_, err = reviews.Create(ctx, stranger.ID, ev.ID, "nice")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = reviews.Create(ctx, attended.ID, ev.ID, "   ")
	assert.ErrorIs(t, err, domain.ErrValidation)

	review, err := reviews.Create(ctx, attended.ID, ev.ID, "Great talks")
	require.NoError(t, err)
	assert.NotZero(t, review.ID)

	_, err = reviews.Create(ctx, attended.ID, ev.ID, "again")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = reviews.Create(ctx, attended.ID, 999, "nope")
	assert.ErrorIs(t, err, domain.ErrEventNotFound)
}

func TestListReviews_FeedbackVisibilityAndSummary(t *testing.T) {
	f := newFixture(t)
	start := time.Now().Add(-time.Hour)
	ev := f.event(t, 5, start)
	u := f.attendees(t, 1)[0]
	ctx := context.Background()

	_, err := f.regs.Register(ctx, u.ID, ev.ID)
	require.NoError(t, err)
	_, err = f.reviews.Create(ctx, u.ID, ev.ID, "Loved it")
	require.NoError(t, err)

	public, err := f.reviews.ListForEvent(ctx, ev.ID, false)
	require.NoError(t, err)
	require.Len(t, public, 1)
	assert.Empty(t, public[0].Feedback)
	assert.Equal(t, u.Username, public[0].Username)

	owned, err := f.reviews.ListForOrganizer(ctx, f.organizer.ID, ev.ID)
	require.NoError(t, err)
	assert.Equal(t, "Loved it", owned[0].Feedback)

	other := f.user(t, "otto", domain.RoleOrganizer)
	_, err = f.reviews.ListForOrganizer(ctx, other.ID, ev.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	summary, err := f.reviews.Summary(ctx, ev.ID)
	require.NoError(t, err)
	assert.Equal(t, &domain.ReviewSummary{EventID: ev.ID, AverageRating: 0, TotalReviews: 1}, summary)
}
