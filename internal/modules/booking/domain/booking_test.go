package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBooking(t *testing.T) {
	booker := uuid.New()
	postID := uuid.New()
	community := uuid.New()

	t.Run("asap drops any dates", func(t *testing.T) {
		need := time.Now()
		ret := need.Add(48 * time.Hour)

		b, err := NewBooking(booker, postID, community, TimeFrameASAP, &need, &ret)
		require.NoError(t, err)
		assert.Equal(t, StatusPending, b.Status)
		assert.Nil(t, b.DateNeed)
		assert.Nil(t, b.DateReturn)
	})

	t.Run("specific keeps a valid date range", func(t *testing.T) {
		need := time.Now()
		ret := need.Add(48 * time.Hour)

		b, err := NewBooking(booker, postID, community, TimeFrameSpecific, &need, &ret)
		require.NoError(t, err)
		require.NotNil(t, b.DateNeed)
		require.NotNil(t, b.DateReturn)
		assert.True(t, b.DateReturn.After(*b.DateNeed))
	})

	t.Run("specific without dates", func(t *testing.T) {
		_, err := NewBooking(booker, postID, community, TimeFrameSpecific, nil, nil)
		assert.ErrorIs(t, err, ErrMissingDates)
	})

	t.Run("return before need", func(t *testing.T) {
		need := time.Now()
		ret := need.Add(-time.Hour)
		_, err := NewBooking(booker, postID, community, TimeFrameSpecific, &need, &ret)
		assert.ErrorIs(t, err, ErrReturnBeforeNeed)
	})

	t.Run("unknown time frame", func(t *testing.T) {
		_, err := NewBooking(booker, postID, community, TimeFrame("whenever"), nil, nil)
		assert.ErrorIs(t, err, ErrInvalidTimeFrame)
	})
}

func TestBooking_CanTransitionTo(t *testing.T) {
	b, err := NewBooking(uuid.New(), uuid.New(), uuid.New(), TimeFrameRandom, nil, nil)
	require.NoError(t, err)

	assert.True(t, b.CanTransitionTo(StatusAccepted))
	assert.True(t, b.CanTransitionTo(StatusDeclined))
	assert.False(t, b.CanTransitionTo(StatusPending))

	// Accepted and declined are terminal.
	for _, terminal := range []Status{StatusAccepted, StatusDeclined} {
		b.Status = terminal
		assert.False(t, b.CanTransitionTo(StatusAccepted))
		assert.False(t, b.CanTransitionTo(StatusDeclined))
		assert.False(t, b.CanTransitionTo(StatusPending))
	}
}

func TestValidStatus(t *testing.T) {
	assert.True(t, ValidStatus(StatusPending))
	assert.True(t, ValidStatus(StatusAccepted))
	assert.True(t, ValidStatus(StatusDeclined))
	assert.False(t, ValidStatus(Status("cancelled")))
}
