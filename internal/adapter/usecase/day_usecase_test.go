package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"prism-ads/internal/core/domain"
)

func TestAdvanceDay(t *testing.T) {
	days := &mockDayStore{}
	svc := NewDayService(days, discardLogger())

	days.On("Current", mock.Anything).Return(3, nil)
	days.On("Set", mock.Anything, 7).Return(nil)

	day, err := svc.Advance(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 7, day)
	days.AssertExpectations(t)
}

func TestAdvanceDaySameDay(t *testing.T) {
	days := &mockDayStore{}
	svc := NewDayService(days, discardLogger())

	days.On("Current", mock.Anything).Return(3, nil)
	days.On("Set", mock.Anything, 3).Return(nil)

	day, err := svc.Advance(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, 3, day)
}

func TestAdvanceDayBackwards(t *testing.T) {
	days := &mockDayStore{}
	svc := NewDayService(days, discardLogger())

	days.On("Current", mock.Anything).Return(5, nil)

	_, err := svc.Advance(context.Background(), 4)
	assert.ErrorIs(t, err, domain.ErrDayInPast)
	days.AssertNotCalled(t, "Set", mock.Anything, mock.Anything)
}
