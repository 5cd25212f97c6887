package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBookingStatus(t *testing.T) {
	tests := []struct {
		input    string
		expected BookingStatus
		wantErr  bool
	}{
		{"pending", StatusPending, false},
		{"confirmed", StatusConfirmed, false},
		{"completed", StatusCompleted, false},
		{"cancelled", StatusCancelled, false},
		{"unknown", "", true},
		{"", "", true},
		{"PENDING", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			status, err := ParseBookingStatus(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownStatus)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, status)
		})
	}
}

func TestValidateTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    BookingStatus
		to      BookingStatus
		wantErr error
	}{
		{"pending to confirmed", StatusPending, StatusConfirmed, nil},
		{"pending to cancelled", StatusPending, StatusCancelled, nil},
		{"confirmed to completed", StatusConfirmed, StatusCompleted, nil},
		{"confirmed to cancelled", StatusConfirmed, StatusCancelled, nil},
		{"pending to completed skips confirmation", StatusPending, StatusCompleted, ErrInvalidTransition},
		{"confirmed back to pending", StatusConfirmed, StatusPending, ErrInvalidTransition},
		{"completed is terminal", StatusCompleted, StatusCancelled, ErrTerminalState},
		{"cancelled is terminal", StatusCancelled, StatusConfirmed, ErrTerminalState},
		{"cancelled cannot be restored", StatusCancelled, StatusPending, ErrTerminalState},
		{"unknown source status", BookingStatus("bogus"), StatusConfirmed, ErrUnknownStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTransition(tt.from, tt.to)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidateTransition_SelfTransition(t *testing.T) {
	// Повторный перевод в тот же статус не разрешен ни для одного состояния
	for _, status := range []BookingStatus{StatusPending, StatusConfirmed} {
		assert.Error(t, ValidateTransition(status, status))
	}
}
