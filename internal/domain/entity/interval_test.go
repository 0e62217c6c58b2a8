package entity_test

import (
	"testing"
	"time"

	"github.com/bnema/lockbreak/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIntervalMinutes_Valid(t *testing.T) {
	tests := []struct {
		input string
		want  time.Duration
	}{
		{input: "30", want: 30 * time.Minute},
		{input: "1", want: time.Minute},
		{input: " 2 ", want: 2 * time.Minute},
		{input: "0.5", want: 30 * time.Second},
		{input: "1.25", want: 75 * time.Second},
		{input: "0.02", want: time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := entity.ParseIntervalMinutes(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseIntervalMinutes_Invalid(t *testing.T) {
	inputs := []string{"", "   ", "abc", "0", "-5", "-0.1", "NaN", "Inf", "+Inf", "0.001", "1e-9", "30 minutes"}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			_, err := entity.ParseIntervalMinutes(input)
			require.Error(t, err)
			assert.ErrorIs(t, err, entity.ErrInvalidInterval)
		})
	}
}

func TestFormatCountdown(t *testing.T) {
	tests := []struct {
		remaining time.Duration
		want      string
	}{
		{remaining: 5 * time.Minute, want: "05:00"},
		{remaining: 3*time.Minute + 12*time.Second, want: "03:12"},
		{remaining: 59 * time.Second, want: "00:59"},
		{remaining: 0, want: "00:00"},
		{remaining: -time.Second, want: "00:00"},
		{remaining: 1500 * time.Millisecond, want: "00:01"},
		{remaining: 90 * time.Minute, want: "90:00"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, entity.FormatCountdown(tt.remaining))
		})
	}
}

func TestFormatMinutes(t *testing.T) {
	assert.Equal(t, "30", entity.FormatMinutes(30*time.Minute))
	assert.Equal(t, "0.5", entity.FormatMinutes(30*time.Second))
}
