package controller

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bnema/lockbreak/internal/domain/entity"
)

func TestInfoText(t *testing.T) {
	assert.Equal(t,
		`Locks with a full-screen overlay for 5 minutes. Press "Unlock now" to end a break early.`,
		InfoText(entity.LockModeOverlay, 5*time.Minute))
	assert.Contains(t, InfoText(entity.LockModeOverlay, 90*time.Second), "1.5 minutes")
	assert.Contains(t, InfoText(entity.LockModeSystem, time.Minute), "system lock")
}

func TestFormatDefaultMinutes(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{30, "30"},
		{0.5, "0.5"},
		{0, ""},
		{-1, ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatDefaultMinutes(tt.in))
	}
}
