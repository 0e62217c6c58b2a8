package ui

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bnema/lockbreak/internal/bootstrap"
	"github.com/bnema/lockbreak/internal/infrastructure/config"
)

func TestDependencies_Validate(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.History.Enabled = false
	stack := bootstrap.NewStack(context.Background(), func() *config.Config { return cfg })
	t.Cleanup(func() { _ = stack.Close() })

	tests := []struct {
		name    string
		deps    *Dependencies
		wantErr string
	}{
		{"nil", nil, "dependencies are nil"},
		{"no context", &Dependencies{Config: cfg, Stack: stack}, "context is required"},
		{"no config", &Dependencies{Ctx: context.Background(), Stack: stack}, "config is required"},
		{"no stack", &Dependencies{Ctx: context.Background(), Config: cfg}, "stack is required"},
		{"complete", &Dependencies{Ctx: context.Background(), Config: cfg, Stack: stack}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.deps.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}

func TestNew_AppliesOverrides(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.History.Enabled = false
	stack := bootstrap.NewStack(context.Background(), func() *config.Config { return cfg })
	t.Cleanup(func() { _ = stack.Close() })

	app, err := New(&Dependencies{
		Ctx:       context.Background(),
		Config:    cfg,
		Stack:     stack,
		Overrides: bootstrap.Overrides{Minutes: 12},
	})
	assert.NoError(t, err)
	assert.InDelta(t, 12.0, app.cfg.Timer.DefaultMinutes, 0)
	assert.Contains(t, infoFor(app.cfg), "5 minutes")
}
