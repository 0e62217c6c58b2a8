// Package ui provides the GTK4 front-end of lockbreak.
package ui

import (
	"context"
	"errors"

	"github.com/bnema/lockbreak/internal/bootstrap"
	"github.com/bnema/lockbreak/internal/infrastructure/config"
)

// Dependencies holds the injected dependencies of the GTK front-end.
type Dependencies struct {
	Ctx    context.Context
	Config *config.Config
	// ConfigManager is optional; when set, config file edits update the window.
	ConfigManager *config.Manager
	Stack         *bootstrap.Stack
	Overrides     bootstrap.Overrides
}

// Validate checks that the required dependencies are present.
func (d *Dependencies) Validate() error {
	if d == nil {
		return errors.New("dependencies are nil")
	}
	if d.Ctx == nil {
		return errors.New("context is required")
	}
	if d.Config == nil {
		return errors.New("config is required")
	}
	if d.Stack == nil {
		return errors.New("stack is required")
	}
	return nil
}
