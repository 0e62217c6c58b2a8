// Package colorscheme resolves the light or dark preference used by the GTK palette.
package colorscheme

import (
	"sort"
	"strings"
	"sync"

	"github.com/bnema/lockbreak/internal/application/port"
)

const (
	// sourceFallback indicates no detector provided the preference.
	sourceFallback = "fallback"
	// sourceConfig indicates the preference came from ui.color_scheme.
	sourceConfig = "config"
)

// Resolver honors an explicit ui.color_scheme and otherwise asks its
// detectors, highest priority first.
type Resolver struct {
	mu        sync.RWMutex
	scheme    string
	detectors []port.ColorSchemeDetector
}

// NewResolver creates a resolver for the configured scheme.
func NewResolver(scheme string, detectors ...port.ColorSchemeDetector) *Resolver {
	r := &Resolver{scheme: scheme}
	for _, d := range detectors {
		r.RegisterDetector(d)
	}
	return r
}

// Scheme returns the configured scheme.
func (r *Resolver) Scheme() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.scheme
}

// SetScheme replaces the configured scheme and reports whether it changed.
func (r *Resolver) SetScheme(scheme string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.scheme == scheme {
		return false
	}
	r.scheme = scheme
	return true
}

// RegisterDetector adds a detector. Safe to call at any time.
func (r *Resolver) RegisterDetector(detector port.ColorSchemeDetector) {
	if detector == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.detectors = append(r.detectors, detector)
	sort.SliceStable(r.detectors, func(i, j int) bool {
		return r.detectors[i].Priority() > r.detectors[j].Priority()
	})
}

// Resolve returns the effective preference. Dark wins when nothing answers.
func (r *Resolver) Resolve() port.ColorSchemePreference {
	r.mu.RLock()
	defer r.mu.RUnlock()

	switch strings.ToLower(strings.TrimSpace(r.scheme)) {
	case "prefer-dark", "dark":
		return port.ColorSchemePreference{PrefersDark: true, Source: sourceConfig}
	case "prefer-light", "light":
		return port.ColorSchemePreference{PrefersDark: false, Source: sourceConfig}
	}

	for _, detector := range r.detectors {
		if !detector.Available() {
			continue
		}
		if prefersDark, ok := detector.Detect(); ok {
			return port.ColorSchemePreference{PrefersDark: prefersDark, Source: detector.Name()}
		}
	}

	return port.ColorSchemePreference{PrefersDark: true, Source: sourceFallback}
}
