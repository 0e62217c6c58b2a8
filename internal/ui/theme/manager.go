package theme

import (
	"context"

	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/bnema/lockbreak/internal/infrastructure/colorscheme"
	"github.com/bnema/lockbreak/internal/infrastructure/config"
	"github.com/bnema/lockbreak/internal/logging"
)

// Manager handles theme state and CSS application.
type Manager struct {
	resolver    *colorscheme.Resolver
	prefersDark bool
	light       Palette
	dark        Palette
	cssProvider *gtk.CSSProvider
}

// NewManager creates a theme manager from configuration.
func NewManager(ctx context.Context, cfg *config.Config) *Manager {
	scheme := "default"
	if cfg != nil && cfg.UI.ColorScheme != "" {
		scheme = cfg.UI.ColorScheme
	}

	resolver := NewResolver(scheme)
	pref := resolver.Resolve()
	m := &Manager{
		resolver:    resolver,
		prefersDark: pref.PrefersDark,
		light:       DefaultLightPalette(),
		dark:        DefaultDarkPalette(),
	}

	logging.FromContext(ctx).Debug().
		Str("scheme", scheme).
		Str("source", pref.Source).
		Bool("prefers_dark", m.prefersDark).
		Msg("theme manager initialized")
	return m
}

// PrefersDark returns true if dark mode is active.
func (m *Manager) PrefersDark() bool {
	return m.prefersDark
}

// CurrentPalette returns the active palette.
func (m *Manager) CurrentPalette() Palette {
	if m.prefersDark {
		return m.dark
	}
	return m.light
}

// ApplyToDisplay loads the theme CSS into the display. Must run on the GTK thread.
func (m *Manager) ApplyToDisplay(ctx context.Context, display *gdk.Display) {
	log := logging.FromContext(ctx)

	if display == nil {
		log.Warn().Msg("cannot apply theme: display is nil")
		return
	}

	if settings := gtk.SettingsGetDefault(); settings != nil {
		settings.SetObjectProperty(preferDarkProperty, m.prefersDark)
	}

	if m.cssProvider == nil {
		m.cssProvider = gtk.NewCSSProvider()
		gtk.StyleContextAddProviderForDisplay(
			display,
			m.cssProvider,
			gtk.STYLE_PROVIDER_PRIORITY_APPLICATION,
		)
	}
	m.cssProvider.LoadFromString(GenerateCSS(m.CurrentPalette()))

	log.Debug().Bool("dark_mode", m.prefersDark).Msg("theme CSS applied to display")
}

// UpdateFromConfig re-resolves the color scheme and re-applies the CSS when display is set.
func (m *Manager) UpdateFromConfig(ctx context.Context, cfg *config.Config, display *gdk.Display) {
	if cfg == nil || !m.resolver.SetScheme(cfg.UI.ColorScheme) {
		return
	}
	pref := m.resolver.Resolve()
	m.prefersDark = pref.PrefersDark

	logging.FromContext(ctx).Info().
		Str("scheme", cfg.UI.ColorScheme).
		Str("source", pref.Source).
		Bool("prefers_dark", m.prefersDark).
		Msg("color scheme changed")

	if display != nil {
		m.ApplyToDisplay(ctx, display)
	}
}
