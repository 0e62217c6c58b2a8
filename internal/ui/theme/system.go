package theme

import (
	"sync"

	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/bnema/lockbreak/internal/application/port"
	"github.com/bnema/lockbreak/internal/infrastructure/colorscheme"
)

const (
	preferDarkProperty = "gtk-application-prefer-dark-theme"
	priorityGTK        = 5
)

// gtkSettingsDetector reads gtk-application-prefer-dark-theme once. The
// manager overwrites that property, so later reads would echo our own choice.
type gtkSettingsDetector struct {
	once        sync.Once
	prefersDark bool
	ok          bool
}

func (*gtkSettingsDetector) Name() string    { return "gtk-settings" }
func (*gtkSettingsDetector) Priority() int   { return priorityGTK }
func (*gtkSettingsDetector) Available() bool { return true }

func (d *gtkSettingsDetector) Detect() (bool, bool) {
	d.once.Do(func() {
		settings := gtk.SettingsGetDefault()
		if settings == nil {
			return
		}
		d.prefersDark, d.ok = settings.ObjectProperty(preferDarkProperty).(bool)
	})
	return d.prefersDark, d.ok
}

// NewResolver returns the resolver used by the GTK front-end: GTK_THEME,
// then GNOME's color-scheme, then the GTK settings seen at startup.
func NewResolver(scheme string) *colorscheme.Resolver {
	return colorscheme.NewResolver(scheme,
		colorscheme.NewEnvDetector(),
		colorscheme.NewGsettingsDetector(),
		&gtkSettingsDetector{},
	)
}

var _ port.ColorSchemeDetector = (*gtkSettingsDetector)(nil)
