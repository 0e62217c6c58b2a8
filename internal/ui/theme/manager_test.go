package theme

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/lockbreak/internal/domain/entity"
	"github.com/bnema/lockbreak/internal/infrastructure/config"
)

func configWithScheme(scheme string) *config.Config {
	cfg := config.DefaultConfig()
	cfg.UI.ColorScheme = scheme
	return cfg
}

func TestNewManager_ExplicitSchemes(t *testing.T) {
	ctx := context.Background()

	dark := NewManager(ctx, configWithScheme("prefer-dark"))
	assert.True(t, dark.PrefersDark())
	assert.Equal(t, DefaultDarkPalette(), dark.CurrentPalette())

	light := NewManager(ctx, configWithScheme("prefer-light"))
	assert.False(t, light.PrefersDark())
	assert.Equal(t, DefaultLightPalette(), light.CurrentPalette())
}

func TestNewManager_DefaultFollowsGTKTheme(t *testing.T) {
	ctx := context.Background()

	t.Setenv("GTK_THEME", "Adwaita:dark")
	assert.True(t, NewManager(ctx, configWithScheme("default")).PrefersDark())

	t.Setenv("GTK_THEME", "Adwaita")
	assert.False(t, NewManager(ctx, nil).PrefersDark())
}

func TestManager_UpdateFromConfig(t *testing.T) {
	ctx := context.Background()
	m := NewManager(ctx, configWithScheme("prefer-dark"))
	require.True(t, m.PrefersDark())

	m.UpdateFromConfig(ctx, nil, nil)
	assert.True(t, m.PrefersDark())

	m.UpdateFromConfig(ctx, configWithScheme("prefer-light"), nil)
	assert.False(t, m.PrefersDark())
	assert.Equal(t, DefaultLightPalette(), m.CurrentPalette())
}

func TestDefaultPalettesAreValid(t *testing.T) {
	require.NoError(t, DefaultDarkPalette().Validate())
	require.NoError(t, DefaultLightPalette().Validate())

	p := DefaultDarkPalette()
	p.Locking = "orange"
	assert.ErrorContains(t, p.Validate(), "status-locking")
}

func TestGenerateCSS_StatusColors(t *testing.T) {
	p := DefaultDarkPalette()
	css := GenerateCSS(p)

	assert.Contains(t, css, "@define-color status_idle "+p.Idle+";")
	assert.Contains(t, css, "@define-color status_locking "+p.Locking+";")

	for _, class := range StatusClasses {
		assert.Contains(t, css, ".lockbreak-status."+class+" {", "missing rule for %s", class)
	}
	assert.Contains(t, css, "."+ClassOverlay+" {")
	assert.Contains(t, css, "."+ClassCountdown+" {")

	// Every named color used by a rule is defined.
	for _, line := range strings.Split(css, "\n") {
		idx := strings.Index(line, "@")
		if idx < 0 || strings.HasPrefix(line, "@define-color") {
			continue
		}
		name := strings.TrimSuffix(strings.TrimSpace(line[idx+1:]), ";")
		assert.Contains(t, css, "@define-color "+name+" ", "undefined color %s", name)
	}
}

func TestStatusClassesCoverEveryStatus(t *testing.T) {
	statuses := []entity.Status{
		entity.StatusIdle,
		entity.StatusRunning,
		entity.StatusWaiting,
		entity.StatusLocking,
		entity.StatusLockFailed,
		entity.StatusStopped,
	}
	for _, s := range statuses {
		assert.Contains(t, StatusClasses, s.CSSClass())
	}
}
