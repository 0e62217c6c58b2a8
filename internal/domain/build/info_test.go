package build_test

import (
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bnema/lockbreak/internal/domain/build"
)

func TestInfo_Complete(t *testing.T) {
	installed := &debug.BuildInfo{
		GoVersion: "go1.25.3",
		Main:      debug.Module{Path: "github.com/bnema/lockbreak", Version: "v0.4.1"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "3f2a9c1d0b7e55aa01234567"},
			{Key: "vcs.time", Value: "2026-10-01T08:00:00Z"},
		},
	}

	tests := []struct {
		name string
		info build.Info
		bi   *debug.BuildInfo
		want build.Info
	}{
		{
			name: "ldflags win",
			info: build.Info{Version: "v1.0.0", Commit: "abc", BuildDate: "2026-09-30", GoVersion: "go1.25.1"},
			bi:   installed,
			want: build.Info{Version: "v1.0.0", Commit: "abc", BuildDate: "2026-09-30", GoVersion: "go1.25.1"},
		},
		{
			name: "go install fills placeholders",
			info: build.Info{Version: "dev", Commit: "unknown", BuildDate: "unknown"},
			bi:   installed,
			want: build.Info{Version: "v0.4.1", Commit: "3f2a9c1d0b7e", BuildDate: "2026-10-01T08:00:00Z", GoVersion: "go1.25.3"},
		},
		{
			name: "devel module keeps dev",
			info: build.Info{Version: "dev"},
			bi:   &debug.BuildInfo{GoVersion: "go1.25.3", Main: debug.Module{Version: "(devel)"}},
			want: build.Info{Version: "dev", Commit: "unknown", BuildDate: "unknown", GoVersion: "go1.25.3"},
		},
		{
			name: "no build info",
			want: build.Info{Version: "unknown", Commit: "unknown", BuildDate: "unknown", GoVersion: "unknown"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.info.Complete(tt.bi))
		})
	}
}

func TestInfo_Short(t *testing.T) {
	assert.Equal(t, "v1.2.0 (3f2a9c1d0b7e)", build.Info{Version: "v1.2.0", Commit: "3f2a9c1d0b7e"}.Short())
	assert.Equal(t, "v1.2.0", build.Info{Version: "v1.2.0"}.Short())
	assert.Equal(t, "unknown", build.Info{}.Short())
}
