package oslock

import (
	"testing"

	"github.com/godbus/dbus/v5"
	"github.com/stretchr/testify/assert"
)

const testSessionPath = dbus.ObjectPath("/org/freedesktop/login1/session/_32")

func propertiesChanged(path dbus.ObjectPath, iface string, changed map[string]dbus.Variant) *dbus.Signal {
	return &dbus.Signal{
		Sender: login1Dest,
		Path:   path,
		Name:   propertiesIface + ".PropertiesChanged",
		Body:   []any{iface, changed, []string{}},
	}
}

func TestLockStateFromSignal(t *testing.T) {
	tests := []struct {
		name       string
		sig        *dbus.Signal
		wantLocked bool
		wantOK     bool
	}{
		{
			name:       "locked",
			sig:        propertiesChanged(testSessionPath, login1Session, map[string]dbus.Variant{"LockedHint": dbus.MakeVariant(true)}),
			wantLocked: true,
			wantOK:     true,
		},
		{
			name:   "unlocked",
			sig:    propertiesChanged(testSessionPath, login1Session, map[string]dbus.Variant{"LockedHint": dbus.MakeVariant(false)}),
			wantOK: true,
		},
		{
			name: "nil signal",
		},
		{
			name: "other session",
			sig:  propertiesChanged("/org/freedesktop/login1/session/c2", login1Session, map[string]dbus.Variant{"LockedHint": dbus.MakeVariant(true)}),
		},
		{
			name: "other property",
			sig:  propertiesChanged(testSessionPath, login1Session, map[string]dbus.Variant{"IdleHint": dbus.MakeVariant(true)}),
		},
		{
			name: "other interface",
			sig:  propertiesChanged(testSessionPath, "org.freedesktop.login1.User", map[string]dbus.Variant{"LockedHint": dbus.MakeVariant(true)}),
		},
		{
			name: "non-boolean hint",
			sig:  propertiesChanged(testSessionPath, login1Session, map[string]dbus.Variant{"LockedHint": dbus.MakeVariant("yes")}),
		},
		{
			name:       "lock signal",
			sig:        &dbus.Signal{Sender: login1Dest, Path: testSessionPath, Name: login1Session + ".Lock"},
			wantLocked: true,
			wantOK:     true,
		},
		{
			name:   "unlock signal",
			sig:    &dbus.Signal{Sender: login1Dest, Path: testSessionPath, Name: login1Session + ".Unlock"},
			wantOK: true,
		},
		{
			name: "unlock signal of other session",
			sig:  &dbus.Signal{Path: "/org/freedesktop/login1/session/c2", Name: login1Session + ".Unlock"},
		},
		{
			name: "other session member",
			sig:  &dbus.Signal{Path: testSessionPath, Name: login1Session + ".PauseDevice"},
		},
		{
			name: "short body",
			sig:  &dbus.Signal{Path: testSessionPath, Name: propertiesIface + ".PropertiesChanged", Body: []any{login1Session}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			locked, ok := lockStateFromSignal(tt.sig, testSessionPath)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantLocked, locked)
		})
	}
}

func TestLockedFanout(t *testing.T) {
	f := newLockedFanout()
	a := make(chan bool, 1)
	b := make(chan bool, 1)
	full := make(chan bool)

	f.add(a)
	f.add(b)
	f.add(full)

	assert.NotPanics(t, func() { f.broadcast(true) })
	assert.True(t, <-a)
	assert.True(t, <-b)

	assert.Equal(t, 2, f.remove(full))
	assert.Equal(t, 1, f.remove(a))
	assert.Equal(t, 1, f.remove(a))

	f.clear()
	f.broadcast(false)
	assert.Empty(t, b)
}

func TestPickSession(t *testing.T) {
	tests := []struct {
		name     string
		sessions []logindSession
		uid      uint32
		want     dbus.ObjectPath
		wantOK   bool
	}{
		{
			name: "prefers seat session",
			sessions: []logindSession{
				{ID: "3", UID: 1000, User: "ada", Path: "/org/freedesktop/login1/session/_33"},
				{ID: "2", UID: 1000, User: "ada", Seat: "seat0", Path: "/org/freedesktop/login1/session/_32"},
			},
			uid:    1000,
			want:   "/org/freedesktop/login1/session/_32",
			wantOK: true,
		},
		{
			name: "falls back to first session of uid",
			sessions: []logindSession{
				{ID: "c1", UID: 0, User: "root", Seat: "seat0", Path: "/org/freedesktop/login1/session/c1"},
				{ID: "3", UID: 1000, User: "ada", Path: "/org/freedesktop/login1/session/_33"},
			},
			uid:    1000,
			want:   "/org/freedesktop/login1/session/_33",
			wantOK: true,
		},
		{
			name: "no session for uid",
			sessions: []logindSession{
				{ID: "c1", UID: 0, User: "root", Seat: "seat0", Path: "/org/freedesktop/login1/session/c1"},
			},
			uid: 1000,
		},
		{
			name: "empty list",
			uid:  1000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := pickSession(tt.sessions, tt.uid)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
