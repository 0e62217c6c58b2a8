package oslock

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/godbus/dbus/v5"

	"github.com/bnema/lockbreak/internal/application/port"
	"github.com/bnema/lockbreak/internal/logging"
)

const (
	login1Dest      = "org.freedesktop.login1"
	login1Path      = dbus.ObjectPath("/org/freedesktop/login1")
	login1Manager   = "org.freedesktop.login1.Manager"
	login1Session   = "org.freedesktop.login1.Session"
	propertiesIface = "org.freedesktop.DBus.Properties"
)

// LogindLocker locks the current login session through systemd-logind and
// watches its lock state. Both the LockedHint property and the session's
// Lock/Unlock signals are reported: lockers started by "loginctl lock-session"
// often never touch LockedHint.
type LogindLocker struct {
	conn    *dbus.Conn
	session dbus.BusObject
	signals *lockedFanout

	muMatch     sync.Mutex
	matchActive bool

	signalCh  chan *dbus.Signal
	closeOnce sync.Once
	closed    chan struct{}
}

// NewLogindLocker connects to the system bus and resolves the session object.
// sessionID is usually XDG_SESSION_ID; when empty the session owning this
// process is used.
func NewLogindLocker(ctx context.Context, sessionID string) (*LogindLocker, error) {
	log := logging.FromContext(ctx)

	conn, err := dbus.ConnectSystemBus(dbus.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to system bus: %w", err)
	}

	path, err := resolveSessionPath(ctx, conn, sessionID)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	log.Debug().Str("session_path", string(path)).Msg("resolved logind session")

	l := &LogindLocker{
		conn:     conn,
		session:  conn.Object(login1Dest, path),
		signals:  newLockedFanout(),
		signalCh: make(chan *dbus.Signal, 16),
		closed:   make(chan struct{}),
	}
	conn.Signal(l.signalCh)
	go l.dispatchSignals()

	return l, nil
}

func resolveSessionPath(ctx context.Context, conn *dbus.Conn, sessionID string) (dbus.ObjectPath, error) {
	manager := conn.Object(login1Dest, login1Path)

	var path dbus.ObjectPath
	if sessionID != "" {
		err := manager.CallWithContext(ctx, login1Manager+".GetSession", 0, sessionID).Store(&path)
		if err == nil {
			return path, nil
		}
		logging.FromContext(ctx).Debug().Err(err).Str("session_id", sessionID).Msg("GetSession failed, trying by PID")
	}

	err := manager.CallWithContext(ctx, login1Manager+".GetSessionByPID", 0, uint32(os.Getpid())).Store(&path)
	if err == nil {
		return path, nil
	}
	// Processes started outside the session scope (systemd user units) have no session.
	logging.FromContext(ctx).Debug().Err(err).Msg("GetSessionByPID failed, listing sessions")

	var sessions []logindSession
	if listErr := manager.CallWithContext(ctx, login1Manager+".ListSessions", 0).Store(&sessions); listErr != nil {
		return "", fmt.Errorf("failed to find logind session: %w", errors.Join(err, listErr))
	}
	path, found := pickSession(sessions, uint32(os.Getuid()))
	if !found {
		return "", fmt.Errorf("failed to find logind session: no session for uid %d", os.Getuid())
	}
	return path, nil
}

// logindSession is one entry of Manager.ListSessions, signature (susso).
type logindSession struct {
	ID   string
	UID  uint32
	User string
	Seat string
	Path dbus.ObjectPath
}

// pickSession returns the first session of uid, preferring one attached to a seat.
func pickSession(sessions []logindSession, uid uint32) (dbus.ObjectPath, bool) {
	var fallback dbus.ObjectPath
	for _, s := range sessions {
		if s.UID != uid {
			continue
		}
		if s.Seat != "" {
			return s.Path, true
		}
		if fallback == "" {
			fallback = s.Path
		}
	}
	return fallback, fallback != ""
}

func (l *LogindLocker) Name() string {
	return "logind"
}

// Lock asks logind to lock the session. It returns once the request is accepted.
func (l *LogindLocker) Lock(ctx context.Context) error {
	if err := l.session.CallWithContext(ctx, login1Session+".Lock", 0).Err; err != nil {
		return fmt.Errorf("could not lock session: %w", err)
	}
	return nil
}

// Locked reads the current LockedHint.
func (l *LogindLocker) Locked() (bool, error) {
	variant, err := l.session.GetProperty(login1Session + ".LockedHint")
	if err != nil {
		return false, fmt.Errorf("could not get locked hint: %w", err)
	}
	locked, ok := variant.Value().(bool)
	if !ok {
		return false, errors.New("LockedHint property is not a boolean")
	}
	return locked, nil
}

// matchRules lists the signals the watcher needs: PropertiesChanged for
// LockedHint plus the session's Lock and Unlock signals.
func (l *LogindLocker) matchRules() [][]dbus.MatchOption {
	rule := func(iface, member string) []dbus.MatchOption {
		return []dbus.MatchOption{
			dbus.WithMatchObjectPath(l.session.Path()),
			dbus.WithMatchInterface(iface),
			dbus.WithMatchSender(login1Dest),
			dbus.WithMatchMember(member),
		}
	}
	return [][]dbus.MatchOption{
		rule(propertiesIface, "PropertiesChanged"),
		rule(login1Session, "Lock"),
		rule(login1Session, "Unlock"),
	}
}

func (l *LogindLocker) AddLockedSignal(c chan<- bool) error {
	if c == nil {
		return errors.New("AddLockedSignal: channel cannot be nil")
	}

	l.muMatch.Lock()
	defer l.muMatch.Unlock()

	if !l.matchActive {
		rules := l.matchRules()
		for i, rule := range rules {
			if err := l.conn.AddMatchSignal(rule...); err != nil {
				for _, added := range rules[:i] {
					_ = l.conn.RemoveMatchSignal(added...)
				}
				return fmt.Errorf("failed to register D-Bus lock signals: %w", err)
			}
		}
		l.matchActive = true
	}
	l.signals.add(c)
	return nil
}

func (l *LogindLocker) RemoveLockedSignal(c chan<- bool) error {
	if c == nil {
		return errors.New("RemoveLockedSignal: channel cannot be nil")
	}

	l.muMatch.Lock()
	defer l.muMatch.Unlock()

	if l.signals.remove(c) > 0 {
		return nil
	}
	return l.removeMatchLocked()
}

// removeMatchLocked requires muMatch.
func (l *LogindLocker) removeMatchLocked() error {
	if !l.matchActive {
		return nil
	}
	var errs []error
	for _, rule := range l.matchRules() {
		if err := l.conn.RemoveMatchSignal(rule...); err != nil {
			errs = append(errs, err)
		}
	}
	l.matchActive = false
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("failed to remove D-Bus lock signals: %w", err)
	}
	return nil
}

// Close unregisters every signal and closes the bus connection.
func (l *LogindLocker) Close() error {
	var err error
	l.closeOnce.Do(func() {
		l.muMatch.Lock()
		l.signals.clear()
		err = l.removeMatchLocked()
		l.muMatch.Unlock()

		close(l.closed)
		l.conn.RemoveSignal(l.signalCh)
		err = errors.Join(err, l.conn.Close())
	})
	return err
}

func (l *LogindLocker) dispatchSignals() {
	path := l.session.Path()
	for {
		select {
		case <-l.closed:
			return
		case sig, ok := <-l.signalCh:
			if !ok {
				return
			}
			if locked, ok := lockStateFromSignal(sig, path); ok {
				l.signals.broadcast(locked)
			}
		}
	}
}

// lockStateFromSignal maps a signal of the given session object to a lock state:
// Session.Lock and Session.Unlock, or a PropertiesChanged carrying LockedHint.
func lockStateFromSignal(sig *dbus.Signal, path dbus.ObjectPath) (locked bool, ok bool) {
	// nil signals show up while the connection closes.
	if sig == nil || sig.Path != path {
		return false, false
	}
	switch sig.Name {
	case login1Session + ".Lock":
		return true, true
	case login1Session + ".Unlock":
		return false, true
	case propertiesIface + ".PropertiesChanged":
	default:
		return false, false
	}
	if len(sig.Body) < 2 {
		return false, false
	}
	if iface, _ := sig.Body[0].(string); iface != login1Session {
		return false, false
	}
	changed, isMap := sig.Body[1].(map[string]dbus.Variant)
	if !isMap {
		return false, false
	}
	hint, has := changed["LockedHint"]
	if !has {
		return false, false
	}
	locked, ok = hint.Value().(bool)
	return locked, ok
}

// lockedFanout delivers lock state changes to registered channels without blocking.
type lockedFanout struct {
	mu    sync.Mutex
	chans map[chan<- bool]struct{}
}

func newLockedFanout() *lockedFanout {
	return &lockedFanout{chans: make(map[chan<- bool]struct{})}
}

func (f *lockedFanout) add(c chan<- bool) {
	f.mu.Lock()
	f.chans[c] = struct{}{}
	f.mu.Unlock()
}

// remove returns the number of channels still registered.
func (f *lockedFanout) remove(c chan<- bool) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.chans, c)
	return len(f.chans)
}

func (f *lockedFanout) clear() {
	f.mu.Lock()
	clear(f.chans)
	f.mu.Unlock()
}

func (f *lockedFanout) broadcast(locked bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for c := range f.chans {
		select {
		case c <- locked:
		default:
		}
	}
}

var (
	_ port.ScreenLocker     = (*LogindLocker)(nil)
	_ port.LockStateWatcher = (*LogindLocker)(nil)
)
