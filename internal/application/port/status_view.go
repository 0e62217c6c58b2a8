package port

import "github.com/bnema/lockbreak/internal/domain/entity"

// StatusView is the settings form: status label, Start/Stop controls and modal dialogs.
// All methods must be called on the UI thread.
type StatusView interface {
	ShowStatus(event entity.StatusEvent)
	// SetRunning toggles the controls: Start is disabled while running, Stop otherwise.
	SetRunning(running bool)
	ShowError(title, message string)
}
