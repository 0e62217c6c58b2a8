package styles

// Nerd Font icons (requires a Nerd Font to display correctly)
const (
	IconVersion   = "" // tag
	IconGitBranch = "" // git branch
	IconCalendar  = "" // calendar
	IconGo        = "" // go gopher
	IconGithub    = "" // github

	// Doctor / diagnostics
	IconDoctor  = "" // stethoscope
	IconCheck   = "" // check
	IconX       = "" // x
	IconWarning = "" // warning
	IconInfo    = "" // info

	IconConfig   = "" // config
	IconDatabase = "" // database
	IconLock     = "" // lock
	IconUnlock   = "" // unlock
	IconClock    = "" // clock
	IconPlay     = "" // play (running)
	IconStop     = "" // stop
	IconCursor   = "" // chevron-right
)
