package port

// MigrationResult lists the default settings a config.toml does not set yet.
type MigrationResult struct {
	// MissingKeys are dotted keys such as "system.resume_on_unlock" or "ui.color_scheme".
	MissingKeys []string
	ConfigFile  string
}

// KeyInfo describes one missing setting for `lockbreak config migrate`.
type KeyInfo struct {
	Key          string
	Type         string // "bool", "string", "float", ...
	DefaultValue string // TOML literal, e.g. `"5m0s"` for lock.duration
}

// ConfigMigrator adds settings introduced by newer releases to an existing
// config file. Values the user already set are never rewritten.
type ConfigMigrator interface {
	// CheckMigration returns nil when the file is missing or already complete.
	CheckMigration() (*MigrationResult, error)
	// Migrate writes the missing keys with their defaults and returns them.
	Migrate() ([]string, error)
	GetKeyInfo(key string) KeyInfo
}
