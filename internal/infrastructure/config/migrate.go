package config

import (
	"fmt"
	"os"
	"reflect"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"github.com/bnema/lockbreak/internal/application/port"
)

// Migrator implements port.ConfigMigrator for comparing and merging config files.
type Migrator struct {
	// defaultViper holds a Viper instance with all defaults set.
	defaultViper *viper.Viper
	configFile   string
}

// NewMigrator creates a Migrator for configFile.
func NewMigrator(configFile string) *Migrator {
	v := viper.New()
	v.SetConfigType("toml")

	// Create a temporary manager to set defaults
	m := &Manager{viper: v}
	m.setDefaults()

	return &Migrator{
		defaultViper: v,
		configFile:   configFile,
	}
}

// CheckMigration checks if user config is missing any default keys.
// Returns nil if no migration is needed.
func (m *Migrator) CheckMigration() (*port.MigrationResult, error) {
	// If config file doesn't exist, no migration needed (will be created with all defaults)
	if _, statErr := os.Stat(m.configFile); os.IsNotExist(statErr) {
		return nil, nil
	}

	userKeys, err := m.getUserConfigKeys(m.configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to parse user config: %w", err)
	}

	missingKeys := m.findMissingKeys(m.getAllDefaultKeys(), userKeys)
	if len(missingKeys) == 0 {
		return nil, nil
	}

	return &port.MigrationResult{
		MissingKeys: missingKeys,
		ConfigFile:  m.configFile,
	}, nil
}

// Migrate rewrites the config file with the missing keys set to their defaults.
// Values already in the file are kept.
func (m *Migrator) Migrate() ([]string, error) {
	result, err := m.CheckMigration()
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, nil
	}

	// Create a new Viper instance to read user config
	userViper := viper.New()
	userViper.SetConfigFile(m.configFile)
	userViper.SetConfigType("toml")

	// Set all defaults first
	mgr := &Manager{viper: userViper}
	mgr.setDefaults()

	// Read existing config (this merges with defaults)
	if err := userViper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// database.path and logging.log_dir are written empty so they keep following XDG.
	if err := userViper.WriteConfig(); err != nil {
		return nil, fmt.Errorf("failed to write config file: %w", err)
	}

	return result.MissingKeys, nil
}

// GetKeyInfo returns detailed information about a config key.
func (m *Migrator) GetKeyInfo(key string) port.KeyInfo {
	value := m.defaultViper.Get(key)
	if value == nil {
		return port.KeyInfo{
			Key:          key,
			Type:         "unknown",
			DefaultValue: "unknown",
		}
	}

	return port.KeyInfo{
		Key:          key,
		Type:         m.getTypeName(value),
		DefaultValue: m.formatValue(value),
	}
}

// getAllDefaultKeys returns all keys from the default configuration.
func (m *Migrator) getAllDefaultKeys() []string {
	keys := m.defaultViper.AllKeys()

	// Path keys are resolved at load time.
	filtered := make([]string, 0, len(keys))
	for _, key := range keys {
		if key == "database.path" || key == "logging.log_dir" {
			continue
		}
		filtered = append(filtered, key)
	}

	sort.Strings(filtered)
	return filtered
}

// getUserConfigKeys parses the user's TOML file and returns all defined keys.
func (m *Migrator) getUserConfigKeys(configFile string) (map[string]bool, error) {
	data, err := os.ReadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var rawConfig map[string]any
	if err := toml.Unmarshal(data, &rawConfig); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	keys := make(map[string]bool)
	m.flattenMap(rawConfig, "", keys)
	return keys, nil
}

// flattenMap recursively flattens a nested map to dot-notation keys.
func (m *Migrator) flattenMap(data map[string]any, prefix string, keys map[string]bool) {
	for k, v := range data {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}

		if val, ok := v.(map[string]any); ok {
			m.flattenMap(val, key, keys)
			continue
		}
		keys[key] = true
	}
}

// findMissingKeys returns keys that are in defaults but not in user config.
func (m *Migrator) findMissingKeys(defaultKeys []string, userKeys map[string]bool) []string {
	missing := make([]string, 0)

	for _, key := range defaultKeys {
		// Check if key or any related key exists in user config
		if m.keyOrRelatedExists(key, userKeys) {
			continue
		}
		missing = append(missing, key)
	}

	// Sort for consistent output
	sort.Strings(missing)
	return missing
}

// keyOrRelatedExists checks if a key, any parent, or any child keys exist in the map.
// This handles cases where:
// - User has defined a parent section but not all children
// - Default is a struct key but user has individual sub-keys (e.g., palettes)
func (*Migrator) keyOrRelatedExists(key string, keys map[string]bool) bool {
	if keys[key] {
		return true
	}

	// Check if this is a child of a leaf map (like search_shortcuts.ddg)
	// In that case, we should check if the parent exists
	parts := strings.Split(key, ".")
	for i := len(parts) - 1; i > 0; i-- {
		parentKey := strings.Join(parts[:i], ".")
		if keys[parentKey] {
			// Parent exists as a leaf map, so child is implicitly defined
			return true
		}
	}

	// Check if any child keys exist (e.g., default is "appearance.dark_palette"
	// but user has "appearance.dark_palette.background")
	keyPrefix := key + "."
	for userKey := range keys {
		if strings.HasPrefix(userKey, keyPrefix) {
			return true
		}
	}

	return false
}

// getTypeName returns a human-readable type name for a value.
func (*Migrator) getTypeName(value any) string {
	if value == nil {
		return "unknown"
	}

	t := reflect.TypeOf(value)
	switch t.Kind() {
	case reflect.Bool:
		return "bool"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return "int"
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "int"
	case reflect.Float32, reflect.Float64:
		return "float"
	case reflect.String:
		return "string"
	case reflect.Slice:
		return "list"
	case reflect.Map:
		return "map"
	default:
		return t.String()
	}
}

// formatValue returns a human-readable string representation of a value.
func (*Migrator) formatValue(value any) string {
	if value == nil {
		return "null"
	}

	switch v := value.(type) {
	case bool:
		if v {
			return "true"
		}
		return "false"
	case int, int8, int16, int32, int64:
		return fmt.Sprintf("%d", v)
	case uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", v)
	case float32, float64:
		return fmt.Sprintf("%v", v)
	case string:
		if v == "" {
			return `""`
		}
		// Truncate long strings
		const maxStringLen = 50
		if len(v) > maxStringLen {
			return fmt.Sprintf("%q...", v[:maxStringLen-3])
		}
		return fmt.Sprintf("%q", v)
	case []any:
		if len(v) == 0 {
			return "[]"
		}
		return fmt.Sprintf("[%d items]", len(v))
	case map[string]any:
		if len(v) == 0 {
			return "{}"
		}
		return fmt.Sprintf("{%d entries}", len(v))
	default:
		// Handle slices of strings (common for action bindings)
		rv := reflect.ValueOf(value)
		if rv.Kind() == reflect.Slice {
			if rv.Len() == 0 {
				return "[]"
			}
			return fmt.Sprintf("[%d items]", rv.Len())
		}
		if rv.Kind() == reflect.Map {
			if rv.Len() == 0 {
				return "{}"
			}
			return fmt.Sprintf("{%d entries}", rv.Len())
		}
		return fmt.Sprintf("%v", v)
	}
}
