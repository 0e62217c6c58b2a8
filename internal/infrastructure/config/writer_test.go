package config

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalTOML_DurationsAsStrings(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Lock.Duration = 90 * time.Second

	data, err := MarshalTOML(cfg)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, toml.Unmarshal(data, &doc))

	lock, ok := doc["lock"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "1m30s", lock["duration"])
	assert.Equal(t, "overlay", lock["mode"])

	system, ok := doc["system"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "5s", system["lock_confirm_timeout"])
}

func TestMarshalTOML_Nil(t *testing.T) {
	_, err := MarshalTOML(nil)
	assert.Error(t, err)
}

func TestSchemaJSON(t *testing.T) {
	data, err := SchemaJSON()
	require.NoError(t, err)

	var schema map[string]any
	require.NoError(t, json.Unmarshal(data, &schema))

	assert.Equal(t, "lockbreak configuration", schema["title"])
	props, ok := schema["properties"].(map[string]any)
	require.True(t, ok)
	for _, section := range []string{"timer", "lock", "system", "ui", "history", "database", "logging"} {
		assert.Contains(t, props, section)
	}
}
