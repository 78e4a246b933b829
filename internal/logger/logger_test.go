package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestSanitizeKVs_RedactsSecrets(t *testing.T) {
	out := sanitizeKVs([]interface{}{
		"login", "alice",
		"password_hash", "$2a$12$abc",
		"refresh_fingerprint", []byte{1, 2, 3},
		"dangling",
	})

	assert.Equal(t, []interface{}{
		"login", "alice",
		"password_hash", "[REDACTED]",
		"refresh_fingerprint", "[REDACTED]",
		"dangling",
	}, out)
}

func TestLogger_WithCarriesFields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	log := &Logger{SugaredLogger: zap.New(core).Sugar()}

	log.With("repo", "TagRepository").Info("tag created", "tag_id", "t1", "token", "secret")

	entries := logs.All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "TagRepository", fields["repo"])
	assert.Equal(t, "t1", fields["tag_id"])
	assert.Equal(t, "[REDACTED]", fields["token"])
}

func TestNew_Modes(t *testing.T) {
	for _, mode := range []string{"dev", "prod"} {
		log, err := New(mode)
		require.NoError(t, err, mode)
		assert.NotNil(t, log.SugaredLogger)
	}
}
