package app

import (
	"path/filepath"
	"testing"

	"github.com/intentbot/intentbot-go/internal/config"
	"github.com/intentbot/intentbot-go/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewAssistant_DefaultCorpus(t *testing.T) {
	cfg := &config.Config{
		Classifier: config.ClassifierConfig{
			CorpusPath:      filepath.Join(t.TempDir(), "missing.txt"),
			ConfidenceFloor: config.DefaultConfidenceFloor,
		},
	}

	assistant, cleanup, err := NewAssistant(cfg, zap.NewNop())
	require.NoError(t, err)
	defer cleanup()

	assert.True(t, assistant.Ready())
	assert.Equal(t, model.CategoryFarewell, assistant.Classify("goodbye").Category)
}

func TestNewAssistant_RedisUnavailable(t *testing.T) {
	cfg := &config.Config{
		Redis: config.RedisConfig{Enabled: true, Host: "127.0.0.1", Port: 1},
	}
	_, cleanup, err := NewAssistant(cfg, zap.NewNop())
	defer cleanup()
	assert.Error(t, err)
}
