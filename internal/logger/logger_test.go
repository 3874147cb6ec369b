package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	t.Run("should create a usable logger", func(t *testing.T) {
		log := NewLogger()

		require.NotNil(t, log)
		log.Info("test message")
	})
}

func TestNewProductionLogger(t *testing.T) {
	t.Run("should create a production logger", func(t *testing.T) {
		log, err := NewProductionLogger()

		require.NoError(t, err)
		assert.NotNil(t, log)
	})
}

func TestNewDevelopmentLogger(t *testing.T) {
	t.Run("should create a development logger", func(t *testing.T) {
		log, err := NewDevelopmentLogger()

		require.NoError(t, err)
		assert.NotNil(t, log)
	})
}
