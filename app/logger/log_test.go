package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestNewNamed(t *testing.T) {
	t.Run("same name returns same logger", func(t *testing.T) {
		l1 := NewNamed("test.named")
		l2 := NewNamed("test.named")
		assert.Same(t, l1, l2)
	})
	t.Run("named level overrides default", func(t *testing.T) {
		SetNamedLevels([]NamedLevel{{Name: "test.quiet", Level: "error"}})
		l := NewNamed("test.quiet")
		assert.False(t, l.Core().Enabled(zapcore.InfoLevel))
		assert.True(t, l.Core().Enabled(zapcore.ErrorLevel))
	})
	t.Run("glob pattern matches prefixed names", func(t *testing.T) {
		SetNamedLevels([]NamedLevel{{Name: "globbed.*", Level: "warn"}})
		l := NewNamed("globbed.sub")
		assert.False(t, l.Core().Enabled(zapcore.DebugLevel))
		assert.True(t, l.Core().Enabled(zapcore.WarnLevel))
	})
}
