package logger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"
)

func TestNewLevels(t *testing.T) {
	l, err := New("debug")
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zapcore.DebugLevel))

	l, err = New("")
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zapcore.DebugLevel))

	_, err = New("loud")
	assert.Error(t, err)
}

func TestNamedNil(t *testing.T) {
	assert.NotNil(t, Named(nil, "repo"))
}

func TestGormAdapterTrace(t *testing.T) {
	tests := []struct {
		name      string
		elapsed   time.Duration
		err       error
		wantMsg   string
		wantLevel zapcore.Level
	}{
		{name: "normal query", wantMsg: "query", wantLevel: zapcore.DebugLevel},
		{name: "record not found is not an error", err: gorm.ErrRecordNotFound, wantMsg: "query", wantLevel: zapcore.DebugLevel},
		{name: "query error", err: errors.New("boom"), wantMsg: "query error", wantLevel: zapcore.WarnLevel},
		{name: "slow query", elapsed: time.Second, wantMsg: "slow query", wantLevel: zapcore.WarnLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zapcore.DebugLevel)
			a := NewGormAdapter(zap.New(core), 200*time.Millisecond)

			a.Trace(context.Background(), time.Now().Add(-tt.elapsed), func() (string, int64) {
				return "SELECT 1", 1
			}, tt.err)

			entries := logs.All()
			require.Len(t, entries, 1)
			assert.Equal(t, tt.wantMsg, entries[0].Message)
			assert.Equal(t, tt.wantLevel, entries[0].Level)
		})
	}
}
