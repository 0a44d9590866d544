package logger_test

import (
	"context"
	"testing"

	"checker/pkg/logger"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestSetup(t *testing.T) {
	tests := []struct {
		name        string
		environment string
	}{
		{
			name:        "Development Environment",
			environment: logger.DevelopmentEnvironment,
		},
		{
			name:        "Production Environment",
			environment: logger.ProductionEnvironment,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger.Setup(tt.environment)
			require.NotNil(t, logger.Get(context.Background()))
		})
	}
}

func TestWithLoggerRoundTrip(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	l := zap.New(core)

	ctx := logger.WithLogger(context.Background(), l)
	logger.Info(ctx, "hello")

	require.Equal(t, 1, logs.Len())
	require.Equal(t, "hello", logs.All()[0].Message)
}

func TestWithFieldsAttachesFields(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	l := zap.New(core)

	ctx := logger.WithLogger(context.Background(), l)
	ctx = logger.WithFields(ctx, zap.String("batchID", "b-1"))
	logger.Warn(ctx, "slow provider")

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	require.Equal(t, "slow provider", entry.Message)
	require.Equal(t, "b-1", entry.ContextMap()["batchID"])
}
