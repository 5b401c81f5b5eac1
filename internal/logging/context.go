package logging

import (
	"context"

	"go.uber.org/zap"
)

// Context key types
type runCtxKey struct{}
type detectorCtxKey struct{}

// ContextFields extracts correlation data from context.
func ContextFields(ctx context.Context) []zap.Field {
	fields := make([]zap.Field, 0, 2)

	if runID := RunIDFromContext(ctx); runID != "" {
		fields = append(fields, zap.String("run.id", runID))
	}

	if detector := DetectorFromContext(ctx); detector != "" {
		fields = append(fields, zap.String("detector", detector))
	}

	return fields
}

// WithRunID attaches a pipeline run ID to the context.
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, runCtxKey{}, runID)
}

// RunIDFromContext returns the run ID, or "" if absent.
func RunIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(runCtxKey{}).(string); ok {
		return v
	}
	return ""
}

// WithDetector attaches the detector currently being processed.
func WithDetector(ctx context.Context, detector string) context.Context {
	return context.WithValue(ctx, detectorCtxKey{}, detector)
}

// DetectorFromContext returns the current detector, or "" if absent.
func DetectorFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(detectorCtxKey{}).(string); ok {
		return v
	}
	return ""
}
