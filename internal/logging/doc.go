// Package logging wraps zap with configuration, context-carried fields,
// and test observation helpers used across the redteam pipeline.
package logging
