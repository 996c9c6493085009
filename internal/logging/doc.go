// Package logging builds the slog loggers used across quickreviewer and
// provides shared attribute helpers plus the standardized field keys that
// keep request-scoped log lines correlatable.
package logging
