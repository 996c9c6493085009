// Package generation wraps the OpenRouter-compatible chat completion API
// used to produce review text. Rate-limit and server-error classes are
// retried internally with backoff; everything else fails fast and is left
// to the coordinator's attempt budget.
package generation
