// Package server exposes the review pipeline over HTTP: JSON endpoints for
// fetching reviews, summaries, the cached-review listing, and health, plus a
// rendered HTML review page. Requests authenticate with a bearer token when
// one is configured.
package server
