// Command quickreviewer is the CLI entry point: it serves the HTTP API,
// generates one-shot reviews and summaries, and maintains the review cache.
package main
