// Package store persists cached reviews in SQLite with a fixed 30-day
// time-to-live. Expired entries are treated as absent on read and evicted
// lazily or by an explicit sweep.
package store
