// Package media defines media identifiers and types shared across the
// review pipeline. A movie is addressed by a plain IMDb-style id; a single
// episode uses the composite "seriesId:S<season>:E<episode>" form.
package media
