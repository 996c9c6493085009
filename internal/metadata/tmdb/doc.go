// Package tmdb provides the minimal TMDB API surface quickreviewer needs:
// IMDb-id lookup plus movie, TV, and season detail fetches.
package tmdb
