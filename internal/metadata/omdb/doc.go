// Package omdb provides the OMDb API client used as the fallback metadata
// provider when TMDB cannot resolve an identifier.
package omdb
