// Package review implements the structural contract for generated review
// text: the fixed section catalogue, the movie/series format verifier, the
// canonicalizing normalizer, verdict extraction, prompt composition, and
// summary bullet parsing.
package review
