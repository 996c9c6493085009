// Package coordinator orchestrates review requests: cache lookup, in-flight
// request coalescing, the bounded generate-and-verify loop, normalization,
// verdict extraction, and write-through persistence. GetReview never returns
// an error to its caller; terminal failures surface as an apologetic review
// payload with no verdict.
package coordinator
