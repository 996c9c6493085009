// Package metadata resolves media identifiers into a provider-agnostic
// record. TMDB is the primary provider; OMDb is the fallback. The rest of
// the pipeline only ever sees the normalized shape produced here.
package metadata
