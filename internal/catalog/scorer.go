package catalog

import (
	"github.com/hbollon/go-edlib"

	"karasync/internal/textutil"
)

// Scorer computes the similarity between a file's title/artist guess and a
// catalog record's title/artist. Implementations must be pure and
// deterministic; scores are in [0, 1].
type Scorer func(queryTitle, queryArtist, title, artist string) float64

// DefaultScorer blends Jaro-Winkler string similarity with token overlap on
// normalized text. Title carries most of the weight; artist refines the score
// when both sides have one.
func DefaultScorer(queryTitle, queryArtist, title, artist string) float64 {
	qt := textutil.Normalize(queryTitle)
	rt := textutil.Normalize(title)
	if qt == "" || rt == "" {
		return 0
	}

	titleScore := blendedSimilarity(qt, rt)

	qa := textutil.Normalize(queryArtist)
	ra := textutil.Normalize(artist)
	if qa == "" || ra == "" {
		return titleScore
	}
	return 0.7*titleScore + 0.3*blendedSimilarity(qa, ra)
}

func blendedSimilarity(a, b string) float64 {
	jw, err := edlib.StringsSimilarity(a, b, edlib.JaroWinkler)
	if err != nil {
		return 0
	}
	overlap := textutil.TokenOverlap(a, b)
	return 0.6*float64(jw) + 0.4*overlap
}
