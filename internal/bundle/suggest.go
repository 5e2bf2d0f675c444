package bundle

import (
	"os"
	"strings"

	"github.com/hbollon/go-edlib"
)

// suggestThreshold is the minimum Jaro-Winkler similarity for a filename
// suggestion to be worth reporting.
const suggestThreshold = 0.8

// Suggestion is a probable correction for a referenced file that does not
// exist on disk.
type Suggestion struct {
	Missing   string  // the referenced filename that was not found
	Candidate string  // an existing filename it probably meant
	Score     float64 // Jaro-Winkler similarity (0.0-1.0)
}

// SuggestName fuzzy-matches a missing filename against names present in
// dir. Jaro-Winkler favors prefix matches, which suits track filenames that
// differ in numbering or extension case. Diagnostic only; never alters a
// plan.
func SuggestName(missing, dir string) (Suggestion, bool) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return Suggestion{}, false
	}

	best := Suggestion{Missing: missing}
	lower := strings.ToLower(missing)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		score := float64(edlib.JaroWinklerSimilarity(lower, strings.ToLower(entry.Name())))
		if score > best.Score {
			best.Score = score
			best.Candidate = entry.Name()
		}
	}

	if best.Score < suggestThreshold {
		return Suggestion{}, false
	}
	return best, true
}
