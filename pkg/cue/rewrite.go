package cue

import (
	"sort"
	"strings"
)

// Replacement describes one reference rewrite. When Start and End bracket
// the original text, substitution happens by byte range; otherwise every
// literal occurrence of Old is replaced, which can corrupt an unrelated
// token that happens to share the same text.
type Replacement struct {
	Start int
	End   int
	Old   string
	New   string
}

// Rewrite applies replacements to a cue sheet and returns the result.
// Range-based replacements are applied back to front so earlier offsets
// stay valid.
func Rewrite(text string, reps []Replacement) string {
	ranged := make([]Replacement, 0, len(reps))
	var literal []Replacement
	for _, r := range reps {
		if r.Start >= 0 && r.End > r.Start && r.End <= len(text) && text[r.Start:r.End] == r.Old {
			ranged = append(ranged, r)
		} else {
			literal = append(literal, r)
		}
	}

	sort.Slice(ranged, func(i, j int) bool { return ranged[i].Start > ranged[j].Start })

	var b strings.Builder
	out := text
	for _, r := range ranged {
		b.Reset()
		b.Grow(len(out) - (r.End - r.Start) + len(r.New))
		b.WriteString(out[:r.Start])
		b.WriteString(r.New)
		b.WriteString(out[r.End:])
		out = b.String()
	}

	for _, r := range literal {
		out = strings.ReplaceAll(out, r.Old, r.New)
	}

	return out
}
