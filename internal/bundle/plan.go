package bundle

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/vmunix/cdbundle/pkg/cue"
)

// Transfer is one planned file transfer.
type Transfer struct {
	Source string // resolved absolute path of the referenced file
	Dest   string // flattened path inside the bundle
}

// Rewrite records that a cue reference's text must change to match the
// flattened bundle layout. Start and End locate the reference in the
// original cue text for range-based substitution.
type Rewrite struct {
	Old   string
	New   string
	Start int
	End   int
}

// TransferPlan is the working data for one import attempt: the ordered
// transfers plus the reference rewrites the flattening requires. Built
// fresh per attempt, never persisted or reused.
type TransferPlan struct {
	Transfers []Transfer
	Rewrites  []Rewrite
}

// BuildPlan resolves every file referenced by cueText against cueDir,
// flattens each into bundlePath, and records the rewrites needed to make
// the cue sheet match the new layout.
//
// Cue sheets are frequently authored on Windows tooling, so backslashes in
// references are treated as path separators. Directory structure is
// intentionally discarded: the bundle is a single flat folder. Two
// references flattening to the same filename fail with ErrDuplicateDest.
func BuildPlan(cueText, cueDir, bundlePath string) (*TransferPlan, error) {
	refs := cue.References(cueText)
	if len(refs) == 0 {
		return nil, ErrCueParse
	}

	plan := &TransferPlan{
		Transfers: make([]Transfer, 0, len(refs)),
	}
	seen := make(map[string]string, len(refs))

	for _, ref := range refs {
		normalized := strings.ReplaceAll(ref.Path, `\`, "/")
		resolved := normalized
		if !filepath.IsAbs(resolved) {
			resolved = filepath.Join(cueDir, resolved)
		}
		resolved = canonicalize(resolved)

		name := filepath.Base(resolved)
		// Case-folded so names that only differ by case, which collide on
		// case-insensitive filesystems, are rejected too.
		key := strings.ToLower(name)
		if prev, dup := seen[key]; dup {
			return nil, fmt.Errorf("%w: %q and %q both flatten to %q", ErrDuplicateDest, prev, ref.Path, name)
		}
		seen[key] = ref.Path

		plan.Transfers = append(plan.Transfers, Transfer{
			Source: resolved,
			Dest:   filepath.Join(bundlePath, name),
		})

		if ref.Path != name {
			plan.Rewrites = append(plan.Rewrites, Rewrite{
				Old:   ref.Path,
				New:   name,
				Start: ref.Start,
				End:   ref.End,
			})
		}
	}

	return plan, nil
}

// canonicalize collapses . and .. segments and resolves symlinks when the
// file exists. A missing file keeps its cleaned path so the transfer engine
// can surface the real error later.
func canonicalize(path string) string {
	path = filepath.Clean(path)
	if eval, err := filepath.EvalSymlinks(path); err == nil {
		return eval
	}
	return path
}

// RewriteCue applies a plan's rewrites to the original cue text.
func (p *TransferPlan) RewriteCue(cueText string) string {
	reps := make([]cue.Replacement, len(p.Rewrites))
	for i, r := range p.Rewrites {
		reps[i] = cue.Replacement{Start: r.Start, End: r.End, Old: r.Old, New: r.New}
	}
	return cue.Rewrite(cueText, reps)
}
