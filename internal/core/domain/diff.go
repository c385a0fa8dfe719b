package domain

import "strings"

// DiffKind classifies one line of a diff.
type DiffKind string

const (
	// DiffUnchanged marks a line equal in both texts at the same index.
	DiffUnchanged DiffKind = "unchanged"

	// DiffAdded marks a line present in the current text only.
	DiffAdded DiffKind = "added"

	// DiffRemoved marks a line present in the previous text only.
	DiffRemoved DiffKind = "removed"
)

// DiffLine is one record of a computed diff.
type DiffLine struct {
	// Kind tags the line as unchanged, added or removed.
	Kind DiffKind

	// Text is the literal line content, without the newline.
	Text string
}

// DiffLines compares two texts line by line at matching indices.
//
// This is deliberately a positional comparison, not a minimal-edit diff:
// there is no alignment or LCS. Wiki edits are typically append/amend, so
// the cheap deterministic walk reads well; a line inserted mid-block shifts
// everything after it into removed+added pairs, which is the accepted
// trade-off.
//
// At each index up to the longer text's line count: equal lines (a missing
// line counts as empty) emit one unchanged record; otherwise a removed
// record for a present non-empty previous line, then an added record for a
// present non-empty current line. Trailing blank lines survive as
// empty-string unchanged records.
func DiffLines(previous, current string) []DiffLine {
	prevLines := strings.Split(previous, "\n")
	currLines := strings.Split(current, "\n")

	n := len(prevLines)
	if len(currLines) > n {
		n = len(currLines)
	}

	var out []DiffLine
	for i := 0; i < n; i++ {
		var prevLine, currLine string
		prevPresent := i < len(prevLines)
		currPresent := i < len(currLines)
		if prevPresent {
			prevLine = prevLines[i]
		}
		if currPresent {
			currLine = currLines[i]
		}

		if prevLine == currLine {
			out = append(out, DiffLine{Kind: DiffUnchanged, Text: currLine})
			continue
		}
		if prevPresent && prevLine != "" {
			out = append(out, DiffLine{Kind: DiffRemoved, Text: prevLine})
		}
		if currPresent && currLine != "" {
			out = append(out, DiffLine{Kind: DiffAdded, Text: currLine})
		}
	}

	return out
}
