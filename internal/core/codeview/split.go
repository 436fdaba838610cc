package codeview

import "github.com/colonyops/lintlens/internal/core/diff"

// SplitRow is one line of a side by side layout. Either side may be nil.
type SplitRow struct {
	Old *DiffRow
	New *DiffRow
}

// SplitRows pairs the rows of a hunk for side by side display. Normal rows
// appear on both sides; a run of deletes followed by a run of inserts is
// zipped together, with the longer run padded by empty cells.
func SplitRows(h HunkView) []SplitRow {
	var out []SplitRow
	rows := h.Rows

	for i := 0; i < len(rows); {
		r := &rows[i]
		if r.Change.Type == diff.ChangeNormal {
			out = append(out, SplitRow{Old: r, New: r})
			i++
			continue
		}

		var dels, ins []*DiffRow
		for i < len(rows) && rows[i].Change.Type == diff.ChangeDelete {
			dels = append(dels, &rows[i])
			i++
		}
		for i < len(rows) && rows[i].Change.Type == diff.ChangeInsert {
			ins = append(ins, &rows[i])
			i++
		}

		n := max(len(dels), len(ins))
		for j := 0; j < n; j++ {
			var row SplitRow
			if j < len(dels) {
				row.Old = dels[j]
			}
			if j < len(ins) {
				row.New = ins[j]
			}
			out = append(out, row)
		}
	}

	return out
}
