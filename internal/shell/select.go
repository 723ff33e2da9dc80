package shell

import "fmt"

// selectRow resolves an attribute-search result to a single record without
// the operator ever typing a primary key. Zero candidates and an explicit
// cancel are both "no selection", not errors. A single candidate is taken
// without prompting; multiple candidates become a numbered list and the
// operator picks an index in [0, N] where 0 cancels.
func selectRow[T any](p *Printer, in *Prompter, rows []T, what string, label func(T) string) (T, bool) {
	var zero T

	if len(rows) == 0 {
		p.Warn("no %s found", what)
		return zero, false
	}

	if len(rows) == 1 {
		p.Info("single match: %s", label(rows[0]))
		return rows[0], true
	}

	p.Info("%d matches:", len(rows))
	for i, r := range rows {
		fmt.Fprintf(p.out, "%2d) %s\n", i+1, label(r))
	}
	idx := in.AskIntRange("pick a row (0 to cancel): ", 0, len(rows))
	if idx == 0 {
		p.Info("selection cancelled")
		return zero, false
	}
	return rows[idx-1], true
}
