package domain

// QueryResult is the driver-independent shape of a query response: column
// names plus rows already rendered to text. Good enough for a diagnostic
// client that only ever prints results.
type QueryResult struct {
	Columns []string
	Rows    [][]string
}

// Empty reports whether the result carries no rows.
func (r *QueryResult) Empty() bool {
	return r == nil || len(r.Rows) == 0
}
