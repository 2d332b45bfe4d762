package dto

// SelectQuery describes a PostgREST read. Eq filters become column=eq.value.
type SelectQuery struct {
	Table   string
	Columns string
	Eq      map[string]string
	Order   string
	From    *int
	To      *int
	Count   bool
}

type SelectResult struct {
	Rows  []map[string]any
	Count int
}
