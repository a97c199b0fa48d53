package domain

// EventQuery is the store-side search used by list endpoints.
// Nil slices mean "no filter"; non-nil empty slices match nothing.
type EventQuery struct {
	Text       string
	Categories []string
	Countries  []string
	Start      *Date
	End        *Date
}

// Facets lists the distinct values available for filtering, with the date bounds
// of the whole event set. MinDate and MaxDate are nil for an empty store.
type Facets struct {
	Categories []string `json:"categories"`
	Topics     []string `json:"topics"`
	Countries  []string `json:"countries"`
	MinDate    *Date    `json:"min_date"`
	MaxDate    *Date    `json:"max_date"`
}
