package model

// SearchType names one searchable collection.
type SearchType string

const (
	SearchNotes    SearchType = "notes"
	SearchStories  SearchType = "stories"
	SearchChapters SearchType = "chapters"
	SearchExpenses SearchType = "expenses"
	SearchMemories SearchType = "memories"
)

var SearchTypes = []SearchType{SearchNotes, SearchStories, SearchChapters, SearchExpenses, SearchMemories}

func (t SearchType) Valid() bool {
	for _, st := range SearchTypes {
		if t == st {
			return true
		}
	}
	return false
}

// SearchQuery is a per-collection query. Text is matched as a literal,
// case-insensitive substring; an empty Text matches everything.
type SearchQuery struct {
	Text  string
	Tag   string
	Limit int64
}

type SearchResults struct {
	Notes    []*Note    `json:"notes"`
	Stories  []*Story   `json:"stories"`
	Chapters []*Chapter `json:"chapters"`
	Expenses []*Expense `json:"expenses"`
	Memories []*Memory  `json:"memories"`
}

func (r *SearchResults) Total() int {
	return len(r.Notes) + len(r.Stories) + len(r.Chapters) + len(r.Expenses) + len(r.Memories)
}
