package query

import (
	"fmt"

	"github.com/agentstation/snipdeck/pkg/snippets"
)

// Stats summarizes a query against a catalog.
type Stats struct {
	Total   int `json:"total" yaml:"total"`
	Showing int `json:"showing" yaml:"showing"`
}

// Summarize reports the catalog size and the number of matching snippets.
func Summarize(catalog, result []snippets.Snippet) Stats {
	return Stats{Total: len(catalog), Showing: len(result)}
}

// String renders the stats footer.
func (s Stats) String() string {
	return fmt.Sprintf("Total: %d snippets | Showing: %d", s.Total, s.Showing)
}

// NoResultsMessage is shown when a query matches nothing.
func NoResultsMessage(search string) string {
	return fmt.Sprintf(`No snippets found matching "%s"`, search)
}
