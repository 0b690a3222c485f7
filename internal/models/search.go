package models

// SearchResult is the cross-entity search fan-out. Every list is non-nil.
type SearchResult struct {
	Students  []PersonSummary `json:"students"`
	Teachers  []PersonSummary `json:"teachers"`
	Parents   []PersonSummary `json:"parents"`
	Offerings []OfferingView  `json:"offerings"`
}

// EmptySearchResult returns a result with four empty lists.
func EmptySearchResult() SearchResult {
	return SearchResult{
		Students:  []PersonSummary{},
		Teachers:  []PersonSummary{},
		Parents:   []PersonSummary{},
		Offerings: []OfferingView{},
	}
}
