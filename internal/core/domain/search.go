package domain

// SearchHighlight carries server-marked excerpts for a search hit.
// Matching terms are wrapped in <mark> tags by the server.
type SearchHighlight struct {
	// Title is the page title with the match marked, or the plain title.
	Title string

	// Content is a short excerpt of the body.
	Content string
}

// SearchResult is one hit from a text search.
type SearchResult struct {
	// Page is a summary of the matching page.
	Page Page

	// Highlight carries the marked title and excerpt.
	Highlight SearchHighlight
}
