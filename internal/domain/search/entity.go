package search

// Result is one related page returned by a web-search provider.
// Fields are pointers so that values missing upstream are encoded as null.
type Result struct {
	Title   *string `json:"title"`
	URL     *string `json:"url"`
	Snippet *string `json:"snippet"`
}
