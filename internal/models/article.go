// Package models defines data structures shared by the parser and the extractor.
package models

// Article represents one parsed Markdown article.
type Article struct {
	Filename string   `json:"filename"`
	Title    string   `json:"title"`
	Tags     []string `json:"tags"`
	Body     string   `json:"body"`
}

// Corpus is the ordered collection of articles produced by a single run.
type Corpus []Article

// Titles returns the article titles in corpus order.
func (c Corpus) Titles() []string {
	titles := make([]string, 0, len(c))
	for _, a := range c {
		titles = append(titles, a.Title)
	}

	return titles
}

// TagCount returns the total number of tags across all articles.
func (c Corpus) TagCount() int {
	total := 0
	for _, a := range c {
		total += len(a.Tags)
	}

	return total
}
