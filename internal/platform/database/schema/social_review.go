package schema

// RefReviewTable represents the 'social.review' table
type RefReviewTable struct {
	Table    string
	ID       string
	TitleID  string
	AuthorID string
	Text     string
	Score    string
	PubDate  string
}

// RefReview is the schema definition for social.review.
// A UNIQUE(authorid, titleid) constraint backs the one-review-per-author rule.
var RefReview = RefReviewTable{
	Table:    "social.review",
	ID:       "id",
	TitleID:  "titleid",
	AuthorID: "authorid",
	Text:     "text",
	Score:    "score",
	PubDate:  "pubdate",
}

func (t RefReviewTable) Columns() []string {
	return []string{t.ID, t.TitleID, t.AuthorID, t.Text, t.Score, t.PubDate}
}
