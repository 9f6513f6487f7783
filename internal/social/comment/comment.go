package comment

import "time"

// Comment is a reply to a review. It carries no score.
type Comment struct {
	ID       int64     `json:"id"`
	ReviewID int64     `json:"-"`
	AuthorID int64     `json:"-"`
	Author   string    `json:"author"`
	Text     string    `json:"text"`
	PubDate  time.Time `json:"pub_date"`
}

// Input is the write payload for creating or patching a comment. The author
// is always taken from the authenticated identity, never from the body.
type Input struct {
	Text *string `json:"text"`
}

// Field names used in validation errors.
const (
	FieldText = "text"
)
