package review

import "time"

// Review is a single user's opinion of a title with a 1..10 score.
// Each user holds at most one review per title; the database enforces that
// with a unique (author, title) pair.
type Review struct {
	ID       int64     `json:"id"`
	TitleID  int64     `json:"-"`
	AuthorID int64     `json:"-"`
	Author   string    `json:"author"`
	Text     string    `json:"text"`
	Score    int       `json:"score"`
	PubDate  time.Time `json:"pub_date"`
}

// Input is the write payload for creating or patching a review. The author
// is always taken from the authenticated identity, never from the body.
type Input struct {
	Text  *string `json:"text"`
	Score *int    `json:"score"`
}

// Field names used in validation errors.
const (
	FieldText  = "text"
	FieldScore = "score"
)

// Score bounds.
const (
	MinScore = 1
	MaxScore = 10
)
