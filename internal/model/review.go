package model

import "time"

type Review struct {
	ReviewNo   int64
	LoginID    string
	ContentsID int64
	Rating     int
	Text       string
	Spoiler    bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ReviewPatch holds the fields a partial update supplies; nil means untouched.
type ReviewPatch struct {
	Rating  *int
	Text    *string
	Spoiler *bool
}

func (p ReviewPatch) IsEmpty() bool {
	return p.Rating == nil && p.Text == nil && p.Spoiler == nil
}
