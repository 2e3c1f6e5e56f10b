package model

import "time"

type Member struct {
	MemberID  string
	Nickname  string
	Point     int
	CreatedAt time.Time
}
