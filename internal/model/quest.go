package model

import "time"

const dayKeyLayout = "20060102"

// QuestTypeReview is advanced by the server whenever a member writes a review.
const QuestTypeReview = "REVIEW"

// DayKey identifies a calendar day as YYYYMMDD. Daily quest progress resets
// implicitly because every row is keyed by it.
type DayKey string

func DayKeyOf(t time.Time) DayKey {
	return DayKey(t.Format(dayKeyLayout))
}

func (d DayKey) String() string {
	return string(d)
}

type QuestDefinition struct {
	Type   string
	Title  string
	Target int
	Reward int
}

type QuestProgress struct {
	UserID        string
	Type          string
	Day           DayKey
	CurrentCount  int
	RewardClaimed bool
	ClaimedAt     *time.Time
}

type QuestView struct {
	Type          string
	Title         string
	Target        int
	Reward        int
	CurrentCount  int
	IsDone        bool
	RewardClaimed bool
}

// QuestClaim carries everything the store needs to flip the claim flag and
// credit the reward in one transaction.
type QuestClaim struct {
	UserID string
	Type   string
	Day    DayKey
	Target int
	Reward int
}
