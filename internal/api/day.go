package api

import (
	"time"

	"finalproject_backend/internal/model"
)

// DayClock derives the quest day of a request. A nil Location means server
// local time; a nil Now means time.Now.
type DayClock struct {
	Location *time.Location
	Now      func() time.Time
}

func (d DayClock) Today() model.DayKey {
	now := time.Now
	if d.Now != nil {
		now = d.Now
	}

	t := now()
	if d.Location != nil {
		t = t.In(d.Location)
	}

	return model.DayKeyOf(t)
}
