package domain

import (
	"strings"
	"time"
)

// ScheduleSlot represents a time slot of the open-house schedule
type ScheduleSlot struct {
	ID          int64
	SiteID      int64
	StartsAt    time.Time
	Authorizeds []string // коды категорий, допущенных на слот; пустой список = без ограничений
	CreatedAt   time.Time
}

// IsRestricted returns true if the slot is limited to specific registrant categories
func (s *ScheduleSlot) IsRestricted() bool {
	return len(s.Authorizeds) > 0
}

// Admits reports whether a registrant with the given category code may book this slot
// Authorizeds entries are code prefixes: a slot authorizing "AU" admits "AU02"
func (s *ScheduleSlot) Admits(categoryCode string) bool {
	if !s.IsRestricted() {
		return true
	}
	if categoryCode == "" {
		return false
	}
	for _, prefix := range s.Authorizeds {
		if strings.HasPrefix(categoryCode, prefix) {
			return true
		}
	}
	return false
}

// Day returns the calendar day of the slot (midnight, slot's location)
func (s *ScheduleSlot) Day() time.Time {
	y, m, d := s.StartsAt.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, s.StartsAt.Location())
}
