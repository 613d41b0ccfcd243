package domain

import "time"

// Place represents a visitable room/stand of the open-house event
type Place struct {
	ID        int64
	SiteID    int64
	Name      string
	Gauge     int // максимальная вместимость (человек)
	SortOrder int
	CreatedAt time.Time
}
