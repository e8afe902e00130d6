package models

import "gorm.io/gorm"

// DeliverySlot is a schedulable weekend delivery window. The seeded matrix is
// 2 days x 3 windows; (day_of_week, time_slot) is unique.
type DeliverySlot struct {
	gorm.Model
	DayOfWeek string `gorm:"size:10;not null;uniqueIndex:idx_slot_day_time" json:"day_of_week"` // "Saturday" | "Sunday"
	TimeSlot  string `gorm:"size:20;not null;uniqueIndex:idx_slot_day_time" json:"time_slot"`   // e.g. "10:00-14:00"
}

// Description is the human-readable label, e.g. "Saturday 10:00-14:00".
// Orders snapshot this string so later slot edits never rewrite history.
func (s DeliverySlot) Description() string {
	return s.DayOfWeek + " " + s.TimeSlot
}
