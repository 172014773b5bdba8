// Package projection derives the display-only fields of a payment record
// (month name, due date, overdue flag). Nothing here is persisted: the values
// depend on the current instant and are recomputed on every read.
package projection

import (
	"time"

	"tuition_backend/internals/constants"
)

type Overdue struct {
	MonthName string
	DueDate   time.Time
	IsOverdue bool
}

var monthNames = [...]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// MonthName returns the English calendar name for month 1..12, "" otherwise.
func MonthName(month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	return monthNames[month-1]
}

// DueDate is midnight of the due day of the billing month in loc.
func DueDate(year, month int, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(year, time.Month(month), constants.DueDayOfMonth, 0, 0, 0, 0, loc)
}

// IsOverdue: unpaid and the due date is strictly before now.
func IsOverdue(dueDate time.Time, paid bool, now time.Time) bool {
	if paid {
		return false
	}
	return dueDate.Before(now)
}

// Project computes all derived fields. The due date is anchored in now's location.
func Project(year, month int, paid bool, now time.Time) Overdue {
	due := DueDate(year, month, now.Location())
	return Overdue{
		MonthName: MonthName(month),
		DueDate:   due,
		IsOverdue: IsOverdue(due, paid, now),
	}
}
