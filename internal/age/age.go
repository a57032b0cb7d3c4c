// Package age computes the age between a date of birth and today in whole
// years, months and days.
package age

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"
)

var (
	ErrEmpty  = errors.New("date of birth is empty")
	ErrRange  = errors.New("day or month out of range")
	ErrFormat = errors.New("unrecognised date format")
	ErrFuture = errors.New("date of birth is in the future")
)

var messages = map[error]string{
	ErrEmpty:  "Select a valid date.",
	ErrRange:  "Enter in dd/mm/yyyy.",
	ErrFormat: "Enter DOB as dd/mm/yyyy.",
	ErrFuture: "Date is in the future.",
}

// Message is the text a pane shows for an error from ParseDOB or Between.
func Message(err error) string {
	for target, msg := range messages {
		if errors.Is(err, target) {
			return msg
		}
	}
	return err.Error()
}

var (
	slashDate = regexp.MustCompile(`^\s*(\d{1,2})/(\d{1,2})/(\d{4})\s*$`)
	dashDate  = regexp.MustCompile(`^\s*(\d{4})-(\d{1,2})-(\d{1,2})\s*$`)
)

// ParseDOB accepts dd/mm/yyyy or yyyy-mm-dd. Day and month are range checked
// for the slash form only; days past the end of a month roll into the next
// one, as a calendar date constructor does.
func ParseDOB(text string) (time.Time, error) {
	if text == "" {
		return time.Time{}, ErrEmpty
	}
	if m := slashDate.FindStringSubmatch(text); m != nil {
		d, mo, y := atoi(m[1]), atoi(m[2]), atoi(m[3])
		if mo < 1 || mo > 12 || d < 1 || d > 31 {
			return time.Time{}, ErrRange
		}
		return date(y, mo, d), nil
	}
	if m := dashDate.FindStringSubmatch(text); m != nil {
		return date(atoi(m[1]), atoi(m[2]), atoi(m[3])), nil
	}
	return time.Time{}, ErrFormat
}

func atoi(s string) int {
	// the patterns only admit short digit runs
	n, _ := strconv.Atoi(s)
	return n
}

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

// Age is a calendar difference.
type Age struct {
	Years, Months, Days int
}

func (a Age) String() string {
	return fmt.Sprintf("%d years, %d months, %d days", a.Years, a.Months, a.Days)
}

// Between returns the age on today of someone born on dob. Both are calendar
// dates; their clock and zone are ignored. A negative day difference borrows
// the length of the month before today's month, counting a birth day past
// the end of that month as its last day.
func Between(dob, today time.Time) (Age, error) {
	by, bm, bd := dob.Date()
	ty, tm, td := today.Date()
	dob = date(by, int(bm), bd)
	today = date(ty, int(tm), td)
	if dob.After(today) {
		return Age{}, ErrFuture
	}

	years := ty - by
	months := int(tm) - int(bm)
	days := td - bd
	if days < 0 {
		// day 0 of this month is the last day of the previous one
		prev := date(ty, int(tm), 0).Day()
		days = td + prev - min(bd, prev)
		months--
	}
	if months < 0 {
		months += 12
		years--
	}
	return Age{Years: years, Months: months, Days: days}, nil
}
