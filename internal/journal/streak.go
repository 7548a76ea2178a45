package journal

import (
	"sort"
	"time"
)

// DateLayout is the ISO calendar-date format entries are keyed by.
const DateLayout = "2006-01-02"

// StreakInfo holds current and longest streak values.
type StreakInfo struct {
	Current int `json:"current"`
	Longest int `json:"longest"`
}

// ComputeStreak returns the number of consecutive days, ending today or
// yesterday, on which an entry exists. dates are "YYYY-MM-DD" strings in any
// order; strings that do not parse are ignored.
//
// The current streak is not broken if the user wrote yesterday but not yet
// today (grace day). Duplicate dates count once. today is the reference
// instant; its Location decides which calendar day "today" is.
func ComputeStreak(dates []string, today time.Time) int {
	days := dayNumbers(dates)
	if len(days) == 0 {
		return 0
	}
	sort.Sort(sort.Reverse(sort.IntSlice(days)))

	if civilDay(today)-days[0] > 1 {
		return 0
	}

	current := 1
	for i := 0; i+1 < len(days); i++ {
		gap := days[i] - days[i+1]
		if gap == 0 {
			continue
		}
		if gap > 1 {
			break
		}
		current++
	}
	return current
}

// LongestStreak returns the longest run of consecutive days in dates.
func LongestStreak(dates []string) int {
	days := dayNumbers(dates)
	if len(days) == 0 {
		return 0
	}
	sort.Ints(days)

	longest, run := 1, 1
	for i := 1; i < len(days); i++ {
		switch days[i] - days[i-1] {
		case 0:
		case 1:
			run++
			if run > longest {
				longest = run
			}
		default:
			run = 1
		}
	}
	return longest
}

// Summarize computes both streak values.
func Summarize(dates []string, today time.Time) StreakInfo {
	info := StreakInfo{
		Current: ComputeStreak(dates, today),
		Longest: LongestStreak(dates),
	}
	if info.Current > info.Longest {
		info.Longest = info.Current
	}
	return info
}

// dayNumbers maps each parseable date to its day count since the Unix epoch.
// Dates carry no time of day, so counting whole civil days gives the same
// gaps as comparing local midnights, without DST hours leaking in.
func dayNumbers(dates []string) []int {
	days := make([]int, 0, len(dates))
	for _, d := range dates {
		t, err := time.Parse(DateLayout, d)
		if err != nil {
			continue
		}
		days = append(days, civilDay(t))
	}
	return days
}

func civilDay(t time.Time) int {
	y, m, d := t.Date()
	return int(time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / 86400)
}
