package utils

import "time"

// DayLayout is the calendar-day key used by every log table.
const DayLayout = "2006-01-02"

func ParseDay(s string) (time.Time, error) {
	return time.Parse(DayLayout, s)
}

func FormatDay(t time.Time) string {
	return t.Format(DayLayout)
}

func Today() string {
	return time.Now().Format(DayLayout)
}

// AddDays shifts a valid day key by n calendar days.
func AddDays(day string, n int) (string, error) {
	t, err := ParseDay(day)
	if err != nil {
		return "", err
	}
	return FormatDay(t.AddDate(0, 0, n)), nil
}

// DayRange returns count consecutive day keys starting at start, oldest first.
func DayRange(start string, count int) ([]string, error) {
	t, err := ParseDay(start)
	if err != nil {
		return nil, err
	}
	if count <= 0 {
		return []string{}, nil
	}
	days := make([]string, 0, count)
	for i := 0; i < count; i++ {
		days = append(days, FormatDay(t.AddDate(0, 0, i)))
	}
	return days, nil
}
