package usecase

import (
	"fmt"
	"strings"
	"time"
)

const (
	DateLayout  = "2006-01-02"
	TimeLayout  = "15:04:05"
	MonthLayout = "2006-01"
)

var weekdayCodes = map[string]bool{
	"monday": true, "tuesday": true, "wednesday": true, "thursday": true,
	"friday": true, "saturday": true, "sunday": true,
}

func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

func AddDays(date string, n int) (string, error) {
	t, err := ParseDate(date)
	if err != nil {
		return "", err
	}
	return t.AddDate(0, 0, n).Format(DateLayout), nil
}

// DatesBetween mengembalikan semua tanggal dari start sampai end (inklusif).
func DatesBetween(start, end string) ([]string, error) {
	s, err := ParseDate(start)
	if err != nil {
		return nil, err
	}
	e, err := ParseDate(end)
	if err != nil {
		return nil, err
	}
	var dates []string
	for d := s; !d.After(e); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d.Format(DateLayout))
	}
	return dates, nil
}

// MonthOf: "2025-08-06" -> "2025-08".
func MonthOf(date string) string {
	if len(date) < 7 {
		return date
	}
	return date[:7]
}

func PreviousMonth(now time.Time) string {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return first.AddDate(0, -1, 0).Format(MonthLayout)
}

func WeekdayCode(t time.Time) string {
	return strings.ToLower(t.Weekday().String())
}

// parseClock mengubah "HH:MM" atau "HH:MM:SS" menjadi detik sejak tengah malam.
func parseClock(s string) (int, error) {
	layout := TimeLayout
	if len(s) == 5 {
		layout = "15:04"
	}
	t, err := time.Parse(layout, s)
	if err != nil {
		return 0, fmt.Errorf("jam %q tidak valid", s)
	}
	return t.Hour()*3600 + t.Minute()*60 + t.Second(), nil
}

func secondsOfDay(t time.Time) int {
	return t.Hour()*3600 + t.Minute()*60 + t.Second()
}
