package application

import "time"

func intPtr(v int) *int              { return &v }
func boolPtr(v bool) *bool           { return &v }
func strPtr(v string) *string        { return &v }
func floatPtr(v float64) *float64    { return &v }
func timePtr(v time.Time) *time.Time { return &v }

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
