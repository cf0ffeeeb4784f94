// Package cropcal turns crop schedule rules into calendar dates and finds the
// activities that are due tomorrow.
package cropcal

import (
	"fmt"
	"strings"

	"cloud.google.com/go/civil"

	"krishi/entities"
)

// Activity is a schedule rule resolved against a sowing date.
type Activity struct {
	Name string     `json:"activity"`
	Date civil.Date `json:"date"`
}

// Project resolves every rule to sowing + offset days. The output keeps the
// order of rules; it is not sorted by date.
func Project(sowing civil.Date, rules []entities.ScheduleRule) []Activity {
	out := make([]Activity, 0, len(rules))
	for _, r := range rules {
		out = append(out, Activity{Name: r.Activity, Date: sowing.AddDays(r.DaysAfterSowing)})
	}
	return out
}

// ParseSowingDate parses the YYYY-MM-DD form used by the crop tracking store.
func ParseSowingDate(s string) (civil.Date, error) {
	d, err := civil.ParseDate(strings.TrimSpace(s))
	if err != nil {
		return civil.Date{}, fmt.Errorf("parse sowing date %q: %w", s, err)
	}
	return d, nil
}
