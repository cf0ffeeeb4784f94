package cropcal

import (
	"fmt"

	"cloud.google.com/go/civil"

	"krishi/entities"
)

// RuleLookup returns the ordered schedule rules of a crop.
type RuleLookup func(crop string) []entities.ScheduleRule

// Reminder is one activity that falls on the day after the scan date.
type Reminder struct {
	FarmerPhone string     `json:"farmer_phone"`
	Crop        string     `json:"crop"`
	Activity    string     `json:"activity"`
	Date        civil.Date `json:"date"`
}

func (r Reminder) Message() string {
	return fmt.Sprintf("REMINDER for farmer %s: Tomorrow is the day for '%s' on your %s crop.",
		r.FarmerPhone, r.Activity, r.Crop)
}

// SkippedEvent is a tracked crop whose stored sowing date could not be read.
type SkippedEvent struct {
	Event entities.CropEvent
	Err   error
}

type ScanResult struct {
	Tomorrow  civil.Date
	Reminders []Reminder
	Skipped   []SkippedEvent
}

// Scan projects every event and keeps the activities dated exactly
// today+1. Each matching (event, rule) pair yields its own reminder, and the
// result depends only on the arguments.
func Scan(today civil.Date, events []entities.CropEvent, lookup RuleLookup) ScanResult {
	res := ScanResult{Tomorrow: today.AddDays(1), Reminders: []Reminder{}}
	for _, ev := range events {
		sowing, err := ParseSowingDate(ev.SowingDate)
		if err != nil {
			res.Skipped = append(res.Skipped, SkippedEvent{Event: ev, Err: err})
			continue
		}
		for _, act := range Project(sowing, lookup(ev.Crop)) {
			if act.Date != res.Tomorrow {
				continue
			}
			res.Reminders = append(res.Reminders, Reminder{
				FarmerPhone: ev.FarmerPhone,
				Crop:        ev.Crop,
				Activity:    act.Name,
				Date:        act.Date,
			})
		}
	}
	return res
}

// RulesByCrop groups rules per crop without reordering them.
func RulesByCrop(rules []entities.ScheduleRule) map[string][]entities.ScheduleRule {
	m := map[string][]entities.ScheduleRule{}
	for _, r := range rules {
		m[r.CropName] = append(m[r.CropName], r)
	}
	return m
}

// MapLookup adapts a grouped rule table to a RuleLookup.
func MapLookup(m map[string][]entities.ScheduleRule) RuleLookup {
	return func(crop string) []entities.ScheduleRule { return m[crop] }
}
