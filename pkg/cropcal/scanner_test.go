package cropcal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"krishi/entities"
)

func event(phone, crop, sown string) entities.CropEvent {
	return entities.CropEvent{FarmerPhone: phone, Crop: crop, SowingDate: sown}
}

func TestScan_FiresOnlyForTomorrow(t *testing.T) {
	lookup := MapLookup(map[string][]entities.ScheduleRule{
		"Rice": {rule("Rice", "Due Today", 30), rule("Rice", "Due Tomorrow", 31), rule("Rice", "Due Later", 32)},
	})

	res := Scan(date(2024, 3, 1), []entities.CropEvent{event("9000000001", "Rice", "2024-01-31")}, lookup)

	assert.Equal(t, date(2024, 3, 2), res.Tomorrow)
	require.Len(t, res.Reminders, 1)
	assert.Equal(t, Reminder{FarmerPhone: "9000000001", Crop: "Rice", Activity: "Due Tomorrow", Date: date(2024, 3, 2)}, res.Reminders[0])
	assert.Empty(t, res.Skipped)
}

func TestScan_OneReminderPerMatchingRule(t *testing.T) {
	lookup := MapLookup(map[string][]entities.ScheduleRule{
		"Rice":   {rule("Rice", "First Weeding", 20)},
		"Tomato": {rule("Tomato", "Staking/Support", 25), rule("Tomato", "Check Pests", 25)},
	})
	events := []entities.CropEvent{
		event("9000000001", "Rice", "2024-05-12"),
		event("9000000001", "Tomato", "2024-05-07"),
		event("9000000002", "Rice", "2024-05-01"),
	}

	res := Scan(date(2024, 5, 31), events, lookup)

	require.Len(t, res.Reminders, 3)
	var got []string
	for _, r := range res.Reminders {
		got = append(got, r.FarmerPhone+"/"+r.Crop+"/"+r.Activity)
	}
	assert.Equal(t, []string{
		"9000000001/Rice/First Weeding",
		"9000000001/Tomato/Staking/Support",
		"9000000001/Tomato/Check Pests",
	}, got)
}

func TestScan_IsRepeatable(t *testing.T) {
	lookup := MapLookup(RulesByCrop(DefaultRules()))
	events := []entities.CropEvent{event("9000000001", "Potato", "2024-02-05"), event("9000000003", "Rice", "2024-02-15")}

	first := Scan(date(2024, 3, 5), events, lookup)
	second := Scan(date(2024, 3, 5), events, lookup)

	assert.Equal(t, first, second)
	require.Len(t, first.Reminders, 2)
	assert.Equal(t, "Fertilizer Application", first.Reminders[0].Activity)
	assert.Equal(t, "First Weeding", first.Reminders[1].Activity)
}

func TestScan_SkipsUnreadableSowingDate(t *testing.T) {
	lookup := MapLookup(RulesByCrop(DefaultRules()))
	res := Scan(date(2024, 3, 5), []entities.CropEvent{event("9000000001", "Rice", "not-a-date")}, lookup)

	assert.Empty(t, res.Reminders)
	require.Len(t, res.Skipped, 1)
	assert.Equal(t, "9000000001", res.Skipped[0].Event.FarmerPhone)
}

func TestScan_UnknownCropHasNoRules(t *testing.T) {
	lookup := MapLookup(RulesByCrop(DefaultRules()))
	res := Scan(date(2024, 3, 5), []entities.CropEvent{event("9000000001", "Coconut", "2024-03-05")}, lookup)
	assert.Empty(t, res.Reminders)
	assert.Empty(t, res.Skipped)
}

func TestReminder_Message(t *testing.T) {
	r := Reminder{FarmerPhone: "9000000001", Crop: "Rice", Activity: "First Weeding"}
	assert.Equal(t, "REMINDER for farmer 9000000001: Tomorrow is the day for 'First Weeding' on your Rice crop.", r.Message())
}

func TestRulesByCrop_PreservesOrder(t *testing.T) {
	m := RulesByCrop([]entities.ScheduleRule{rule("Rice", "B", 35), rule("Tomato", "X", 1), rule("Rice", "A", 20)})
	require.Len(t, m["Rice"], 2)
	assert.Equal(t, "B", m["Rice"][0].Activity)
	assert.Equal(t, "A", m["Rice"][1].Activity)
}
