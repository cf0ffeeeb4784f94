package cropcal

import "krishi/entities"

// DefaultRules is the rule table seeded into an empty store.
func DefaultRules() []entities.ScheduleRule {
	rows := []struct {
		crop, activity string
		days           int
	}{
		{"Rice", "First Weeding", 20}, {"Rice", "Fertilizer Application", 35}, {"Rice", "Harvesting", 120},
		{"Tomato", "Staking/Support", 25}, {"Tomato", "First Fertilizer", 30}, {"Tomato", "Harvesting Begins", 70},
		{"Banana", "Fertilizer (Month 2)", 60}, {"Banana", "De-suckering", 150}, {"Banana", "Harvesting Begins", 300},
		{"Potato", "First Earthing Up", 25}, {"Potato", "Fertilizer Application", 30}, {"Potato", "Harvesting", 90},
	}
	out := make([]entities.ScheduleRule, 0, len(rows))
	for _, r := range rows {
		out = append(out, entities.ScheduleRule{CropName: r.crop, Activity: r.activity, DaysAfterSowing: r.days})
	}
	return out
}
