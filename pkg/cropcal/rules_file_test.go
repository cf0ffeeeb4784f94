package cropcal

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"krishi/entities"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestLoadRulesFile_CSV(t *testing.T) {
	p := writeFile(t, "rules.csv", "\uFEFFCrop Name,Activity,Days-After-Sowing\nRice,First Weeding,20\n,,\nRice,Harvesting,120\n")

	rules, err := LoadRulesFile(p)
	require.NoError(t, err)
	assert.Equal(t, []entities.ScheduleRule{
		{CropName: "Rice", Activity: "First Weeding", DaysAfterSowing: 20},
		{CropName: "Rice", Activity: "Harvesting", DaysAfterSowing: 120},
	}, rules)
}

func TestLoadRulesFile_CSVRejectsBadOffsets(t *testing.T) {
	_, err := LoadRulesFile(writeFile(t, "rules.csv", "crop,activity,days\nRice,First Weeding,twenty\n"))
	assert.ErrorContains(t, err, "not a number")

	_, err = LoadRulesFile(writeFile(t, "neg.csv", "crop,activity,days\nRice,First Weeding,-1\n"))
	assert.ErrorContains(t, err, "must not be negative")

	_, err = LoadRulesFile(writeFile(t, "cols.csv", "crop,when\nRice,20\n"))
	assert.ErrorContains(t, err, "missing required columns")
}

func TestLoadRulesFile_YAML(t *testing.T) {
	p := writeFile(t, "rules.yaml", `
crops:
  - name: Tomato
    activities:
      - activity: Staking/Support
        days_after_sowing: 25
      - activity: Harvesting Begins
        days_after_sowing: 70
  - name: Potato
    activities:
      - activity: First Earthing Up
        days_after_sowing: 0
`)
	rules, err := LoadRulesFile(p)
	require.NoError(t, err)
	require.Len(t, rules, 3)
	assert.Equal(t, "Tomato", rules[0].CropName)
	assert.Equal(t, 70, rules[1].DaysAfterSowing)
	assert.Equal(t, entities.ScheduleRule{CropName: "Potato", Activity: "First Earthing Up", DaysAfterSowing: 0}, rules[2])
}

func TestLoadRulesFile_YAMLRequiresOffset(t *testing.T) {
	p := writeFile(t, "rules.yml", "crops:\n  - name: Rice\n    activities:\n      - activity: Weeding\n")
	_, err := LoadRulesFile(p)
	assert.ErrorContains(t, err, "days_after_sowing is required")
}

func TestLoadRulesFile_XLSX(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"crop_name", "activity", "days_after_sowing"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]interface{}{"Banana", "De-suckering", 150}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A3", &[]interface{}{"Banana", "Harvesting Begins", 300}))
	p := filepath.Join(t.TempDir(), "rules.xlsx")
	require.NoError(t, f.SaveAs(p))
	require.NoError(t, f.Close())

	rules, err := LoadRulesFile(p)
	require.NoError(t, err)
	assert.Equal(t, []entities.ScheduleRule{
		{CropName: "Banana", Activity: "De-suckering", DaysAfterSowing: 150},
		{CropName: "Banana", Activity: "Harvesting Begins", DaysAfterSowing: 300},
	}, rules)
}

func TestLoadRulesFile_UnsupportedOrEmpty(t *testing.T) {
	_, err := LoadRulesFile(writeFile(t, "rules.txt", "Rice"))
	assert.ErrorContains(t, err, "unsupported")

	_, err = LoadRulesFile(writeFile(t, "empty.csv", "crop,activity,days\n"))
	assert.ErrorContains(t, err, "no schedule rules")
}

func TestDefaultRules(t *testing.T) {
	byCrop := RulesByCrop(DefaultRules())
	assert.Len(t, byCrop, 4)
	for crop, rules := range byCrop {
		assert.Len(t, rules, 3, crop)
		for _, r := range rules {
			assert.NoError(t, validateRule(r))
		}
	}
}
