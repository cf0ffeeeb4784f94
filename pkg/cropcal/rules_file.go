package cropcal

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"

	"krishi/entities"
)

// LoadRulesFile reads a schedule rule table from .csv, .xlsx or .yaml/.yml.
// Tabular files need a header row with crop, activity and days columns.
func LoadRulesFile(path string) ([]entities.ScheduleRule, error) {
	var (
		rules []entities.ScheduleRule
		err   error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		rules, err = loadRulesCSV(path)
	case ".xlsx":
		rules, err = loadRulesXLSX(path)
	case ".yaml", ".yml":
		rules, err = loadRulesYAML(path)
	default:
		return nil, fmt.Errorf("unsupported rules file %q", path)
	}
	if err != nil {
		return nil, err
	}
	if len(rules) == 0 {
		return nil, errors.New("no schedule rules loaded")
	}
	return rules, nil
}

func loadRulesCSV(path string) ([]entities.ScheduleRule, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = -1
	var rows [][]string
	for {
		rec, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}
		rows = append(rows, rec)
	}
	return rulesFromRows(rows)
}

func loadRulesXLSX(path string) ([]entities.ScheduleRule, error) {
	x, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer x.Close()

	sheets := x.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}
	rows, err := x.GetRows(sheets[0])
	if err != nil {
		return nil, err
	}
	return rulesFromRows(rows)
}

type yamlRules struct {
	Crops []struct {
		Name       string `yaml:"name"`
		Activities []struct {
			Activity        string `yaml:"activity"`
			DaysAfterSowing *int   `yaml:"days_after_sowing"`
		} `yaml:"activities"`
	} `yaml:"crops"`
}

func loadRulesYAML(path string) ([]entities.ScheduleRule, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc yamlRules
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	var out []entities.ScheduleRule
	for _, c := range doc.Crops {
		for _, a := range c.Activities {
			if a.DaysAfterSowing == nil {
				return nil, fmt.Errorf("%s/%s: days_after_sowing is required", c.Name, a.Activity)
			}
			r := entities.ScheduleRule{CropName: strings.TrimSpace(c.Name), Activity: strings.TrimSpace(a.Activity), DaysAfterSowing: *a.DaysAfterSowing}
			if err := validateRule(r); err != nil {
				return nil, err
			}
			out = append(out, r)
		}
	}
	return out, nil
}

// rulesFromRows maps a header row plus data rows onto rules. Header names are
// matched loosely (case, spaces, dashes and underscores are ignored).
func rulesFromRows(rows [][]string) ([]entities.ScheduleRule, error) {
	if len(rows) == 0 {
		return nil, errors.New("rules table is empty")
	}
	norm := func(s string) string {
		s = strings.TrimSpace(s)
		s = strings.TrimPrefix(s, "\uFEFF") // BOM
		s = strings.ToLower(s)
		s = strings.ReplaceAll(s, " ", "")
		s = strings.ReplaceAll(s, "-", "")
		s = strings.ReplaceAll(s, "_", "")
		return s
	}
	hmap := map[string]int{}
	for i, h := range rows[0] {
		hmap[norm(h)] = i
	}
	findAny := func(keys ...string) int {
		for _, k := range keys {
			if idx, ok := hmap[norm(k)]; ok {
				return idx
			}
		}
		return -1
	}

	cCrop := findAny("crop_name", "crop")
	cAct := findAny("activity", "task")
	cDays := findAny("days_after_sowing", "days", "offset")
	if cCrop == -1 || cAct == -1 || cDays == -1 {
		return nil, fmt.Errorf("rules table missing required columns. Found headers: %v\nNeed: crop_name, activity, days_after_sowing", rows[0])
	}

	var out []entities.ScheduleRule
	for i, rec := range rows[1:] {
		get := func(idx int) string {
			if idx < 0 || idx >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[idx])
		}
		if get(cCrop) == "" && get(cAct) == "" && get(cDays) == "" {
			continue
		}
		days, err := strconv.Atoi(get(cDays))
		if err != nil {
			return nil, fmt.Errorf("row %d: days_after_sowing %q is not a number", i+2, get(cDays))
		}
		r := entities.ScheduleRule{CropName: get(cCrop), Activity: get(cAct), DaysAfterSowing: days}
		if err := validateRule(r); err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		out = append(out, r)
	}
	return out, nil
}

func validateRule(r entities.ScheduleRule) error {
	switch {
	case r.CropName == "":
		return errors.New("crop name is required")
	case r.Activity == "":
		return errors.New("activity is required")
	case r.DaysAfterSowing < 0:
		return fmt.Errorf("%s/%s: days_after_sowing must not be negative", r.CropName, r.Activity)
	}
	return nil
}
