package ingest

import (
	"encoding/csv"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/Kirankkt/Construction-Scheduler-2/core/model"
)

var dayColPattern = regexp.MustCompile(`(?i)^Day\s*(\d+)$`)

// Major section anchors (top-level areas).
var majorSectionAnchors = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^Outside$`),
	regexp.MustCompile(`(?i)^Ground\s*Floor$`),
	regexp.MustCompile(`(?i)^(?:1st\s*Floor|First\s*Floor)$`),
	regexp.MustCompile(`(?i)^Roof$`),
}

// Discipline anchors (global trade tags).
var disciplineAnchors = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^Waste\s*Removal$`),
	regexp.MustCompile(`(?i)^Termite\s*Treatment$`),
	regexp.MustCompile(`(?i)^Building\s*Exterior$`),
	regexp.MustCompile(`(?i)^Staffing\s*Needed$`),
	regexp.MustCompile(`(?i)^Demolition$`),
	regexp.MustCompile(`(?i)^Civil$`),
	regexp.MustCompile(`(?i)^Electrical$`),
	regexp.MustCompile(`(?i)^Plumbing$`),
	regexp.MustCompile(`(?i)^Tiling$`),
	regexp.MustCompile(`(?i)^Painting$`),
	regexp.MustCompile(`(?i)^Carpentry$`),
}

var crewCategoryPattern = regexp.MustCompile(`^\s*(\d+)(?:\.\d+)?\s*$`)
var commaSpacePattern = regexp.MustCompile(`\s+,`)

// Options control CSV parsing.
type Options struct {
	// AutoChain links tasks inside each (section, subsection) group into a
	// sequential dependency chain by ascending planned day.
	AutoChain bool
}

// Result is a parsed working set plus non-fatal structure warnings.
type Result struct {
	BatchID  string
	Tasks    []model.Task
	Warnings []string
}

// dayTriplet binds a Day column to its time and labour columns. A negative
// index means the column is absent.
type dayTriplet struct {
	dayCol    int
	timeCol   int
	labourCol int
	dayNum    int
}

func matchesAny(label string, patterns []*regexp.Regexp) bool {
	label = strings.TrimSpace(label)
	if label == "" {
		return false
	}
	for _, p := range patterns {
		if p.MatchString(label) {
			return true
		}
	}
	return false
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// detectDayTriplets finds each "Day N" column and its time/labour columns.
// The canonical layout names them "Time (hours)" and "Labor (workers)"; when
// those are missing the two physical columns after the day column serve as
// fallback, provided they are not themselves day columns.
func detectDayTriplets(header []string) []dayTriplet {
	type dayCol struct {
		idx int
		num int
	}
	var days []dayCol
	for i, c := range header {
		if m := dayColPattern.FindStringSubmatch(strings.TrimSpace(c)); m != nil {
			n, _ := strconv.Atoi(m[1])
			days = append(days, dayCol{idx: i, num: n})
		}
	}
	sort.SliceStable(days, func(i, j int) bool { return days[i].num < days[j].num })

	// The canonical names repeat per day; the k-th duplicate carries a
	// ".k" suffix in exports.
	byName := map[string]int{}
	seen := map[string]int{}
	for i, c := range header {
		name := strings.TrimSpace(c)
		if n, ok := seen[name]; ok {
			seen[name] = n + 1
			name = fmt.Sprintf("%s.%d", name, n)
		} else {
			seen[name] = 1
		}
		byName[name] = i
	}

	triplets := make([]dayTriplet, 0, len(days))
	for ordinal, d := range days {
		suffix := ""
		if ordinal > 0 {
			suffix = fmt.Sprintf(".%d", ordinal)
		}
		timeCol, timeOK := byName["Time (hours)"+suffix]
		labourCol, labourOK := byName["Labor (workers)"+suffix]
		if !timeOK {
			timeCol = -1
			if next := d.idx + 1; next < len(header) && !dayColPattern.MatchString(strings.TrimSpace(header[next])) {
				timeCol = next
			}
		}
		if !labourOK {
			labourCol = -1
			if next := d.idx + 2; next < len(header) && !dayColPattern.MatchString(strings.TrimSpace(header[next])) {
				labourCol = next
			}
		}
		triplets = append(triplets, dayTriplet{dayCol: d.idx, timeCol: timeCol, labourCol: labourCol, dayNum: d.num})
	}
	return triplets
}

// isSectionHeader reports whether the row carries no day, time or labour
// values at all.
func isSectionHeader(row []string, triplets []dayTriplet) bool {
	for _, tr := range triplets {
		if cell(row, tr.dayCol) != "" || cell(row, tr.timeCol) != "" || cell(row, tr.labourCol) != "" {
			return false
		}
	}
	return true
}

// ParseCSV reads a wide plan export into flat tasks. Missing durations stay
// absent (milestones); nothing is imputed.
func ParseCSV(path string, opts Options) (Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return Result{}, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return Result{}, fmt.Errorf("read csv: %w", err)
	}

	res := Result{BatchID: uuid.NewString()}
	if len(rows) == 0 {
		res.Warnings = append(res.Warnings, "CSV file is empty.")
		return res, nil
	}
	header := rows[0]
	triplets := detectDayTriplets(header)
	if len(triplets) == 0 {
		res.Warnings = append(res.Warnings, "No 'Day N' columns found. Please verify the CSV structure.")
		return res, nil
	}

	var (
		currentSection    string
		currentDiscipline string
		counter           int
	)
	for _, row := range rows[1:] {
		label := cell(row, 0)

		// Explicit anchors have priority.
		if matchesAny(label, majorSectionAnchors) {
			currentSection = label
			currentDiscipline = ""
			continue
		}
		if matchesAny(label, disciplineAnchors) {
			currentDiscipline = label
			continue
		}
		// Rows that look like bare headers are skipped rather than
		// promoted to sections; promoting them proved noisy.
		if isSectionHeader(row, triplets) {
			continue
		}

		subsection := label
		for _, tr := range triplets {
			name := cell(row, tr.dayCol)
			if name == "" {
				continue
			}
			name = strings.TrimRight(strings.TrimSpace(commaSpacePattern.ReplaceAllString(name, ",")), ",")

			var duration *float64
			if raw := cell(row, tr.timeCol); raw != "" {
				if v, err := strconv.ParseFloat(raw, 64); err == nil {
					duration = &v
				}
			}

			var crewCode, crewCat string
			if labour := cell(row, tr.labourCol); labour != "" {
				crewCode = labour
				if m := crewCategoryPattern.FindStringSubmatch(labour); m != nil {
					crewCat = m[1]
				}
			}

			res.Tasks = append(res.Tasks, model.Task{
				ID:            fmt.Sprintf("T%04d", counter),
				Section:       currentSection,
				Subsection:    subsection,
				Discipline:    currentDiscipline,
				Name:          name,
				PlannedDay:    tr.dayNum,
				DurationHours: duration,
				CrewCode:      crewCode,
				CrewCategory:  crewCat,
			})
			counter++
		}
	}

	if opts.AutoChain {
		autoChain(res.Tasks)
	}
	return res, nil
}

// autoChain links tasks within each (section, subsection) group into a
// sequential chain ordered by (planned day, name).
func autoChain(tasks []model.Task) {
	type groupKey struct{ section, subsection string }
	groups := map[groupKey][]int{}
	var order []groupKey
	for i, t := range tasks {
		k := groupKey{t.Section, t.Subsection}
		if _, ok := groups[k]; !ok {
			order = append(order, k)
		}
		groups[k] = append(groups[k], i)
	}
	for _, k := range order {
		idxs := groups[k]
		sort.SliceStable(idxs, func(a, b int) bool {
			ta, tb := tasks[idxs[a]], tasks[idxs[b]]
			if ta.PlannedDay != tb.PlannedDay {
				return ta.PlannedDay < tb.PlannedDay
			}
			return ta.Name < tb.Name
		})
		for i := 1; i < len(idxs); i++ {
			cur := &tasks[idxs[i]]
			cur.Dependencies = append(cur.Dependencies, tasks[idxs[i-1]].ID)
		}
	}
}
