package league

import "fmt"

// Format represents the structural variant of a league season.
type Format string

const (
	FormatRedraft Format = "redraft"
	FormatDynasty Format = "dynasty"
)

var AllFormats = map[Format]struct{}{
	FormatRedraft: {},
	FormatDynasty: {},
}

func ParseFormat(v string) (Format, error) {
	format := Format(v)
	if _, ok := AllFormats[format]; !ok {
		return "", fmt.Errorf("invalid league format %q: valid values are %s, %s", v, FormatRedraft, FormatDynasty)
	}
	return format, nil
}

// Schedule holds the fixed calendar parameters of one format.
type Schedule struct {
	Format           Format
	TeamCount        int
	RegularWeeks     []int
	PlayoffStartWeek int
	FinalWeek        int
}

var schedules = map[Format]Schedule{
	FormatRedraft: {
		Format:           FormatRedraft,
		TeamCount:        14,
		RegularWeeks:     []int{14},
		PlayoffStartWeek: 15,
		FinalWeek:        17,
	},
	FormatDynasty: {
		Format:           FormatDynasty,
		TeamCount:        10,
		RegularWeeks:     []int{10, 11, 12, 13},
		PlayoffStartWeek: 14,
		FinalWeek:        17,
	},
}

// ScheduleFor returns the calendar for a format. The zero Schedule is
// returned for unknown formats; callers validate formats at the boundary.
func ScheduleFor(format Format) Schedule {
	return schedules[format]
}

func (s Schedule) IsRegularWeek(week int) bool {
	for _, candidate := range s.RegularWeeks {
		if candidate == week {
			return true
		}
	}
	return false
}

func (s Schedule) IsPlayoffWeek(week int) bool {
	return s.PlayoffStartWeek > 0 && week >= s.PlayoffStartWeek && week <= s.FinalWeek
}

// League is one Sleeper league season served by the API.
type League struct {
	ID     string
	Name   string
	Season string
	Format Format
}

func (l League) Validate() error {
	if l.ID == "" {
		return fmt.Errorf("league id is required")
	}
	if l.Name == "" {
		return fmt.Errorf("league name is required")
	}
	if _, ok := AllFormats[l.Format]; !ok {
		return fmt.Errorf("invalid league format: %s", l.Format)
	}

	return nil
}
