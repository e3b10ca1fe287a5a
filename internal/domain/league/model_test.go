package league

import (
	"strings"
	"testing"
)

func TestParseFormat(t *testing.T) {
	t.Parallel()

	if format, err := ParseFormat("redraft"); err != nil || format != FormatRedraft {
		t.Fatalf("ParseFormat(redraft) = %q, %v", format, err)
	}
	if format, err := ParseFormat("dynasty"); err != nil || format != FormatDynasty {
		t.Fatalf("ParseFormat(dynasty) = %q, %v", format, err)
	}

	for _, raw := range []string{"", "bestball", "Redraft", "DYNASTY"} {
		if _, err := ParseFormat(raw); err == nil {
			t.Fatalf("ParseFormat(%q) error = nil, want error", raw)
		}
	}
}

func TestScheduleFor(t *testing.T) {
	t.Parallel()

	redraft := ScheduleFor(FormatRedraft)
	if redraft.TeamCount != 14 {
		t.Fatalf("redraft team count = %d, want 14", redraft.TeamCount)
	}
	if !redraft.IsRegularWeek(14) || redraft.IsRegularWeek(13) {
		t.Fatalf("redraft regular weeks wrong, only week 14 is regular")
	}
	if !redraft.IsPlayoffWeek(15) || !redraft.IsPlayoffWeek(17) || redraft.IsPlayoffWeek(14) || redraft.IsPlayoffWeek(18) {
		t.Fatalf("redraft playoff window wrong, want weeks 15-17")
	}

	dynasty := ScheduleFor(FormatDynasty)
	if dynasty.TeamCount != 10 {
		t.Fatalf("dynasty team count = %d, want 10", dynasty.TeamCount)
	}
	for week := 10; week <= 13; week++ {
		if !dynasty.IsRegularWeek(week) {
			t.Fatalf("dynasty week %d should be regular", week)
		}
	}
	if dynasty.IsRegularWeek(9) || dynasty.IsRegularWeek(14) {
		t.Fatalf("dynasty regular window wrong, want weeks 10-13")
	}
	if !dynasty.IsPlayoffWeek(14) || !dynasty.IsPlayoffWeek(17) || dynasty.IsPlayoffWeek(13) {
		t.Fatalf("dynasty playoff window wrong, want weeks 14-17")
	}

	unknown := ScheduleFor(Format("bestball"))
	if unknown.TeamCount != 0 || unknown.IsPlayoffWeek(15) {
		t.Fatalf("unknown format should yield the zero schedule")
	}
}

func TestLeagueValidate(t *testing.T) {
	t.Parallel()

	valid := League{ID: "123", Name: "TFL Redraft", Season: "2025", Format: FormatRedraft}
	if err := valid.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	cases := []struct {
		name   string
		league League
		want   string
	}{
		{name: "missing id", league: League{Name: "x", Format: FormatRedraft}, want: "id"},
		{name: "missing name", league: League{ID: "1", Format: FormatRedraft}, want: "name"},
		{name: "bad format", league: League{ID: "1", Name: "x", Format: "bestball"}, want: "format"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := tc.league.Validate()
			if err == nil {
				t.Fatalf("Validate() error = nil, want error about %s", tc.want)
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("Validate() error = %v, want mention of %s", err, tc.want)
			}
		})
	}
}
