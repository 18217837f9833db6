package week

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestNumber_KnownWeeks(t *testing.T) {
	cases := []struct {
		in   time.Time
		want int
	}{
		{date(2025, time.January, 1), 1},    // Wednesday, week 1
		{date(2025, time.January, 6), 2},    // Monday, week 2
		{date(2025, time.September, 22), 39},
		{date(2025, time.December, 29), 1},  // Monday, ISO week 1 of 2026
		{date(2026, time.January, 1), 1},    // Thursday
		{date(2021, time.January, 1), 53},   // Friday, belongs to 2020's week 53
		{date(2020, time.December, 31), 53},
	}
	for _, tc := range cases {
		if got := Number(tc.in); got != tc.want {
			t.Errorf("Number(%s) = %d, want %d", tc.in.Format("2006-01-02"), got, tc.want)
		}
	}
}

func TestNumber_StableAcrossWeek(t *testing.T) {
	monday := date(2025, time.September, 22)
	want := Number(monday)
	for i := 0; i < 7; i++ {
		d := monday.AddDate(0, 0, i)
		if got := Number(d); got != want {
			t.Errorf("Number(%s) = %d, want %d", d.Format("2006-01-02"), got, want)
		}
	}
	if got := Number(monday.AddDate(0, 0, 7)); got != want+1 {
		t.Errorf("expected increment at next Monday, got %d after %d", got, want)
	}
}

func TestNumber_IgnoresTimeOfDay(t *testing.T) {
	noon := time.Date(2025, time.September, 24, 12, 30, 45, 0, time.Local)
	if got, want := Number(noon), Number(Midnight(noon)); got != want {
		t.Errorf("Number with time-of-day = %d, want %d", got, want)
	}
}

func TestFromDate_MondayThroughSunday(t *testing.T) {
	for i := 0; i < 14; i++ {
		d := date(2025, time.December, 20).AddDate(0, 0, i)
		r := FromDate(d)
		if r.Monday.Weekday() != time.Monday {
			t.Fatalf("FromDate(%s).Monday is a %s", d.Format("2006-01-02"), r.Monday.Weekday())
		}
		if r.Sunday.Weekday() != time.Sunday {
			t.Fatalf("FromDate(%s).Sunday is a %s", d.Format("2006-01-02"), r.Sunday.Weekday())
		}
		if got := r.Sunday.Sub(r.Monday); got != 6*24*time.Hour {
			t.Fatalf("range span = %s, want 144h", got)
		}
		if d.Before(r.Monday) || d.After(r.Sunday) {
			t.Fatalf("%s outside its own week range %v..%v", d.Format("2006-01-02"), r.Monday, r.Sunday)
		}
	}
}

func TestFromWeek_RoundTrip(t *testing.T) {
	for _, year := range []int{2020, 2021, 2024, 2025, 2026} {
		for w := 1; w <= 52; w++ {
			r := FromWeek(w, year)
			if got := FromDate(r.Monday).Monday; !got.Equal(r.Monday) {
				t.Fatalf("week %d/%d: FromDate(Monday).Monday = %v, want %v", w, year, got, r.Monday)
			}
			if got := Number(r.Monday); got != w {
				t.Fatalf("week %d/%d: Number(Monday) = %d", w, year, got)
			}
		}
	}
}

func TestFromWeek_WeekOne(t *testing.T) {
	// Week 1 of 2026: Jan 4 is a Sunday, so the week runs Dec 29 .. Jan 4.
	r := FromWeek(1, 2026)
	if want := date(2025, time.December, 29); !r.Monday.Equal(want) {
		t.Errorf("Monday of week 1/2026 = %v, want %v", r.Monday, want)
	}
	if want := date(2026, time.January, 4); !r.Sunday.Equal(want) {
		t.Errorf("Sunday of week 1/2026 = %v, want %v", r.Sunday, want)
	}
}
