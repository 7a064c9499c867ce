package hours

import (
	"reflect"
	"testing"
)

func TestParseSchedule(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		want        []Interval
		wantSkipped int
	}{
		{
			name: "multi day segment with single day segment",
			raw:  "Mon, Wed 08:00 - 12:00 / Tue 14:00 - 18:00",
			want: []Interval{
				{DayOfWeek: "Mon", OpenTime: "08:00", CloseTime: "12:00"},
				{DayOfWeek: "Wed", OpenTime: "08:00", CloseTime: "12:00"},
				{DayOfWeek: "Tue", OpenTime: "14:00", CloseTime: "18:00"},
			},
		},
		{
			name: "long and short day aliases normalize",
			raw:  "Thur 10:00 - 13:00 / Tuesday 09:00 - 17:00",
			want: []Interval{
				{DayOfWeek: "Thu", OpenTime: "10:00", CloseTime: "13:00"},
				{DayOfWeek: "Tue", OpenTime: "09:00", CloseTime: "17:00"},
			},
		},
		{
			name: "malformed segment skipped, rest survives",
			raw:  "Mon 08:00 - 12:00 / garbage / Fri 10:00 - 16:00",
			want: []Interval{
				{DayOfWeek: "Mon", OpenTime: "08:00", CloseTime: "12:00"},
				{DayOfWeek: "Fri", OpenTime: "10:00", CloseTime: "16:00"},
			},
			wantSkipped: 1,
		},
		{
			name:        "out of range clock skipped",
			raw:         "Mon 25:61 - 12:00",
			want:        nil,
			wantSkipped: 1,
		},
		{
			name: "unknown day token passes through",
			raw:  "Moo 08:00 - 12:00",
			want: []Interval{
				{DayOfWeek: "Moo", OpenTime: "08:00", CloseTime: "12:00"},
			},
		},
		{
			name:        "empty string",
			raw:         "",
			want:        nil,
			wantSkipped: 1,
		},
		{
			name: "overnight interval kept as written",
			raw:  "Sat 20:00 - 02:00",
			want: []Interval{
				{DayOfWeek: "Sat", OpenTime: "20:00", CloseTime: "02:00"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, skipped := ParseSchedule(tt.raw)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseSchedule(%q) = %v, want %v", tt.raw, got, tt.want)
			}
			if skipped != tt.wantSkipped {
				t.Errorf("ParseSchedule(%q) skipped = %d, want %d", tt.raw, skipped, tt.wantSkipped)
			}
		})
	}
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		in string
		ok bool
	}{
		{"08:00", true},
		{"00:00", true},
		{"23:59", true},
		{"24:00", false},
		{"25:61", false},
		{"12:60", false},
		{"8:00", false},
		{"0800", false},
		{"ab:cd", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseClock(tt.in)
			if ok != tt.ok {
				t.Fatalf("ParseClock(%q) ok = %v, want %v", tt.in, ok, tt.ok)
			}
			if ok && got != tt.in {
				t.Errorf("ParseClock(%q) = %q, want input back", tt.in, got)
			}
		})
	}
}

func TestNormalizeDay(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Mon", "Mon"},
		{"Monday", "Mon"},
		{"Tues", "Tue"},
		{"Thur", "Thu"},
		{"Sunday", "Sun"},
		{"Funday", "Funday"},
	}

	for _, tt := range tests {
		if got := NormalizeDay(tt.in); got != tt.want {
			t.Errorf("NormalizeDay(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
