package streak

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAdvance(t *testing.T) {
	tests := []struct {
		name     string
		state    WalkStreak
		walkDate string
		today    string
		want     WalkStreak
	}{
		{
			name:     "reset on gap",
			state:    WalkStreak{Current: 5, Longest: 5, LastWalkDate: "2024-01-01"},
			walkDate: "2024-01-10",
			today:    "2024-01-10",
			want:     WalkStreak{Current: 1, Longest: 5, LastWalkDate: "2024-01-10"},
		},
		{
			name:     "consecutive day increments",
			state:    WalkStreak{Current: 2, Longest: 5, LastWalkDate: "2024-01-01"},
			walkDate: "2024-01-02",
			today:    "2024-01-02",
			want:     WalkStreak{Current: 3, Longest: 5, LastWalkDate: "2024-01-02"},
		},
		{
			name:     "walk yesterday counts",
			state:    WalkStreak{Current: 3, Longest: 3, LastWalkDate: "2024-01-01"},
			walkDate: "2024-01-02",
			today:    "2024-01-03",
			want:     WalkStreak{Current: 4, Longest: 4, LastWalkDate: "2024-01-02"},
		},
		{
			name:     "same day is a no-op",
			state:    WalkStreak{Current: 4, Longest: 7, LastWalkDate: "2024-01-02"},
			walkDate: "2024-01-02",
			today:    "2024-01-02",
			want:     WalkStreak{Current: 4, Longest: 7, LastWalkDate: "2024-01-02"},
		},
		{
			name:     "fresh state starts at one",
			state:    WalkStreak{},
			walkDate: "2024-03-01",
			today:    "2024-03-05",
			want:     WalkStreak{Current: 1, Longest: 1, LastWalkDate: "2024-03-01"},
		},
		{
			name:     "past date behind last walk resets",
			state:    WalkStreak{Current: 6, Longest: 6, LastWalkDate: "2024-02-10"},
			walkDate: "2024-02-01",
			today:    "2024-02-10",
			want:     WalkStreak{Current: 1, Longest: 6, LastWalkDate: "2024-02-01"},
		},
		{
			name:     "month boundary",
			state:    WalkStreak{Current: 1, Longest: 2, LastWalkDate: "2024-02-28"},
			walkDate: "2024-02-29",
			today:    "2024-03-01",
			want:     WalkStreak{Current: 2, Longest: 2, LastWalkDate: "2024-02-29"},
		},
		{
			name:     "version is carried over",
			state:    WalkStreak{Current: 1, Longest: 1, LastWalkDate: "2024-05-01", Version: 4},
			walkDate: "2024-05-02",
			today:    "2024-05-02",
			want:     WalkStreak{Current: 2, Longest: 2, LastWalkDate: "2024-05-02", Version: 4},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Advance(tt.state, tt.walkDate, tt.today))
		})
	}
}

func TestAdvance_Idempotent(t *testing.T) {
	start := WalkStreak{Current: 2, Longest: 4, LastWalkDate: "2024-06-01"}

	once := Advance(start, "2024-06-02", "2024-06-02")
	twice := Advance(once, "2024-06-02", "2024-06-02")

	assert.Equal(t, once, twice)
}

func TestAdvance_LongestNeverDecreases(t *testing.T) {
	days := []struct{ walk, today string }{
		{"2024-01-01", "2024-01-01"},
		{"2024-01-02", "2024-01-02"},
		{"2024-01-02", "2024-01-02"},
		{"2024-01-03", "2024-01-04"},
		{"2024-01-09", "2024-01-09"},
		{"2024-01-10", "2024-01-10"},
		{"2023-12-25", "2024-01-10"},
		{"2024-01-11", "2024-01-11"},
		{"2024-01-12", "2024-01-12"},
		{"2024-01-13", "2024-01-13"},
		{"2024-01-14", "2024-01-14"},
	}

	var st WalkStreak
	prevLongest := 0
	for _, d := range days {
		st = Advance(st, d.walk, d.today)
		assert.GreaterOrEqual(t, st.Longest, prevLongest, "walk %s", d.walk)
		assert.GreaterOrEqual(t, st.Longest, st.Current, "walk %s", d.walk)
		prevLongest = st.Longest
	}
	assert.Equal(t, 4, st.Current)
	assert.Equal(t, 4, st.Longest)
}

func TestYesterday(t *testing.T) {
	assert.Equal(t, "2023-12-31", Yesterday("2024-01-01"))
	assert.Equal(t, "2024-02-29", Yesterday("2024-03-01"))
	assert.Equal(t, "", Yesterday("not-a-date"))
}

func TestValidDate(t *testing.T) {
	assert.True(t, ValidDate("2024-01-01"))
	assert.False(t, ValidDate("2024-13-01"))
	assert.False(t, ValidDate("01/02/2024"))
	assert.False(t, ValidDate(""))
}

func TestFixedClock(t *testing.T) {
	var c Clock = FixedClock("2024-07-01")
	assert.Equal(t, "2024-07-01", c.Today())
}
