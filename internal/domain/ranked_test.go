package domain

import (
	"testing"
)

func TestGloryRatingBrackets(t *testing.T) {
	// totalWins fixed at 10, so the wins component is always 20*10 = 200.
	const winGlory = 200

	tests := []struct {
		peakRating int
		want       int
	}{
		{0, 250 + winGlory},
		{1199, 250 + winGlory},
		{1200, 250 + winGlory},
		{1285, 991 + winGlory},
		{1286, 1000 + winGlory},
		{1389, 1742 + winGlory},
		{1390, 1870 + winGlory},
		{1679, 2996 + winGlory},
		{1680, 3000 + winGlory},
		{1999, 4365 + winGlory},
		{2000, 4370 + winGlory},
		{2299, 4798 + winGlory},
		{2300, 4800 + winGlory},
		{3000, 5150 + winGlory},
	}

	for _, tt := range tests {
		if got := Glory(tt.peakRating, 10); got != tt.want {
			t.Errorf("Glory(%d, 10) = %d, want %d", tt.peakRating, got, tt.want)
		}
	}
}

func TestGloryMinimumWinsFloor(t *testing.T) {
	for _, rating := range []int{0, 1200, 2300, 5000} {
		for _, wins := range []int{0, 1, 9} {
			if got := Glory(rating, wins); got != 0 {
				t.Errorf("Glory(%d, %d) = %d, want 0", rating, wins, got)
			}
		}
	}
}

func TestGloryHighWinsCurve(t *testing.T) {
	// Past 150 wins the wins component switches to the logarithmic curve:
	// 245 + floor(450 * log10(2*wins)^2). At 151 wins that is 245 + 2767.
	if got := Glory(0, 151); got != 250+245+2767 {
		t.Errorf("Glory(0, 151) = %d, want %d", got, 250+245+2767)
	}
}

func TestGloryMonotonicInWins(t *testing.T) {
	for _, rating := range []int{0, 1250, 1900, 2300} {
		prev := Glory(rating, 10)
		for wins := 11; wins <= 300; wins++ {
			cur := Glory(rating, wins)
			if cur < prev {
				t.Fatalf("Glory(%d, %d) = %d < Glory(%d, %d) = %d", rating, wins, cur, rating, wins-1, prev)
			}
			prev = cur
		}
	}
}

func TestGloryMonotonicInRating(t *testing.T) {
	for _, wins := range []int{10, 100, 200} {
		prev := Glory(0, wins)
		for rating := 1; rating <= 3000; rating++ {
			cur := Glory(rating, wins)
			if cur < prev {
				t.Fatalf("Glory(%d, %d) = %d < Glory(%d, %d) = %d", rating, wins, cur, rating-1, wins, prev)
			}
			prev = cur
		}
	}
}

func TestDerivedMetrics(t *testing.T) {
	stats := &RankedStats{
		Wins:  30,
		Games: 50,
		Legends: []LegendStats{
			{Name: "Ada", Rating: 1500, Games: 5},
			{Name: "Bodvar", Rating: 1400, Games: 20},
		},
	}

	if got := stats.MostPlayed().Name; got != "Bodvar" {
		t.Errorf("MostPlayed().Name = %q, want Bodvar", got)
	}
	if got := stats.HighestRated().Name; got != "Ada" {
		t.Errorf("HighestRated().Name = %q, want Ada", got)
	}
	if got := stats.TotalWins(); got != 30 {
		t.Errorf("TotalWins() with no teams = %d, want 30", got)
	}

	stats.Teams = []TeamStats{
		{TeamName: "A+B", Wins: 10, Games: 15},
		{TeamName: "A+C", Wins: 2, Games: 40},
	}
	if got := stats.TotalWins(); got != 42 {
		t.Errorf("TotalWins() with teams = %d, want 42", got)
	}
	if got := stats.MostPlayedTeam().TeamName; got != "A+C" {
		t.Errorf("MostPlayedTeam().TeamName = %q, want A+C", got)
	}
}

func TestDerivedMetricsStableMax(t *testing.T) {
	stats := &RankedStats{
		Legends: []LegendStats{
			{Name: "First", Rating: 1500, Games: 10},
			{Name: "Second", Rating: 1500, Games: 10},
		},
	}

	if got := stats.MostPlayed().Name; got != "First" {
		t.Errorf("tie on games picked %q, want First", got)
	}
	if got := stats.HighestRated().Name; got != "First" {
		t.Errorf("tie on rating picked %q, want First", got)
	}
}
