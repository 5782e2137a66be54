package domain

import (
	"math"
)

// MostPlayed returns the legend with the most ranked games. Ties keep the
// first legend in payload order. Requires NoData == false.
func (s *RankedStats) MostPlayed() LegendStats {
	best := s.Legends[0]
	for _, l := range s.Legends[1:] {
		if l.Games > best.Games {
			best = l
		}
	}
	return best
}

// HighestRated returns the legend with the highest current rating. Ties keep
// the first legend in payload order. Requires NoData == false.
func (s *RankedStats) HighestRated() LegendStats {
	best := s.Legends[0]
	for _, l := range s.Legends[1:] {
		if l.Rating > best.Rating {
			best = l
		}
	}
	return best
}

// MostPlayedTeam returns the 2v2 team with the most games. Callers must
// check that Teams is non-empty first.
func (s *RankedStats) MostPlayedTeam() TeamStats {
	best := s.Teams[0]
	for _, t := range s.Teams[1:] {
		if t.Games > best.Games {
			best = t
		}
	}
	return best
}

// TotalWins sums 1v1 wins with every team's wins.
func (s *RankedStats) TotalWins() int {
	total := s.Wins
	for _, t := range s.Teams {
		total += t.Wins
	}
	return total
}

// Glory estimates the account's glory from its peak rating and total wins.
func (s *RankedStats) Glory() int {
	return Glory(s.PeakRating, s.TotalWins())
}

// gloryRange holds the coefficients for one rating bracket of the glory
// formula: floor(10 * (c1 + c2*(r-c3)/c4)). Ranges are inclusive,
// contiguous and checked in order.
type gloryRange struct {
	min, max       int
	c1, c2, c3, c4 float64
}

var gloryRanges = []gloryRange{
	{0, 1199, 25, 0, 0, 1},
	{1200, 1285, 25, 75, 1200, 86},
	{1286, 1389, 100, 75, 1286, 104},
	{1390, 1679, 187, 113, 1390, 290},
	{1680, 1999, 300, 137, 1680, 320},
	{2000, 2299, 437, 43, 2000, 300},
	{2300, math.MaxInt32, 480, 1, 2300, 20},
}

func ratingGlory(peakRating int) int {
	for _, rg := range gloryRanges {
		if peakRating >= rg.min && peakRating <= rg.max {
			r := float64(peakRating)
			return int(math.Floor(10 * (rg.c1 + rg.c2*(r-rg.c3)/rg.c4)))
		}
	}
	return 0
}

// Glory implements the in-game currency estimate: zero below the ten-win
// floor, then a rating component from the bracket table plus a wins
// component that switches to a logarithmic curve past 150 wins.
func Glory(peakRating, totalWins int) int {
	if totalWins < 10 {
		return 0
	}
	rating := ratingGlory(peakRating)
	if totalWins <= 150 {
		return rating + 20*totalWins
	}
	winGlory := math.Floor(450 * math.Pow(math.Log10(float64(2*totalWins)), 2))
	return rating + 245 + int(winGlory)
}
