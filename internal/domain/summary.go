package domain

import (
	"math"
)

// Summary carries every field the command surface renders for one account.
type Summary struct {
	Name         string          `json:"name"`
	Region       string          `json:"region"`
	HighestRated LegendHighlight `json:"highest_rated"`
	MostPlayed   LegendHighlight `json:"most_played"`
	Glory        int             `json:"glory"`
	OneVsOne     BracketSummary  `json:"one_vs_one"`

	// Team is nil when the account has no 2v2 teams.
	Team *TeamSummary `json:"team"`
}

type LegendHighlight struct {
	Name   string `json:"name"`
	Rating int    `json:"rating"`
	Games  int    `json:"games"`
}

type BracketSummary struct {
	Tier       string  `json:"tier"`
	Rating     int     `json:"rating"`
	PeakRating int     `json:"peak_rating"`
	Games      int     `json:"games"`
	Wins       int     `json:"wins"`
	Losses     int     `json:"losses"`
	Winrate    float64 `json:"winrate"`
	GlobalRank *int    `json:"global_rank,omitempty"`
	RegionRank *int    `json:"region_rank,omitempty"`
}

type TeamSummary struct {
	TeamName string `json:"teamname"`
	BracketSummary
}

// NewSummary derives the render-ready summary. Requires NoData == false.
func NewSummary(s *RankedStats) *Summary {
	hr := s.HighestRated()
	mp := s.MostPlayed()

	summary := &Summary{
		Name:         s.Name,
		Region:       s.Region,
		HighestRated: LegendHighlight{Name: hr.Name, Rating: hr.Rating, Games: hr.Games},
		MostPlayed:   LegendHighlight{Name: mp.Name, Rating: mp.Rating, Games: mp.Games},
		Glory:        s.Glory(),
		OneVsOne: BracketSummary{
			Tier:       s.Tier,
			Rating:     s.Rating,
			PeakRating: s.PeakRating,
			Games:      s.Games,
			Wins:       s.Wins,
			Losses:     s.Games - s.Wins,
			Winrate:    Winrate(s.Wins, s.Games),
			GlobalRank: s.GlobalRank,
			RegionRank: s.RegionRank,
		},
	}

	if len(s.Teams) > 0 {
		t := s.MostPlayedTeam()
		summary.Team = &TeamSummary{
			TeamName: t.TeamName,
			BracketSummary: BracketSummary{
				Tier:       t.Tier,
				Rating:     t.Rating,
				PeakRating: t.PeakRating,
				Games:      t.Games,
				Wins:       t.Wins,
				Losses:     t.Games - t.Wins,
				Winrate:    Winrate(t.Wins, t.Games),
				GlobalRank: t.GlobalRank,
			},
		}
	}

	return summary
}

// Winrate returns the win percentage rounded to two decimals.
func Winrate(wins, games int) float64 {
	if games == 0 {
		return 0
	}
	return math.Round(float64(wins)/float64(games)*10000) / 100
}

// AgreeWithWord picks the singular or plural form for a count, for
// user-facing text like "1 win" and "3 wins".
func AgreeWithWord(n int, singular, plural string) string {
	if n == 1 {
		return singular
	}
	return plural
}
