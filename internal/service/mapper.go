package service

import (
	"brawlhalla-tracker/internal/api"
	"brawlhalla-tracker/internal/domain"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var legendNameCaser = cases.Title(language.English)

// rankedFromAPI copies the allow-listed payload fields onto the typed
// record. A nil response marks an account with no ranked history.
func rankedFromAPI(res *api.RankedResponse) *domain.RankedStats {
	if res == nil {
		return &domain.RankedStats{NoData: true}
	}

	stats := &domain.RankedStats{
		Name:       res.Name,
		Rating:     res.Rating,
		PeakRating: res.PeakRating,
		Tier:       res.Tier,
		Wins:       res.Wins,
		Games:      res.Games,
		Region:     res.Region,
		GlobalRank: res.GlobalRank,
		RegionRank: res.RegionRank,
		Legends:    make([]domain.LegendStats, 0, len(res.Legends)),
		Teams:      make([]domain.TeamStats, 0, len(res.Teams)),
	}

	for _, l := range res.Legends {
		stats.Legends = append(stats.Legends, domain.LegendStats{
			Name:       legendNameCaser.String(l.LegendNameKey),
			Rating:     l.Rating,
			PeakRating: l.PeakRating,
			Tier:       l.Tier,
			Wins:       l.Wins,
			Games:      l.Games,
		})
	}

	for _, t := range res.Teams {
		stats.Teams = append(stats.Teams, domain.TeamStats{
			TeamName:   t.TeamName,
			Rating:     t.Rating,
			PeakRating: t.PeakRating,
			Tier:       t.Tier,
			Wins:       t.Wins,
			Games:      t.Games,
			GlobalRank: t.GlobalRank,
		})
	}

	return stats
}

func overviewFromAPI(res *api.PlayerStatsResponse) *domain.ProfileOverview {
	if res == nil {
		return nil
	}
	overview := &domain.ProfileOverview{
		Name:  res.Name,
		Level: res.Level,
		XP:    res.XP,
		Games: res.Games,
		Wins:  res.Wins,
	}
	if res.Clan != nil {
		overview.ClanName = res.Clan.ClanName
	}
	return overview
}

func searchResultsFromAPI(entries []api.RankingEntry, limit int) []domain.PlayerSearchResult {
	if len(entries) > limit {
		entries = entries[:limit]
	}
	results := make([]domain.PlayerSearchResult, 0, len(entries))
	for _, e := range entries {
		results = append(results, domain.PlayerSearchResult{
			Rank:         e.Rank,
			Name:         e.Name,
			Region:       e.Region,
			Rating:       e.Rating,
			Tier:         e.Tier,
			BrawlhallaID: e.BrawlhallaID,
		})
	}
	return results
}
