package domain

import (
	"time"
)

// RankedStats is the parsed ranked payload for one account. NoData marks an
// account that exists but has never played ranked; every other field is only
// meaningful when NoData is false. Invariants: Games >= Wins >= 0, Legends
// non-empty whenever NoData is false, Teams may be empty.
type RankedStats struct {
	NoData     bool          `json:"no_data"`
	Name       string        `json:"name"`
	Rating     int           `json:"rating"`
	PeakRating int           `json:"peak_rating"`
	Tier       string        `json:"tier"`
	Wins       int           `json:"wins"`
	Games      int           `json:"games"`
	Region     string        `json:"region"`
	GlobalRank *int          `json:"global_rank"`
	RegionRank *int          `json:"region_rank"`
	Legends    []LegendStats `json:"legends"`
	Teams      []TeamStats   `json:"teams"`
}

// LegendStats aggregates one character's ranked record.
type LegendStats struct {
	Name       string `json:"name"`
	Rating     int    `json:"rating"`
	PeakRating int    `json:"peak_rating"`
	Tier       string `json:"tier"`
	Wins       int    `json:"wins"`
	Games      int    `json:"games"`
}

// TeamStats aggregates one 2v2 team's ranked record.
type TeamStats struct {
	TeamName   string `json:"teamname"`
	Rating     int    `json:"rating"`
	PeakRating int    `json:"peak_rating"`
	Tier       string `json:"tier"`
	Wins       int    `json:"wins"`
	Games      int    `json:"games"`
	GlobalRank *int   `json:"global_rank"`
}

// UserLink maps a chat-user id to a Brawlhalla account id. At most one row
// per user; relinking overwrites.
type UserLink struct {
	UserID       int64     `json:"user_id"`
	BrawlhallaID int64     `json:"brawlhalla_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// PlayerSearchResult is one ladder match for a searched name, shown to the
// user during disambiguation.
type PlayerSearchResult struct {
	Rank         int    `json:"rank"`
	Name         string `json:"name"`
	Region       string `json:"region"`
	Rating       int    `json:"rating"`
	Tier         string `json:"tier"`
	BrawlhallaID int64  `json:"brawlhalla_id"`
}

// ProfileOverview is the general (non-ranked) slice of an account.
type ProfileOverview struct {
	Name     string `json:"name"`
	Level    int    `json:"level"`
	XP       int    `json:"xp"`
	Games    int    `json:"games"`
	Wins     int    `json:"wins"`
	ClanName string `json:"clan_name,omitempty"`
}
