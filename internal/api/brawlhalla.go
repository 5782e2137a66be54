package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"brawlhalla-tracker/internal/config"

	"github.com/valyala/fasthttp"
)

// BrawlhallaClient talks to the Brawlhalla REST API. The key rides as a
// query parameter on every request, per the provider's auth scheme.
type BrawlhallaClient struct {
	apiKey string
	client *fasthttp.Client
}

func NewBrawlhallaClient(cfg *config.Config) *BrawlhallaClient {
	return &BrawlhallaClient{
		apiKey: cfg.BrawlhallaAPIKey,
		client: newHTTPClient(),
	}
}

type SearchResponse struct {
	BrawlhallaID int64  `json:"brawlhalla_id"`
	Name         string `json:"name"`
}

// SearchAccount maps a Steam id to a Brawlhalla account id. Returns 0 when
// no Brawlhalla profile is linked to that Steam account.
func (c *BrawlhallaClient) SearchAccount(ctx context.Context, steamID uint64) (int64, error) {
	reqURL := fmt.Sprintf("https://api.brawlhalla.com/search?steamid=%d&api_key=%s", steamID, url.QueryEscape(c.apiKey))

	body, err := doRequestRaw(ctx, c.client, reqURL)
	if err != nil {
		return 0, err
	}
	if emptyPayload(body) {
		return 0, nil
	}

	var res SearchResponse
	if err := json.Unmarshal(body, &res); err != nil {
		return 0, err
	}
	return res.BrawlhallaID, nil
}

type RankedResponse struct {
	Name       string        `json:"name"`
	Rating     int           `json:"rating"`
	PeakRating int           `json:"peak_rating"`
	Tier       string        `json:"tier"`
	Wins       int           `json:"wins"`
	Games      int           `json:"games"`
	Region     string        `json:"region"`
	GlobalRank *int          `json:"global_rank"`
	RegionRank *int          `json:"region_rank"`
	Legends    []LegendEntry `json:"legends"`
	Teams      []TeamEntry   `json:"2v2"`
}

type LegendEntry struct {
	LegendID      int64  `json:"legend_id"`
	LegendNameKey string `json:"legend_name_key"`
	Rating        int    `json:"rating"`
	PeakRating    int    `json:"peak_rating"`
	Tier          string `json:"tier"`
	Wins          int    `json:"wins"`
	Games         int    `json:"games"`
}

type TeamEntry struct {
	BrawlhallaIDOne int64  `json:"brawlhalla_id_one"`
	BrawlhallaIDTwo int64  `json:"brawlhalla_id_two"`
	TeamName        string `json:"teamname"`
	Rating          int    `json:"rating"`
	PeakRating      int    `json:"peak_rating"`
	Tier            string `json:"tier"`
	Wins            int    `json:"wins"`
	Games           int    `json:"games"`
	GlobalRank      *int   `json:"global_rank"`
}

// PlayerRanked fetches the ranked payload for an account. A nil response
// with nil error means the account exists but has no ranked data.
func (c *BrawlhallaClient) PlayerRanked(ctx context.Context, bhID int64) (*RankedResponse, error) {
	reqURL := fmt.Sprintf("https://api.brawlhalla.com/player/%d/ranked?api_key=%s", bhID, url.QueryEscape(c.apiKey))

	body, err := doRequestRaw(ctx, c.client, reqURL)
	if err != nil {
		return nil, err
	}
	if emptyPayload(body) {
		return nil, nil
	}

	var res RankedResponse
	if err := json.Unmarshal(body, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

type PlayerStatsResponse struct {
	BrawlhallaID int64     `json:"brawlhalla_id"`
	Name         string    `json:"name"`
	XP           int       `json:"xp"`
	Level        int       `json:"level"`
	Games        int       `json:"games"`
	Wins         int       `json:"wins"`
	Clan         *ClanInfo `json:"clan"`
}

type ClanInfo struct {
	ClanID   int64  `json:"clan_id"`
	ClanName string `json:"clan_name"`
}

// PlayerStats fetches the general (non-ranked) stats payload. Nil response
// with nil error when the account has no stats at all.
func (c *BrawlhallaClient) PlayerStats(ctx context.Context, bhID int64) (*PlayerStatsResponse, error) {
	reqURL := fmt.Sprintf("https://api.brawlhalla.com/player/%d/stats?api_key=%s", bhID, url.QueryEscape(c.apiKey))

	body, err := doRequestRaw(ctx, c.client, reqURL)
	if err != nil {
		return nil, err
	}
	if emptyPayload(body) {
		return nil, nil
	}

	var res PlayerStatsResponse
	if err := json.Unmarshal(body, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

type RankingEntry struct {
	Rank         int    `json:"rank"`
	Name         string `json:"name"`
	BrawlhallaID int64  `json:"brawlhalla_id"`
	Rating       int    `json:"rating"`
	PeakRating   int    `json:"peak_rating"`
	Tier         string `json:"tier"`
	Region       string `json:"region"`
	Wins         int    `json:"wins"`
	Games        int    `json:"games"`
}

// SearchRankings looks a player name up on the 1v1 ranked ladder across all
// regions, used by the disambiguation flow when direct resolution fails.
func (c *BrawlhallaClient) SearchRankings(ctx context.Context, name string) ([]RankingEntry, error) {
	reqURL := fmt.Sprintf("https://api.brawlhalla.com/rankings/1v1/all/1?name=%s&api_key=%s", url.QueryEscape(name), url.QueryEscape(c.apiKey))

	res, err := doRequest[[]RankingEntry](ctx, c.client, reqURL)
	if err != nil {
		return nil, err
	}
	return *res, nil
}
