package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"brawlhalla-tracker/internal/config"

	"github.com/valyala/fasthttp"
)

// SteamClient talks to the Steam Web API, used only to resolve vanity
// profile names to 64-bit Steam ids.
type SteamClient struct {
	apiKey string
	client *fasthttp.Client
}

func NewSteamClient(cfg *config.Config) *SteamClient {
	return &SteamClient{
		apiKey: cfg.SteamAPIKey,
		client: newHTTPClient(),
	}
}

type VanityURLResponse struct {
	Response struct {
		Success int    `json:"success"`
		SteamID string `json:"steamid"`
	} `json:"response"`
}

// ResolveVanityURL returns the Steam id behind a vanity name, or 0 when the
// platform does not know the name. Only transport problems are errors.
func (c *SteamClient) ResolveVanityURL(ctx context.Context, vanity string) (uint64, error) {
	reqURL := fmt.Sprintf(
		"https://api.steampowered.com/ISteamUser/ResolveVanityURL/v0001/?key=%s&vanityurl=%s",
		url.QueryEscape(c.apiKey), url.QueryEscape(vanity),
	)

	res, err := doRequest[VanityURLResponse](ctx, c.client, reqURL)
	if err != nil {
		return 0, err
	}
	if res.Response.Success != 1 {
		return 0, nil
	}

	id, err := strconv.ParseUint(res.Response.SteamID, 10, 64)
	if err != nil {
		// Malformed id from the platform, treat as unresolved.
		return 0, nil
	}
	return id, nil
}
