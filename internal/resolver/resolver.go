package resolver

import (
	"context"
	"regexp"
	"strconv"

	"brawlhalla-tracker/internal/api"
	"brawlhalla-tracker/internal/constants"

	"github.com/rs/zerolog"
)

// VanityResolver is the one capability the resolver needs from the identity
// platform: turning a human-chosen vanity name into a numeric id.
type VanityResolver interface {
	ResolveVanityURL(ctx context.Context, vanity string) (uint64, error)
}

// Resolver maps free-form user input (profile URL, bare 17-digit id, or
// vanity name) to a Steam id.
type Resolver struct {
	steam  VanityResolver
	logger zerolog.Logger
}

var profileURLPattern = regexp.MustCompile(`^(?:https?://)?(?:www\.)?steamcommunity\.com/(?:id/([^/ \n]+)|profiles/([0-9]{17}))`)

func New(steam *api.SteamClient, logger zerolog.Logger) *Resolver {
	return newResolver(steam, logger)
}

func newResolver(steam VanityResolver, logger zerolog.Logger) *Resolver {
	return &Resolver{steam: steam, logger: logger}
}

// Resolve returns (0, nil) when the input cannot be mapped to a Steam id;
// only transport failures are errors. Direct forms (a profiles URL or a bare
// 17-digit id) resolve without any network call; everything else costs one
// round trip to the vanity endpoint.
func (r *Resolver) Resolve(ctx context.Context, input string) (uint64, error) {
	if m := profileURLPattern.FindStringSubmatch(input); m != nil {
		if m[2] != "" {
			id, err := strconv.ParseUint(m[2], 10, 64)
			if err != nil {
				return 0, nil
			}
			return id, nil
		}
		r.logger.Debug().Str("vanity", m[1]).Msg("resolving vanity name from profile URL")
		return r.steam.ResolveVanityURL(ctx, m[1])
	}

	if isSteamID(input) {
		id, err := strconv.ParseUint(input, 10, 64)
		if err != nil {
			return 0, nil
		}
		return id, nil
	}

	r.logger.Debug().Str("vanity", input).Msg("resolving input as vanity name")
	return r.steam.ResolveVanityURL(ctx, input)
}

func isSteamID(s string) bool {
	if len(s) != constants.SteamIDLength {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
