package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"brawlhalla-tracker/internal/api"
	"brawlhalla-tracker/internal/config"
	"brawlhalla-tracker/internal/constants"
	"brawlhalla-tracker/internal/domain"
	"brawlhalla-tracker/internal/repository"
	"brawlhalla-tracker/internal/resolver"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

type statsAPI interface {
	SearchAccount(ctx context.Context, steamID uint64) (int64, error)
	PlayerRanked(ctx context.Context, bhID int64) (*api.RankedResponse, error)
	PlayerStats(ctx context.Context, bhID int64) (*api.PlayerStatsResponse, error)
	SearchRankings(ctx context.Context, name string) ([]api.RankingEntry, error)
}

type identityResolver interface {
	Resolve(ctx context.Context, input string) (uint64, error)
}

type linkStore interface {
	Get(ctx context.Context, userID int64) (int64, bool, error)
	Set(ctx context.Context, userID, brawlhallaID int64) error
	Delete(ctx context.Context, userID int64) (bool, error)
}

type snapshotStore interface {
	Get(ctx context.Context, brawlhallaID int64, ttl time.Duration) (*domain.RankedStats, bool, error)
	Put(ctx context.Context, brawlhallaID int64, stats *domain.RankedStats) error
}

// Chooser is the capability the command surface supplies for interactive
// disambiguation: given the name matches, it returns the chosen index, or
// ErrDisambiguationCancelled when the user bails out or the prompt times out.
type Chooser func(ctx context.Context, candidates []domain.PlayerSearchResult) (int, error)

// StatsService orchestrates identity resolution, stats fetching and link
// management for the command surface.
type StatsService struct {
	bh        statsAPI
	resolver  identityResolver
	links     linkStore
	snapshots snapshotStore
	cacheTTL  time.Duration
	logger    zerolog.Logger
}

func NewStatsService(
	bh *api.BrawlhallaClient,
	res *resolver.Resolver,
	links *repository.LinkRepository,
	snapshots *repository.SnapshotRepository,
	cfg *config.Config,
	logger zerolog.Logger,
) *StatsService {
	return newStatsService(bh, res, links, snapshots, cfg.CacheTTL, logger)
}

func newStatsService(
	bh statsAPI,
	res identityResolver,
	links linkStore,
	snapshots snapshotStore,
	cacheTTL time.Duration,
	logger zerolog.Logger,
) *StatsService {
	return &StatsService{
		bh:        bh,
		resolver:  res,
		links:     links,
		snapshots: snapshots,
		cacheTTL:  cacheTTL,
		logger:    logger,
	}
}

// ResolveAccount maps free-form input to a Brawlhalla account id through the
// Steam identity chain.
func (s *StatsService) ResolveAccount(ctx context.Context, input string) (int64, error) {
	apiCtx, cancel := context.WithTimeout(ctx, constants.ExternalAPITimeout)
	defer cancel()

	steamID, err := s.resolver.Resolve(apiCtx, input)
	if err != nil {
		return 0, fmt.Errorf("failed to resolve input: %w", err)
	}
	if steamID == 0 {
		return 0, ErrInvalidProfileRef
	}

	bhID, err := s.bh.SearchAccount(apiCtx, steamID)
	if err != nil {
		return 0, fmt.Errorf("failed to search account for steam id %d: %w", steamID, err)
	}
	if bhID == 0 {
		return 0, ErrNoGameProfile
	}

	s.logger.Debug().Uint64("steam_id", steamID).Int64("brawlhalla_id", bhID).Msg("account resolved")
	return bhID, nil
}

// ResolveAccountInteractive resolves like ResolveAccount, but on a
// resolution failure it falls back to a ladder name search and lets the
// supplied chooser pick among the matches.
func (s *StatsService) ResolveAccountInteractive(ctx context.Context, input string, choose Chooser) (int64, error) {
	bhID, err := s.ResolveAccount(ctx, input)
	if err == nil {
		return bhID, nil
	}
	if !errors.Is(err, ErrInvalidProfileRef) {
		return 0, err
	}

	candidates, serr := s.SearchPlayers(ctx, input)
	if serr != nil {
		return 0, serr
	}
	if len(candidates) == 0 {
		return 0, ErrInvalidProfileRef
	}

	idx, cerr := choose(ctx, candidates)
	if cerr != nil {
		return 0, cerr
	}
	if idx < 0 || idx >= len(candidates) {
		return 0, ErrInvalidProfileRef
	}
	return candidates[idx].BrawlhallaID, nil
}

// GetRankedStats runs the "get ranked stats" operation for a chat user.
// With an empty target it falls back to the user's stored link; otherwise
// the target is resolved first. refresh bypasses the snapshot cache.
func (s *StatsService) GetRankedStats(ctx context.Context, userID int64, target string, refresh bool) (*domain.RankedStats, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	var bhID int64
	var err error
	if target == "" {
		var found bool
		bhID, found, err = s.links.Get(ctx, userID)
		if err != nil {
			return nil, err
		}
		if !found {
			return nil, ErrNoLinkedAccount
		}
	} else {
		bhID, err = s.ResolveAccount(ctx, target)
		if err != nil {
			return nil, err
		}
	}

	return s.GetRankedByID(ctx, bhID, refresh)
}

// GetRankedByID fetches parsed ranked stats for a known account id,
// consulting the snapshot cache first.
func (s *StatsService) GetRankedByID(ctx context.Context, bhID int64, refresh bool) (*domain.RankedStats, error) {
	if !refresh {
		cached, fresh, err := s.snapshots.Get(ctx, bhID, s.cacheTTL)
		if err != nil {
			s.logger.Warn().Err(err).Int64("brawlhalla_id", bhID).Msg("snapshot lookup failed, fetching fresh")
		} else if fresh {
			return cached, nil
		}
	}

	apiCtx, cancel := context.WithTimeout(ctx, constants.ExternalAPITimeout)
	defer cancel()

	res, err := s.bh.PlayerRanked(apiCtx, bhID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch ranked stats for %d: %w", bhID, err)
	}

	stats := rankedFromAPI(res)
	if stats.NoData {
		return nil, ErrNoRankedData
	}

	if err := s.snapshots.Put(ctx, bhID, stats); err != nil {
		s.logger.Warn().Err(err).Int64("brawlhalla_id", bhID).Msg("failed to store snapshot")
	}

	s.logger.Info().Int64("brawlhalla_id", bhID).Str("name", stats.Name).Msg("ranked stats fetched")
	return stats, nil
}

// GetRankedSummary is GetRankedStats plus summary derivation.
func (s *StatsService) GetRankedSummary(ctx context.Context, userID int64, target string, refresh bool) (*domain.Summary, error) {
	stats, err := s.GetRankedStats(ctx, userID, target, refresh)
	if err != nil {
		return nil, err
	}
	return domain.NewSummary(stats), nil
}

// Profile bundles the ranked summary with the general-stats overview.
type Profile struct {
	Summary  *domain.Summary         `json:"summary"`
	Overview *domain.ProfileOverview `json:"overview"`
}

// GetProfile fetches ranked and general stats for the target concurrently.
func (s *StatsService) GetProfile(ctx context.Context, userID int64, target string, refresh bool) (*Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	var bhID int64
	var err error
	if target == "" {
		var found bool
		bhID, found, err = s.links.Get(ctx, userID)
		if err != nil {
			return nil, err
		}
		if !found {
			return nil, ErrNoLinkedAccount
		}
	} else {
		bhID, err = s.ResolveAccount(ctx, target)
		if err != nil {
			return nil, err
		}
	}

	var stats *domain.RankedStats
	var overview *domain.ProfileOverview

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var rerr error
		stats, rerr = s.GetRankedByID(gctx, bhID, refresh)
		return rerr
	})
	g.Go(func() error {
		apiCtx, apiCancel := context.WithTimeout(gctx, constants.ExternalAPITimeout)
		defer apiCancel()

		res, serr := s.bh.PlayerStats(apiCtx, bhID)
		if serr != nil {
			return fmt.Errorf("failed to fetch player stats for %d: %w", bhID, serr)
		}
		overview = overviewFromAPI(res)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Profile{Summary: domain.NewSummary(stats), Overview: overview}, nil
}

// LinkAccount resolves the input and stores the link, returning the linked
// account id.
func (s *StatsService) LinkAccount(ctx context.Context, userID int64, input string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	bhID, err := s.ResolveAccount(ctx, input)
	if err != nil {
		return 0, err
	}
	if err := s.links.Set(ctx, userID, bhID); err != nil {
		return 0, err
	}
	return bhID, nil
}

// UnlinkAccount removes the stored link, reporting ErrNoLinkedAccount when
// there was none.
func (s *StatsService) UnlinkAccount(ctx context.Context, userID int64) error {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	deleted, err := s.links.Delete(ctx, userID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNoLinkedAccount
	}
	s.logger.Info().Int64("user_id", userID).Msg("account unlinked")
	return nil
}

// SearchPlayers looks a name up on the 1v1 ladder for the disambiguation
// flow.
func (s *StatsService) SearchPlayers(ctx context.Context, name string) ([]domain.PlayerSearchResult, error) {
	apiCtx, cancel := context.WithTimeout(ctx, constants.ExternalAPITimeout)
	defer cancel()

	entries, err := s.bh.SearchRankings(apiCtx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to search rankings for %q: %w", name, err)
	}
	return searchResultsFromAPI(entries, constants.DisambiguationLimit), nil
}
