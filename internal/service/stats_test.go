package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"brawlhalla-tracker/internal/api"
	"brawlhalla-tracker/internal/domain"

	"github.com/rs/zerolog"
)

type fakeStatsAPI struct {
	accounts      map[uint64]int64
	ranked        map[int64]*api.RankedResponse
	playerStats   map[int64]*api.PlayerStatsResponse
	rankings      []api.RankingEntry
	rankedCalls   int
	searchCalls   int
	rankingsCalls int
}

func (f *fakeStatsAPI) SearchAccount(_ context.Context, steamID uint64) (int64, error) {
	f.searchCalls++
	return f.accounts[steamID], nil
}

func (f *fakeStatsAPI) PlayerRanked(_ context.Context, bhID int64) (*api.RankedResponse, error) {
	f.rankedCalls++
	return f.ranked[bhID], nil
}

func (f *fakeStatsAPI) PlayerStats(_ context.Context, bhID int64) (*api.PlayerStatsResponse, error) {
	return f.playerStats[bhID], nil
}

func (f *fakeStatsAPI) SearchRankings(_ context.Context, _ string) ([]api.RankingEntry, error) {
	f.rankingsCalls++
	return f.rankings, nil
}

type fakeResolver struct {
	ids map[string]uint64
}

func (f *fakeResolver) Resolve(_ context.Context, input string) (uint64, error) {
	return f.ids[input], nil
}

type fakeLinks struct {
	links map[int64]int64
}

func (f *fakeLinks) Get(_ context.Context, userID int64) (int64, bool, error) {
	bhID, ok := f.links[userID]
	return bhID, ok, nil
}

func (f *fakeLinks) Set(_ context.Context, userID, bhID int64) error {
	f.links[userID] = bhID
	return nil
}

func (f *fakeLinks) Delete(_ context.Context, userID int64) (bool, error) {
	_, ok := f.links[userID]
	delete(f.links, userID)
	return ok, nil
}

type fakeSnapshots struct {
	snapshots map[int64]*domain.RankedStats
	stale     bool
	puts      int
}

func (f *fakeSnapshots) Get(_ context.Context, bhID int64, _ time.Duration) (*domain.RankedStats, bool, error) {
	if f.stale {
		return nil, false, nil
	}
	stats, ok := f.snapshots[bhID]
	return stats, ok, nil
}

func (f *fakeSnapshots) Put(_ context.Context, bhID int64, stats *domain.RankedStats) error {
	f.snapshots[bhID] = stats
	f.puts++
	return nil
}

func rankedResponse() *api.RankedResponse {
	return &api.RankedResponse{
		Name:       "Player",
		Rating:     1500,
		PeakRating: 1600,
		Tier:       "Platinum 1",
		Wins:       30,
		Games:      50,
		Region:     "EU",
		Legends: []api.LegendEntry{
			{LegendNameKey: "bodvar", Rating: 1500, PeakRating: 1600, Tier: "Platinum 1", Wins: 20, Games: 30},
			{LegendNameKey: "sir roland", Rating: 1300, PeakRating: 1350, Tier: "Gold 3", Wins: 10, Games: 20},
		},
	}
}

func newTestService(bh *fakeStatsAPI, res *fakeResolver, links *fakeLinks, snaps *fakeSnapshots) *StatsService {
	return newStatsService(bh, res, links, snaps, 5*time.Minute, zerolog.Nop())
}

func TestRankedFromAPI(t *testing.T) {
	stats := rankedFromAPI(rankedResponse())

	if stats.NoData {
		t.Fatal("NoData = true for a populated payload")
	}
	if len(stats.Legends) != 2 {
		t.Fatalf("len(Legends) = %d, want 2", len(stats.Legends))
	}
	if stats.Legends[0].Name != "Bodvar" {
		t.Errorf("legend name = %q, want Bodvar", stats.Legends[0].Name)
	}
	if stats.Legends[1].Name != "Sir Roland" {
		t.Errorf("legend name = %q, want Sir Roland", stats.Legends[1].Name)
	}
	if len(stats.Teams) != 0 {
		t.Errorf("len(Teams) = %d, want 0", len(stats.Teams))
	}

	empty := rankedFromAPI(nil)
	if !empty.NoData {
		t.Error("NoData = false for a nil payload")
	}
}

func TestGetRankedStatsWithTarget(t *testing.T) {
	bh := &fakeStatsAPI{
		accounts: map[uint64]int64{76561197960287930: 555},
		ranked:   map[int64]*api.RankedResponse{555: rankedResponse()},
	}
	res := &fakeResolver{ids: map[string]uint64{"76561197960287930": 76561197960287930}}
	snaps := &fakeSnapshots{snapshots: map[int64]*domain.RankedStats{}}
	svc := newTestService(bh, res, &fakeLinks{links: map[int64]int64{}}, snaps)

	stats, err := svc.GetRankedStats(context.Background(), 1, "76561197960287930", false)
	if err != nil {
		t.Fatalf("GetRankedStats failed: %v", err)
	}
	if stats.Name != "Player" {
		t.Errorf("Name = %q, want Player", stats.Name)
	}
	if snaps.puts != 1 {
		t.Errorf("snapshot puts = %d, want 1", snaps.puts)
	}
}

func TestGetRankedStatsUsesStoredLink(t *testing.T) {
	bh := &fakeStatsAPI{ranked: map[int64]*api.RankedResponse{555: rankedResponse()}}
	links := &fakeLinks{links: map[int64]int64{1: 555}}
	snaps := &fakeSnapshots{snapshots: map[int64]*domain.RankedStats{}}
	svc := newTestService(bh, &fakeResolver{}, links, snaps)

	stats, err := svc.GetRankedStats(context.Background(), 1, "", false)
	if err != nil {
		t.Fatalf("GetRankedStats via stored link failed: %v", err)
	}
	if stats.Name != "Player" {
		t.Errorf("Name = %q, want Player", stats.Name)
	}
	if bh.searchCalls != 0 {
		t.Errorf("searchCalls = %d, want 0 (stored link, no resolution)", bh.searchCalls)
	}
}

func TestGetRankedStatsErrorKinds(t *testing.T) {
	bh := &fakeStatsAPI{
		accounts: map[uint64]int64{111: 555},
		ranked:   map[int64]*api.RankedResponse{},
	}
	res := &fakeResolver{ids: map[string]uint64{"known": 111, "orphan": 222}}
	svc := newTestService(bh, res, &fakeLinks{links: map[int64]int64{}}, &fakeSnapshots{snapshots: map[int64]*domain.RankedStats{}})
	ctx := context.Background()

	if _, err := svc.GetRankedStats(ctx, 1, "", false); !errors.Is(err, ErrNoLinkedAccount) {
		t.Errorf("no stored link: err = %v, want ErrNoLinkedAccount", err)
	}
	if _, err := svc.GetRankedStats(ctx, 1, "unknown", false); !errors.Is(err, ErrInvalidProfileRef) {
		t.Errorf("unresolvable target: err = %v, want ErrInvalidProfileRef", err)
	}
	if _, err := svc.GetRankedStats(ctx, 1, "orphan", false); !errors.Is(err, ErrNoGameProfile) {
		t.Errorf("no game profile: err = %v, want ErrNoGameProfile", err)
	}
	if _, err := svc.GetRankedStats(ctx, 1, "known", false); !errors.Is(err, ErrNoRankedData) {
		t.Errorf("empty ranked payload: err = %v, want ErrNoRankedData", err)
	}
}

func TestGetRankedByIDCacheBehavior(t *testing.T) {
	bh := &fakeStatsAPI{ranked: map[int64]*api.RankedResponse{555: rankedResponse()}}
	cached := &domain.RankedStats{Name: "Cached", Legends: []domain.LegendStats{{Name: "Ada"}}}
	snaps := &fakeSnapshots{snapshots: map[int64]*domain.RankedStats{555: cached}}
	svc := newTestService(bh, &fakeResolver{}, &fakeLinks{links: map[int64]int64{}}, snaps)
	ctx := context.Background()

	stats, err := svc.GetRankedByID(ctx, 555, false)
	if err != nil {
		t.Fatalf("GetRankedByID failed: %v", err)
	}
	if stats.Name != "Cached" || bh.rankedCalls != 0 {
		t.Errorf("cache hit: name %q, API calls %d; want Cached, 0", stats.Name, bh.rankedCalls)
	}

	stats, err = svc.GetRankedByID(ctx, 555, true)
	if err != nil {
		t.Fatalf("GetRankedByID with refresh failed: %v", err)
	}
	if stats.Name != "Player" || bh.rankedCalls != 1 {
		t.Errorf("refresh: name %q, API calls %d; want Player, 1", stats.Name, bh.rankedCalls)
	}
}

func TestResolveAccountInteractive(t *testing.T) {
	bh := &fakeStatsAPI{
		rankings: []api.RankingEntry{
			{Rank: 1, Name: "gabe", BrawlhallaID: 900, Rating: 2000, Region: "US-E"},
			{Rank: 2, Name: "gabe2", BrawlhallaID: 901, Rating: 1900, Region: "EU"},
		},
	}
	svc := newTestService(bh, &fakeResolver{}, &fakeLinks{links: map[int64]int64{}}, &fakeSnapshots{snapshots: map[int64]*domain.RankedStats{}})
	ctx := context.Background()

	bhID, err := svc.ResolveAccountInteractive(ctx, "gabe", func(_ context.Context, candidates []domain.PlayerSearchResult) (int, error) {
		if len(candidates) != 2 {
			t.Fatalf("len(candidates) = %d, want 2", len(candidates))
		}
		return 1, nil
	})
	if err != nil {
		t.Fatalf("ResolveAccountInteractive failed: %v", err)
	}
	if bhID != 901 {
		t.Errorf("chosen id = %d, want 901", bhID)
	}

	_, err = svc.ResolveAccountInteractive(ctx, "gabe", func(_ context.Context, _ []domain.PlayerSearchResult) (int, error) {
		return 0, ErrDisambiguationCancelled
	})
	if !errors.Is(err, ErrDisambiguationCancelled) {
		t.Errorf("cancelled chooser: err = %v, want ErrDisambiguationCancelled", err)
	}
}

func TestLinkAndUnlinkAccount(t *testing.T) {
	bh := &fakeStatsAPI{accounts: map[uint64]int64{111: 555}}
	res := &fakeResolver{ids: map[string]uint64{"someone": 111}}
	links := &fakeLinks{links: map[int64]int64{}}
	svc := newTestService(bh, res, links, &fakeSnapshots{snapshots: map[int64]*domain.RankedStats{}})
	ctx := context.Background()

	bhID, err := svc.LinkAccount(ctx, 42, "someone")
	if err != nil || bhID != 555 {
		t.Fatalf("LinkAccount = (%d, %v), want (555, nil)", bhID, err)
	}
	if links.links[42] != 555 {
		t.Errorf("stored link = %d, want 555", links.links[42])
	}

	if err := svc.UnlinkAccount(ctx, 42); err != nil {
		t.Fatalf("UnlinkAccount failed: %v", err)
	}
	if err := svc.UnlinkAccount(ctx, 42); !errors.Is(err, ErrNoLinkedAccount) {
		t.Errorf("second unlink: err = %v, want ErrNoLinkedAccount", err)
	}
}

func TestGetProfile(t *testing.T) {
	bh := &fakeStatsAPI{
		ranked: map[int64]*api.RankedResponse{555: rankedResponse()},
		playerStats: map[int64]*api.PlayerStatsResponse{
			555: {Name: "Player", Level: 40, Games: 500, Wins: 260, Clan: &api.ClanInfo{ClanName: "Crew"}},
		},
	}
	links := &fakeLinks{links: map[int64]int64{1: 555}}
	svc := newTestService(bh, &fakeResolver{}, links, &fakeSnapshots{snapshots: map[int64]*domain.RankedStats{}, stale: true})

	profile, err := svc.GetProfile(context.Background(), 1, "", false)
	if err != nil {
		t.Fatalf("GetProfile failed: %v", err)
	}
	if profile.Summary == nil || profile.Summary.Name != "Player" {
		t.Fatalf("Summary = %+v, want Player", profile.Summary)
	}
	if profile.Overview == nil || profile.Overview.Level != 40 || profile.Overview.ClanName != "Crew" {
		t.Errorf("Overview = %+v, want level 40, clan Crew", profile.Overview)
	}
}
