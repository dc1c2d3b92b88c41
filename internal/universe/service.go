package universe

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"sectorgen/internal/shared/config"
	"sectorgen/internal/shared/database"
	"sectorgen/internal/shared/errors"
	"sectorgen/internal/warpgraph"

	"golang.org/x/sync/errgroup"
)

const sharedUniverseName = "Shared Universe"

type Service struct {
	repo     *Repository
	cache    GraphCache
	params   warpgraph.Params
	settings config.UniverseConfig
	logger   *slog.Logger

	createMu sync.Mutex
	memo     sync.Map // universe id -> warpgraph.AdjacencyList
}

// NewService wires the universe service. cache may be nil.
func NewService(repo *Repository, cache GraphCache, settings config.UniverseConfig, params warpgraph.Params, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		cache:    cache,
		params:   params,
		settings: settings,
		logger:   logger,
	}
}

// EnsureSharedUniverse generates the shared universe unless one is already persisted.
func (s *Service) EnsureSharedUniverse(ctx context.Context) (*Universe, error) {
	logger := s.logger.With("component", "universe_service", "operation", "ensure_shared_universe")

	existing, err := s.repo.GetSharedUniverse(ctx)
	if err != nil {
		return nil, errors.WrapInternal("failed to look up shared universe", err)
	}
	if existing != nil {
		logger.Info("Shared universe already exists", "universe_id", existing.ID, "sectors", existing.SectorCount)
		return existing, nil
	}

	universe, err := s.CreateSharedUniverse(ctx, s.settings.SectorCount, s.settings.Seed)
	if errors.Is(err, errors.ErrorTypeConflict) {
		return s.repo.GetSharedUniverse(ctx)
	}
	return universe, err
}

func (s *Service) CreateSharedUniverse(ctx context.Context, totalSectors int, seed int64) (*Universe, error) {
	logger := s.logger.With(
		"component", "universe_service",
		"operation", "create_shared_universe",
		"sectors", totalSectors,
		"seed", seed,
	)
	logger.Info("Creating shared universe")

	s.createMu.Lock()
	defer s.createMu.Unlock()

	existing, err := s.repo.GetSharedUniverse(ctx)
	if err != nil {
		return nil, errors.WrapInternal("failed to look up shared universe", err)
	}
	if existing != nil {
		logger.Warn("Shared universe already exists", "universe_id", existing.ID)
		return nil, errors.Conflictf("shared universe %d already exists", existing.ID)
	}

	universe := &Universe{
		Name:        sharedUniverseName,
		Kind:        KindShared,
		Seed:        seed,
		SectorCount: totalSectors,
	}
	return s.create(ctx, universe, func(maxID int) int { return maxID })
}

// CreateSinglePlayerUniverse generates a private universe for playerID. Its
// sectors are stored at offset+id where offset is one past the highest
// persisted sector id, so it never collides with existing universes.
func (s *Service) CreateSinglePlayerUniverse(ctx context.Context, playerID int) (*Universe, error) {
	logger := s.logger.With(
		"component", "universe_service",
		"operation", "create_single_player_universe",
		"player_id", playerID,
	)
	logger.Info("Creating single-player universe")

	if playerID <= 0 {
		return nil, errors.Validationf("invalid player id %d", playerID)
	}

	s.createMu.Lock()
	defer s.createMu.Unlock()

	existing, err := s.repo.GetSinglePlayerUniverse(ctx, playerID)
	if err != nil {
		return nil, errors.WrapInternal("failed to look up single-player universe", err)
	}
	if existing != nil {
		logger.Warn("Player already owns a universe", "universe_id", existing.ID)
		return nil, errors.Conflictf("player %d already owns universe %d", playerID, existing.ID)
	}

	owner := playerID
	universe := &Universe{
		Name:          fmt.Sprintf("Player %d Universe", playerID),
		Kind:          KindSinglePlayer,
		Seed:          s.settings.SinglePlayerSeed,
		SectorCount:   s.settings.SinglePlayerSectorCount,
		OwnerPlayerID: &owner,
	}
	return s.create(ctx, universe, func(maxID int) int { return maxID + 1 })
}

// create generates the graph, then persists it in one transaction while the
// adjacency is pushed to the cache.
func (s *Service) create(ctx context.Context, universe *Universe, offsetFor func(maxID int) int) (*Universe, error) {
	logger := s.logger.With(
		"component", "universe_service",
		"operation", "create",
		"kind", universe.Kind,
		"seed", universe.Seed,
		"sectors", universe.SectorCount,
	)

	started := time.Now()
	graph, err := warpgraph.GenerateWithParams(universe.SectorCount, universe.Seed, s.params)
	if err != nil {
		if errors.GetType(err) == errors.ErrorTypeValidation {
			return nil, err
		}
		logger.Error("Generated graph failed verification", "error", err)
		return nil, errors.WrapInvariant("generated universe failed verification", err)
	}
	observeGeneration(universe.Kind, started, graph)

	universe.RegionCount = graph.Stats.Regions
	universe.StarMallCount = graph.Stats.StarMalls
	universe.SeedPlanetCount = graph.Stats.SeedPlanets
	universe.OneWayCount = graph.Stats.OneWayLanes

	logger.Info("Universe graph generated",
		"duration", time.Since(started),
		"regions", graph.Stats.Regions,
		"star_malls", graph.Stats.StarMalls,
		"seed_planets", graph.Stats.SeedPlanets,
		"one_way_lanes", graph.Stats.OneWayLanes,
		"restored_lanes", graph.Stats.RestoredLanes,
		"bridge_lanes", graph.Stats.BridgeLanes,
		"harmony_sectors", graph.Stats.HarmonySectors,
	)

	err = s.repo.WithTx(ctx, func(tx *database.Tx) error {
		maxID, err := s.repo.MaxSectorID(ctx, tx)
		if err != nil {
			return err
		}
		universe.IDOffset = offsetFor(maxID)

		if err := s.repo.CreateUniverse(ctx, universe, tx); err != nil {
			return err
		}

		sectors, edges := toRecords(universe.ID, universe.IDOffset, graph)

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			if err := s.repo.InsertSectors(gctx, sectors, tx); err != nil {
				return err
			}
			return s.repo.InsertEdges(gctx, edges, tx)
		})
		g.Go(func() error {
			s.warmCache(gctx, universe.ID, edges)
			return nil
		})
		return g.Wait()
	})
	if err != nil {
		if universe.ID != 0 {
			s.evict(universe.ID)
		}
		logger.Error("Failed to persist universe", "error", err)
		return nil, errors.WrapInternal("failed to persist universe", err)
	}

	persisted, err := s.repo.GetUniverse(ctx, universe.ID)
	if err != nil || persisted == nil {
		logger.Warn("Failed to reload universe after creation", "universe_id", universe.ID, "error", err)
		persisted = universe
	}

	logger.Info("Universe persisted",
		"universe_id", persisted.ID,
		"id_offset", persisted.IDOffset,
		"first_sector", persisted.FirstSectorID(),
		"last_sector", persisted.LastSectorID(),
		"duration", time.Since(started),
	)
	return persisted, nil
}

// warmCache memoises the adjacency and pushes it to the shared cache. Cache
// failures are logged, never returned.
func (s *Service) warmCache(ctx context.Context, universeID int, edges []EdgeRecord) {
	lanes := make([]warpgraph.Edge, len(edges))
	for i, e := range edges {
		lanes[i] = warpgraph.Edge{From: e.FromSector, To: e.ToSector, OneWay: e.OneWay}
	}
	adj := warpgraph.NewAdjacencyList(lanes)
	s.memo.Store(universeID, adj)

	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, universeID, adj); err != nil {
		s.logger.Warn("Failed to warm graph cache", "universe_id", universeID, "error", err)
	}
}

func (s *Service) evict(universeID int) {
	s.memo.Delete(universeID)
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(context.Background(), universeID); err != nil {
		s.logger.Warn("Failed to evict graph cache", "universe_id", universeID, "error", err)
	}
}

func (s *Service) GetUniverse(ctx context.Context, id int) (*Universe, error) {
	universe, err := s.repo.GetUniverse(ctx, id)
	if err != nil {
		return nil, errors.WrapInternal("failed to get universe", err)
	}
	if universe == nil {
		return nil, errors.NotFoundf("universe %d not found", id)
	}
	return universe, nil
}

func (s *Service) ListUniverses(ctx context.Context) ([]Universe, error) {
	universes, err := s.repo.ListUniverses(ctx)
	if err != nil {
		return nil, errors.WrapInternal("failed to list universes", err)
	}
	if universes == nil {
		universes = []Universe{}
	}
	return universes, nil
}

// GetSector returns a persisted sector together with its outgoing lanes.
func (s *Service) GetSector(ctx context.Context, sectorID int) (*SectorDetail, error) {
	sector, err := s.repo.GetSector(ctx, sectorID)
	if err != nil {
		return nil, errors.WrapInternal("failed to get sector", err)
	}
	if sector == nil {
		return nil, errors.NotFoundf("sector %d not found", sectorID)
	}

	lanes, err := s.repo.GetLanes(ctx, sectorID)
	if err != nil {
		return nil, errors.WrapInternal("failed to get lanes", err)
	}

	return &SectorDetail{SectorRecord: *sector, Lanes: lanes}, nil
}

// FindRoute returns the fewest-hop path between two persisted sectors of a
// universe. maxDepth <= 0 falls back to the configured default.
func (s *Service) FindRoute(ctx context.Context, universeID, from, to, maxDepth int) (*Route, error) {
	logger := s.logger.With(
		"component", "universe_service",
		"operation", "find_route",
		"universe_id", universeID,
		"from", from,
		"to", to,
	)

	universe, err := s.GetUniverse(ctx, universeID)
	if err != nil {
		return nil, err
	}
	for _, id := range []int{from, to} {
		if !universe.Contains(id) {
			return nil, errors.NotFoundf("sector %d is not part of universe %d", id, universeID)
		}
	}

	if maxDepth <= 0 {
		maxDepth = s.params.MaxPathDepth
	}

	adj, err := s.adjacency(ctx, universeID)
	if err != nil {
		return nil, err
	}

	started := time.Now()
	path := warpgraph.FindShortestPath(adj, from, to, maxDepth)
	observeRoute(started, path != nil)

	if path == nil {
		logger.Debug("No route within depth", "max_depth", maxDepth)
		return nil, errors.NotFoundf("no route from sector %d to sector %d within %d hops", from, to, maxDepth)
	}

	logger.Debug("Route found", "hops", len(path)-1)
	return &Route{
		UniverseID: universeID,
		From:       from,
		To:         to,
		Hops:       len(path) - 1,
		Path:       path,
	}, nil
}

// adjacency resolves a universe graph from the in-process memo, then the
// shared cache, then the database.
func (s *Service) adjacency(ctx context.Context, universeID int) (warpgraph.AdjacencyList, error) {
	if v, ok := s.memo.Load(universeID); ok {
		return v.(warpgraph.AdjacencyList), nil
	}

	if s.cache != nil {
		adj, ok, err := s.cache.Get(ctx, universeID)
		if err != nil {
			s.logger.Warn("Graph cache read failed, falling back to database", "universe_id", universeID, "error", err)
		} else if ok {
			s.memo.Store(universeID, adj)
			return adj, nil
		}
	}

	edges, err := s.repo.LoadEdges(ctx, universeID)
	if err != nil {
		return nil, errors.WrapInternal("failed to load universe graph", err)
	}
	adj := warpgraph.NewAdjacencyList(edges)
	s.memo.Store(universeID, adj)

	if s.cache != nil {
		if err := s.cache.Set(ctx, universeID, adj); err != nil {
			s.logger.Warn("Failed to populate graph cache", "universe_id", universeID, "error", err)
		}
	}
	return adj, nil
}
