package universe

import (
	"context"
	"sync"
	"testing"

	"sectorgen/internal/shared/config"
	"sectorgen/internal/shared/errors"
	"sectorgen/internal/universe/universetest"
	"sectorgen/internal/warpgraph"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCache struct {
	mu      sync.Mutex
	entries map[int]warpgraph.AdjacencyList
	gets    int
	sets    int
	setErr  error
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[int]warpgraph.AdjacencyList)}
}

func (c *fakeCache) Get(_ context.Context, universeID int) (warpgraph.AdjacencyList, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	adj, ok := c.entries[universeID]
	return adj, ok, nil
}

func (c *fakeCache) Set(_ context.Context, universeID int, adj warpgraph.AdjacencyList) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets++
	if c.setErr != nil {
		return c.setErr
	}
	c.entries[universeID] = adj
	return nil
}

func (c *fakeCache) Delete(_ context.Context, universeID int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, universeID)
	return nil
}

func testSettings() config.UniverseConfig {
	return config.UniverseConfig{
		SectorCount:             200,
		Seed:                    7,
		SinglePlayerSectorCount: 120,
		SinglePlayerSeed:        1337,
	}
}

func newTestService(t *testing.T, cache GraphCache) (*Service, *Repository) {
	t.Helper()
	repo := NewRepository(universetest.OpenDB(t), discardLogger())
	return NewService(repo, cache, testSettings(), warpgraph.DefaultParams(), discardLogger()), repo
}

func TestEnsureSharedUniverseIsIdempotent(t *testing.T) {
	ctx := context.Background()
	cache := newFakeCache()
	svc, _ := newTestService(t, cache)

	first, err := svc.EnsureSharedUniverse(ctx)
	require.NoError(t, err)
	assert.Equal(t, KindShared, first.Kind)
	assert.Equal(t, 200, first.SectorCount)
	assert.Equal(t, int64(7), first.Seed)
	assert.Equal(t, 0, first.IDOffset)
	assert.Equal(t, 1, first.FirstSectorID())
	assert.Equal(t, 200, first.LastSectorID())
	assert.Equal(t, 1, cache.sets)

	second, err := svc.EnsureSharedUniverse(ctx)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	universes, err := svc.ListUniverses(ctx)
	require.NoError(t, err)
	assert.Len(t, universes, 1)
}

func TestCreateSharedUniverseConflict(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, nil)

	_, err := svc.CreateSharedUniverse(ctx, 50, 1)
	require.NoError(t, err)

	_, err = svc.CreateSharedUniverse(ctx, 50, 2)
	require.Error(t, err)
	assert.Equal(t, errors.ErrorTypeConflict, errors.GetType(err))
}

func TestCreateSharedUniverseRejectsInvalidSize(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, nil)

	_, err := svc.CreateSharedUniverse(ctx, 3, 1)
	require.Error(t, err)
	assert.Equal(t, errors.ErrorTypeValidation, errors.GetType(err))

	universes, err := svc.ListUniverses(ctx)
	require.NoError(t, err)
	assert.Empty(t, universes, "nothing is persisted when generation fails")
}

func TestSinglePlayerOffsetContract(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService(t, nil)

	shared, err := svc.EnsureSharedUniverse(ctx)
	require.NoError(t, err)

	p1, err := svc.CreateSinglePlayerUniverse(ctx, 1)
	require.NoError(t, err)
	p2, err := svc.CreateSinglePlayerUniverse(ctx, 2)
	require.NoError(t, err)

	assert.Equal(t, shared.LastSectorID()+1, p1.IDOffset)
	assert.Equal(t, p1.LastSectorID()+1, p2.IDOffset)
	assert.Equal(t, p1.IDOffset+1, p1.FirstSectorID())
	assert.Greater(t, p1.FirstSectorID(), shared.LastSectorID())
	assert.Greater(t, p2.FirstSectorID(), p1.LastSectorID())
	require.NotNil(t, p1.OwnerPlayerID)
	assert.Equal(t, 1, *p1.OwnerPlayerID)

	e1, err := repo.LoadEdges(ctx, p1.ID)
	require.NoError(t, err)
	e2, err := repo.LoadEdges(ctx, p2.ID)
	require.NoError(t, err)
	require.Len(t, e2, len(e1))
	for i := range e1 {
		assert.Equal(t, e1[i].From-p1.IDOffset, e2[i].From-p2.IDOffset)
		assert.Equal(t, e1[i].To-p1.IDOffset, e2[i].To-p2.IDOffset)
		assert.Equal(t, e1[i].OneWay, e2[i].OneWay)
		assert.True(t, p1.Contains(e1[i].From) && p1.Contains(e1[i].To))
		assert.True(t, p2.Contains(e2[i].From) && p2.Contains(e2[i].To))
	}

	g, err := warpgraph.Generate(120, 1337)
	require.NoError(t, err)
	assert.Len(t, e1, len(g.Edges()))
}

func TestCreateSinglePlayerUniverseValidation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, nil)

	_, err := svc.CreateSinglePlayerUniverse(ctx, 0)
	assert.Equal(t, errors.ErrorTypeValidation, errors.GetType(err))

	_, err = svc.CreateSinglePlayerUniverse(ctx, 5)
	require.NoError(t, err)
	_, err = svc.CreateSinglePlayerUniverse(ctx, 5)
	assert.Equal(t, errors.ErrorTypeConflict, errors.GetType(err))
}

func TestGetUniverseAndSector(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, nil)

	u, err := svc.EnsureSharedUniverse(ctx)
	require.NoError(t, err)

	got, err := svc.GetUniverse(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = svc.GetUniverse(ctx, u.ID+1)
	assert.Equal(t, errors.ErrorTypeNotFound, errors.GetType(err))

	g, err := warpgraph.Generate(200, 7)
	require.NoError(t, err)

	detail, err := svc.GetSector(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, detail.SectorID)
	assert.Equal(t, g.Sector(1).Type, detail.Type)
	assert.Len(t, detail.Lanes, g.OutDegree(1))

	_, err = svc.GetSector(ctx, 999)
	assert.Equal(t, errors.ErrorTypeNotFound, errors.GetType(err))
}

func TestFindRouteMatchesGenerator(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, nil)

	_, err := svc.EnsureSharedUniverse(ctx)
	require.NoError(t, err)
	p1, err := svc.CreateSinglePlayerUniverse(ctx, 1)
	require.NoError(t, err)

	g, err := warpgraph.Generate(120, 1337)
	require.NoError(t, err)
	_, edges := g.Translate(p1.IDOffset)
	adj := warpgraph.NewAdjacencyList(edges)

	from, to := p1.FirstSectorID(), p1.LastSectorID()
	route, err := svc.FindRoute(ctx, p1.ID, from, to, 0)
	require.NoError(t, err)

	assert.Equal(t, warpgraph.FindShortestPath(adj, from, to, warpgraph.DefaultMaxPathDepth), route.Path)
	assert.Equal(t, len(route.Path)-1, route.Hops)
	assert.Equal(t, from, route.Path[0])
	assert.Equal(t, to, route.Path[len(route.Path)-1])

	same, err := svc.FindRoute(ctx, p1.ID, from, from, 0)
	require.NoError(t, err)
	assert.Equal(t, []int{from}, same.Path)
	assert.Equal(t, 0, same.Hops)
}

func TestFindRouteErrors(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, nil)

	u, err := svc.EnsureSharedUniverse(ctx)
	require.NoError(t, err)

	_, err = svc.FindRoute(ctx, u.ID, 1, u.LastSectorID()+1, 0)
	assert.Equal(t, errors.ErrorTypeNotFound, errors.GetType(err), "sector outside the universe")

	_, err = svc.FindRoute(ctx, u.ID+5, 1, 2, 0)
	assert.Equal(t, errors.ErrorTypeNotFound, errors.GetType(err), "unknown universe")

	detail, err := svc.GetSector(ctx, 1)
	require.NoError(t, err)
	neighbors := make(map[int]bool)
	for _, l := range detail.Lanes {
		neighbors[l.To] = true
	}
	far := 0
	for id := 2; id <= u.LastSectorID(); id++ {
		if !neighbors[id] {
			far = id
			break
		}
	}
	require.NotZero(t, far)

	_, err = svc.FindRoute(ctx, u.ID, 1, far, 1)
	assert.Equal(t, errors.ErrorTypeNotFound, errors.GetType(err), "unreachable within one hop")
}

func TestFindRouteUsesCacheBeforeDatabase(t *testing.T) {
	ctx := context.Background()
	cache := newFakeCache()
	db := universetest.OpenDB(t)
	repo := NewRepository(db, discardLogger())

	creator := NewService(repo, cache, testSettings(), warpgraph.DefaultParams(), discardLogger())
	u, err := creator.EnsureSharedUniverse(ctx)
	require.NoError(t, err)
	require.Contains(t, cache.entries, u.ID)

	// a fresh service has an empty memo, so the first lookup goes to the cache
	reader := NewService(repo, cache, testSettings(), warpgraph.DefaultParams(), discardLogger())
	_, err = reader.FindRoute(ctx, u.ID, 1, 2, 0)
	require.NoError(t, err)
	_, err = reader.FindRoute(ctx, u.ID, 2, 3, 0)
	require.NoError(t, err)

	assert.Equal(t, 1, cache.gets, "second lookup is served from memory")
}

func TestFindRouteLoadsFromDatabaseOnCacheMiss(t *testing.T) {
	ctx := context.Background()
	db := universetest.OpenDB(t)
	repo := NewRepository(db, discardLogger())

	creator := NewService(repo, nil, testSettings(), warpgraph.DefaultParams(), discardLogger())
	u, err := creator.EnsureSharedUniverse(ctx)
	require.NoError(t, err)

	cache := newFakeCache()
	reader := NewService(repo, cache, testSettings(), warpgraph.DefaultParams(), discardLogger())
	fromDB, err := reader.FindRoute(ctx, u.ID, 1, u.LastSectorID(), 0)
	require.NoError(t, err)

	fromMemo, err := creator.FindRoute(ctx, u.ID, 1, u.LastSectorID(), 0)
	require.NoError(t, err)

	assert.Equal(t, fromMemo.Path, fromDB.Path, "route must not depend on where the graph was loaded from")
	assert.Equal(t, 1, cache.gets)
	assert.Equal(t, 1, cache.sets, "database load repopulates the cache")
}

func TestCacheFailureDoesNotFailCreation(t *testing.T) {
	ctx := context.Background()
	cache := newFakeCache()
	cache.setErr = assert.AnError
	svc, _ := newTestService(t, cache)

	u, err := svc.EnsureSharedUniverse(ctx)
	require.NoError(t, err)
	assert.NotZero(t, u.ID)
	assert.Empty(t, cache.entries)
}
