package universe

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"testing"

	"sectorgen/internal/shared/database"
	"sectorgen/internal/universe/universetest"
	"sectorgen/internal/warpgraph"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestRepository(t *testing.T) *Repository {
	t.Helper()
	return NewRepository(universetest.OpenDB(t), discardLogger())
}

func TestPlaceholders(t *testing.T) {
	assert.Equal(t, "($1, $2, $3), ($4, $5, $6)", placeholders(2, 3))
	assert.Equal(t, "($1)", placeholders(1, 1))
}

func TestRepositoryUniverseRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	shared, err := repo.GetSharedUniverse(ctx)
	require.NoError(t, err)
	assert.Nil(t, shared)

	u := &Universe{
		Name:            "Shared Universe",
		Kind:            KindShared,
		Seed:            -42,
		SectorCount:     100,
		RegionCount:     3,
		StarMallCount:   1,
		SeedPlanetCount: 1,
		OneWayCount:     5,
	}
	require.NoError(t, repo.CreateUniverse(ctx, u, nil))
	require.NotZero(t, u.ID)

	got, err := repo.GetUniverse(ctx, u.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, u.Name, got.Name)
	assert.Equal(t, KindShared, got.Kind)
	assert.Equal(t, int64(-42), got.Seed)
	assert.Equal(t, 100, got.SectorCount)
	assert.Equal(t, 3, got.RegionCount)
	assert.Equal(t, 5, got.OneWayCount)
	assert.Nil(t, got.OwnerPlayerID)
	assert.False(t, got.CreatedAt.IsZero())

	shared, err = repo.GetSharedUniverse(ctx)
	require.NoError(t, err)
	require.NotNil(t, shared)
	assert.Equal(t, u.ID, shared.ID)

	missing, err := repo.GetUniverse(ctx, u.ID+100)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestRepositorySinglePlayerLookup(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	owner := 7
	u := &Universe{Name: "Player 7 Universe", Kind: KindSinglePlayer, Seed: 1, SectorCount: 10, IDOffset: 11, OwnerPlayerID: &owner}
	require.NoError(t, repo.CreateUniverse(ctx, u, nil))

	got, err := repo.GetSinglePlayerUniverse(ctx, 7)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.NotNil(t, got.OwnerPlayerID)
	assert.Equal(t, 7, *got.OwnerPlayerID)
	assert.Equal(t, 11, got.IDOffset)

	none, err := repo.GetSinglePlayerUniverse(ctx, 8)
	require.NoError(t, err)
	assert.Nil(t, none)

	dup := &Universe{Name: "again", Kind: KindSinglePlayer, Seed: 1, SectorCount: 10, OwnerPlayerID: &owner}
	assert.Error(t, repo.CreateUniverse(ctx, dup, nil), "one universe per player")
}

func TestRepositoryRejectsSecondSharedUniverse(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	require.NoError(t, repo.CreateUniverse(ctx, &Universe{Name: "a", Kind: KindShared, SectorCount: 10}, nil))
	assert.Error(t, repo.CreateUniverse(ctx, &Universe{Name: "b", Kind: KindShared, SectorCount: 10}, nil))
}

func TestRepositorySectorsAndEdgesRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	// larger than one insert batch
	g, err := warpgraph.Generate(insertBatchSize+150, 3)
	require.NoError(t, err)

	u := &Universe{Name: "Shared Universe", Kind: KindShared, Seed: 3, SectorCount: g.Len(), IDOffset: 1000}
	maxID, err := repo.MaxSectorID(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, maxID)

	sectors, edges := toRecords(0, u.IDOffset, g)
	err = repo.WithTx(ctx, func(tx *database.Tx) error {
		if err := repo.CreateUniverse(ctx, u, tx); err != nil {
			return err
		}
		for i := range sectors {
			sectors[i].UniverseID = u.ID
		}
		for i := range edges {
			edges[i].UniverseID = u.ID
		}
		if err := repo.InsertSectors(ctx, sectors, tx); err != nil {
			return err
		}
		return repo.InsertEdges(ctx, edges, tx)
	})
	require.NoError(t, err)

	maxID, err = repo.MaxSectorID(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, 1000+g.Len(), maxID)

	loaded, err := repo.LoadEdges(ctx, u.ID)
	require.NoError(t, err)
	_, want := g.Translate(1000)
	sort.Slice(want, func(i, j int) bool {
		if want[i].From != want[j].From {
			return want[i].From < want[j].From
		}
		return want[i].To < want[j].To
	})
	assert.Equal(t, want, loaded)

	mall := g.StarMalls()[0]
	sector, err := repo.GetSector(ctx, 1000+mall)
	require.NoError(t, err)
	require.NotNil(t, sector)
	assert.Equal(t, u.ID, sector.UniverseID)
	assert.True(t, sector.HasStarMall)
	assert.Equal(t, warpgraph.SectorTypeProtected, sector.Type)
	assert.Equal(t, g.Sector(mall).RegionID, sector.RegionID)

	lanes, err := repo.GetLanes(ctx, 1000+mall)
	require.NoError(t, err)
	assert.Len(t, lanes, g.OutDegree(mall))
	assert.True(t, sort.SliceIsSorted(lanes, func(i, j int) bool { return lanes[i].To < lanes[j].To }))

	missing, err := repo.GetSector(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, missing)

	none, err := repo.GetLanes(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestRepositoryWithTxRollsBack(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	err := repo.WithTx(ctx, func(tx *database.Tx) error {
		if err := repo.CreateUniverse(ctx, &Universe{Name: "doomed", Kind: KindShared, SectorCount: 10}, tx); err != nil {
			return err
		}
		return assert.AnError
	})
	require.ErrorIs(t, err, assert.AnError)

	universes, err := repo.ListUniverses(ctx)
	require.NoError(t, err)
	assert.Empty(t, universes)
}

func TestRepositoryListUniversesOrdered(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	for i, kind := range []Kind{KindShared, KindSinglePlayer} {
		owner := i + 1
		u := &Universe{Name: string(kind), Kind: kind, SectorCount: 10}
		if kind == KindSinglePlayer {
			u.OwnerPlayerID = &owner
		}
		require.NoError(t, repo.CreateUniverse(ctx, u, nil))
	}

	universes, err := repo.ListUniverses(ctx)
	require.NoError(t, err)
	require.Len(t, universes, 2)
	assert.Less(t, universes[0].ID, universes[1].ID)
	assert.Equal(t, KindShared, universes[0].Kind)
	assert.Equal(t, KindSinglePlayer, universes[1].Kind)
}
