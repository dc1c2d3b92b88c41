package universe

import (
	"testing"

	"sectorgen/internal/warpgraph"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUniverseSectorRange(t *testing.T) {
	u := &Universe{IDOffset: 201, SectorCount: 120}

	assert.Equal(t, 202, u.FirstSectorID())
	assert.Equal(t, 321, u.LastSectorID())
	assert.True(t, u.Contains(202))
	assert.True(t, u.Contains(321))
	assert.False(t, u.Contains(201))
	assert.False(t, u.Contains(322))
}

func TestToRecordsAppliesOffset(t *testing.T) {
	g, err := warpgraph.Generate(30, 5)
	require.NoError(t, err)

	sectors, edges := toRecords(9, 500, g)

	require.Len(t, sectors, 30)
	for i, s := range sectors {
		assert.Equal(t, 501+i, s.SectorID)
		assert.Equal(t, 9, s.UniverseID)
		assert.Equal(t, g.Sectors[i].Type, s.Type)
		assert.Equal(t, g.Sectors[i].RegionID, s.RegionID)
	}
	require.Len(t, edges, len(g.Edges()))
	for i, e := range g.Edges() {
		assert.Equal(t, e.From+500, edges[i].FromSector)
		assert.Equal(t, e.To+500, edges[i].ToSector)
		assert.Equal(t, e.OneWay, edges[i].OneWay)
	}
}
