package universe

import (
	"time"

	"sectorgen/internal/warpgraph"
)

type Kind string

const (
	KindShared       Kind = "shared"
	KindSinglePlayer Kind = "single_player"
)

type Universe struct {
	ID              int       `json:"id"`
	Name            string    `json:"name"`
	Kind            Kind      `json:"kind"`
	Seed            int64     `json:"seed"`
	SectorCount     int       `json:"sector_count"`
	IDOffset        int       `json:"id_offset"`
	OwnerPlayerID   *int      `json:"owner_player_id"`
	RegionCount     int       `json:"region_count"`
	StarMallCount   int       `json:"star_mall_count"`
	SeedPlanetCount int       `json:"seed_planet_count"`
	OneWayCount     int       `json:"one_way_count"`
	CreatedAt       time.Time `json:"created_at"`
}

// FirstSectorID is the persisted id of the universe's generated sector 1.
func (u *Universe) FirstSectorID() int {
	return u.IDOffset + 1
}

// LastSectorID is the persisted id of the universe's generated sector N.
func (u *Universe) LastSectorID() int {
	return u.IDOffset + u.SectorCount
}

func (u *Universe) Contains(sectorID int) bool {
	return sectorID >= u.FirstSectorID() && sectorID <= u.LastSectorID()
}

// SectorRecord is a persisted sector row.
type SectorRecord struct {
	SectorID      int                  `json:"sector_id"`
	UniverseID    int                  `json:"universe_id"`
	Type          warpgraph.SectorType `json:"sector_type"`
	HasStarMall   bool                 `json:"has_star_mall"`
	HasSeedPlanet bool                 `json:"has_seed_planet"`
	RegionID      int                  `json:"region_id"`
}

// EdgeRecord is a persisted directed lane.
type EdgeRecord struct {
	UniverseID int  `json:"universe_id"`
	FromSector int  `json:"from_sector"`
	ToSector   int  `json:"to_sector"`
	OneWay     bool `json:"one_way"`
}

type SectorDetail struct {
	SectorRecord
	Lanes []warpgraph.Lane `json:"lanes"`
}

type Route struct {
	UniverseID int   `json:"universe_id"`
	From       int   `json:"from"`
	To         int   `json:"to"`
	Hops       int   `json:"hops"`
	Path       []int `json:"path"`
}

// toRecords shifts a generated graph into the persisted id space.
func toRecords(universeID, offset int, g *warpgraph.Graph) ([]SectorRecord, []EdgeRecord) {
	sectors, edges := g.Translate(offset)

	sectorRecords := make([]SectorRecord, len(sectors))
	for i, s := range sectors {
		sectorRecords[i] = SectorRecord{
			SectorID:      s.ID,
			UniverseID:    universeID,
			Type:          s.Type,
			HasStarMall:   s.HasStarMall,
			HasSeedPlanet: s.HasSeedPlanet,
			RegionID:      s.RegionID,
		}
	}

	edgeRecords := make([]EdgeRecord, len(edges))
	for i, e := range edges {
		edgeRecords[i] = EdgeRecord{
			UniverseID: universeID,
			FromSector: e.From,
			ToSector:   e.To,
			OneWay:     e.OneWay,
		}
	}
	return sectorRecords, edgeRecords
}
