package universe

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"sectorgen/internal/shared/database"
	"sectorgen/internal/warpgraph"
)

// insertBatchSize bounds rows per multi-row INSERT so the statement stays
// well under driver placeholder limits.
const insertBatchSize = 500

const universeColumns = `id, name, kind, seed, sector_count, id_offset, owner_player_id,
		region_count, star_mall_count, seed_planet_count, one_way_count, created_at`

type Repository struct {
	db     *database.DB
	logger *slog.Logger
}

func NewRepository(db *database.DB, logger *slog.Logger) *Repository {
	logger.Debug("Initializing universe repository")

	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) getExecutor(tx *database.Tx) database.Executor {
	if tx != nil {
		return tx
	}
	return r.db
}

// WithTx runs fn in a single transaction.
func (r *Repository) WithTx(ctx context.Context, fn func(tx *database.Tx) error) error {
	return r.db.WithTx(ctx, fn)
}

func (r *Repository) CreateUniverse(ctx context.Context, universe *Universe, tx *database.Tx) error {
	logger := r.logger.With(
		"component", "universe_repository",
		"operation", "create_universe",
		"kind", universe.Kind,
		"seed", universe.Seed,
		"sector_count", universe.SectorCount,
	)
	logger.Debug("Creating universe")

	query := `
		INSERT INTO universes (name, kind, seed, sector_count, id_offset, owner_player_id,
			region_count, star_mall_count, seed_planet_count, one_way_count)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`

	err := r.getExecutor(tx).QueryRowContext(ctx, query,
		universe.Name,
		universe.Kind,
		universe.Seed,
		universe.SectorCount,
		universe.IDOffset,
		universe.OwnerPlayerID,
		universe.RegionCount,
		universe.StarMallCount,
		universe.SeedPlanetCount,
		universe.OneWayCount,
	).Scan(&universe.ID)

	if err != nil {
		logger.Error("Failed to create universe", "error", err)
		return fmt.Errorf("failed to create universe: %w", err)
	}

	logger.Info("Universe created successfully", "universe_id", universe.ID)
	return nil
}

func (r *Repository) GetUniverse(ctx context.Context, id int) (*Universe, error) {
	return r.getUniverseWhere(ctx, "get_universe", "id = $1", id)
}

// GetSharedUniverse returns nil when the shared universe has not been generated yet.
func (r *Repository) GetSharedUniverse(ctx context.Context) (*Universe, error) {
	return r.getUniverseWhere(ctx, "get_shared_universe", "kind = $1", KindShared)
}

func (r *Repository) GetSinglePlayerUniverse(ctx context.Context, playerID int) (*Universe, error) {
	return r.getUniverseWhere(ctx, "get_single_player_universe", "owner_player_id = $1", playerID)
}

func (r *Repository) getUniverseWhere(ctx context.Context, operation, where string, arg interface{}) (*Universe, error) {
	logger := r.logger.With("component", "universe_repository", "operation", operation)
	logger.Debug("Getting universe")

	query := `SELECT ` + universeColumns + ` FROM universes WHERE ` + where

	universe, err := scanUniverse(r.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if err == sql.ErrNoRows {
			logger.Debug("Universe not found")
			return nil, nil
		}
		logger.Error("Database error getting universe", "error", err)
		return nil, fmt.Errorf("database error: %w", err)
	}

	logger.Debug("Universe retrieved", "universe_id", universe.ID)
	return universe, nil
}

func (r *Repository) ListUniverses(ctx context.Context) ([]Universe, error) {
	logger := r.logger.With("component", "universe_repository", "operation", "list_universes")
	logger.Debug("Listing universes")

	query := `SELECT ` + universeColumns + ` FROM universes ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		logger.Error("Failed to query universes", "error", err)
		return nil, fmt.Errorf("failed to query universes: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			logger.Error("Failed to close rows", "error", err)
		}
	}()

	var universes []Universe
	for rows.Next() {
		universe, err := scanUniverse(rows)
		if err != nil {
			logger.Error("Failed to scan universe row", "error", err)
			return nil, fmt.Errorf("failed to scan universe: %w", err)
		}
		universes = append(universes, *universe)
	}

	if err := rows.Err(); err != nil {
		logger.Error("Error during rows iteration", "error", err)
		return nil, fmt.Errorf("error iterating universes: %w", err)
	}

	logger.Debug("Universes retrieved", "count", len(universes))
	return universes, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanUniverse(row rowScanner) (*Universe, error) {
	var universe Universe
	var owner sql.NullInt64
	err := row.Scan(
		&universe.ID,
		&universe.Name,
		&universe.Kind,
		&universe.Seed,
		&universe.SectorCount,
		&universe.IDOffset,
		&owner,
		&universe.RegionCount,
		&universe.StarMallCount,
		&universe.SeedPlanetCount,
		&universe.OneWayCount,
		&universe.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if owner.Valid {
		id := int(owner.Int64)
		universe.OwnerPlayerID = &id
	}
	return &universe, nil
}

// MaxSectorID returns the highest persisted sector id across all universes, or 0.
func (r *Repository) MaxSectorID(ctx context.Context, tx *database.Tx) (int, error) {
	var maxID int
	err := r.getExecutor(tx).QueryRowContext(ctx, `SELECT COALESCE(MAX(sector_id), 0) FROM sectors`).Scan(&maxID)
	if err != nil {
		r.logger.Error("Failed to read max sector id", "error", err)
		return 0, fmt.Errorf("failed to read max sector id: %w", err)
	}
	return maxID, nil
}

func (r *Repository) InsertSectors(ctx context.Context, sectors []SectorRecord, tx *database.Tx) error {
	logger := r.logger.With("component", "universe_repository", "operation", "insert_sectors", "count", len(sectors))
	logger.Debug("Inserting sectors")

	exec := r.getExecutor(tx)
	for start := 0; start < len(sectors); start += insertBatchSize {
		batch := sectors[start:min(start+insertBatchSize, len(sectors))]

		args := make([]interface{}, 0, len(batch)*6)
		for _, s := range batch {
			args = append(args, s.SectorID, s.UniverseID, string(s.Type), s.HasStarMall, s.HasSeedPlanet, s.RegionID)
		}
		query := `INSERT INTO sectors (sector_id, universe_id, sector_type, has_star_mall, has_seed_planet, region_id) VALUES ` +
			placeholders(len(batch), 6)

		if _, err := exec.ExecContext(ctx, query, args...); err != nil {
			logger.Error("Failed to insert sector batch", "offset", start, "error", err)
			return fmt.Errorf("failed to insert sectors: %w", err)
		}
	}

	logger.Debug("Sectors inserted")
	return nil
}

func (r *Repository) InsertEdges(ctx context.Context, edges []EdgeRecord, tx *database.Tx) error {
	logger := r.logger.With("component", "universe_repository", "operation", "insert_edges", "count", len(edges))
	logger.Debug("Inserting edges")

	exec := r.getExecutor(tx)
	for start := 0; start < len(edges); start += insertBatchSize {
		batch := edges[start:min(start+insertBatchSize, len(edges))]

		args := make([]interface{}, 0, len(batch)*4)
		for _, e := range batch {
			args = append(args, e.UniverseID, e.FromSector, e.ToSector, e.OneWay)
		}
		query := `INSERT INTO sector_edges (universe_id, from_sector, to_sector, one_way) VALUES ` +
			placeholders(len(batch), 4)

		if _, err := exec.ExecContext(ctx, query, args...); err != nil {
			logger.Error("Failed to insert edge batch", "offset", start, "error", err)
			return fmt.Errorf("failed to insert edges: %w", err)
		}
	}

	logger.Debug("Edges inserted")
	return nil
}

// placeholders renders rows groups of cols positional parameters: ($1, $2), ($3, $4), ...
func placeholders(rows, cols int) string {
	var b strings.Builder
	n := 1
	for i := 0; i < rows; i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteByte('(')
		for j := 0; j < cols; j++ {
			if j > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "$%d", n)
			n++
		}
		b.WriteByte(')')
	}
	return b.String()
}

// GetSector returns nil when no sector has the given id.
func (r *Repository) GetSector(ctx context.Context, sectorID int) (*SectorRecord, error) {
	logger := r.logger.With("component", "universe_repository", "operation", "get_sector", "sector_id", sectorID)

	query := `
		SELECT sector_id, universe_id, sector_type, has_star_mall, has_seed_planet, region_id
		FROM sectors
		WHERE sector_id = $1`

	var s SectorRecord
	err := r.db.QueryRowContext(ctx, query, sectorID).Scan(
		&s.SectorID,
		&s.UniverseID,
		&s.Type,
		&s.HasStarMall,
		&s.HasSeedPlanet,
		&s.RegionID,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			logger.Debug("Sector not found")
			return nil, nil
		}
		logger.Error("Database error getting sector", "error", err)
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &s, nil
}

func (r *Repository) GetLanes(ctx context.Context, sectorID int) ([]warpgraph.Lane, error) {
	logger := r.logger.With("component", "universe_repository", "operation", "get_lanes", "sector_id", sectorID)

	query := `
		SELECT to_sector, one_way
		FROM sector_edges
		WHERE from_sector = $1
		ORDER BY to_sector`

	rows, err := r.db.QueryContext(ctx, query, sectorID)
	if err != nil {
		logger.Error("Failed to query lanes", "error", err)
		return nil, fmt.Errorf("failed to query lanes: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			logger.Error("Failed to close rows", "error", err)
		}
	}()

	lanes := []warpgraph.Lane{}
	for rows.Next() {
		var l warpgraph.Lane
		if err := rows.Scan(&l.To, &l.OneWay); err != nil {
			logger.Error("Failed to scan lane row", "error", err)
			return nil, fmt.Errorf("failed to scan lane: %w", err)
		}
		lanes = append(lanes, l)
	}

	if err := rows.Err(); err != nil {
		logger.Error("Error during rows iteration", "error", err)
		return nil, fmt.Errorf("error iterating lanes: %w", err)
	}
	return lanes, nil
}

// LoadEdges returns every directed lane of a universe in persisted ids.
func (r *Repository) LoadEdges(ctx context.Context, universeID int) ([]warpgraph.Edge, error) {
	logger := r.logger.With("component", "universe_repository", "operation", "load_edges", "universe_id", universeID)
	logger.Debug("Loading edges")

	query := `
		SELECT from_sector, to_sector, one_way
		FROM sector_edges
		WHERE universe_id = $1
		ORDER BY from_sector, to_sector`

	rows, err := r.db.QueryContext(ctx, query, universeID)
	if err != nil {
		logger.Error("Failed to query edges", "error", err)
		return nil, fmt.Errorf("failed to query edges: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			logger.Error("Failed to close rows", "error", err)
		}
	}()

	var edges []warpgraph.Edge
	for rows.Next() {
		var e warpgraph.Edge
		if err := rows.Scan(&e.From, &e.To, &e.OneWay); err != nil {
			logger.Error("Failed to scan edge row", "error", err)
			return nil, fmt.Errorf("failed to scan edge: %w", err)
		}
		edges = append(edges, e)
	}

	if err := rows.Err(); err != nil {
		logger.Error("Error during rows iteration", "error", err)
		return nil, fmt.Errorf("error iterating edges: %w", err)
	}

	logger.Debug("Edges loaded", "count", len(edges))
	return edges, nil
}
