// Package universetest provides an in-memory SQLite store with the universe
// schema for tests that exercise the repository without Postgres.
package universetest

import (
	"context"
	"database/sql"
	"testing"

	"sectorgen/internal/shared/database"

	_ "modernc.org/sqlite"
)

// Schema mirrors migrations/ in SQLite dialect.
const Schema = `
CREATE TABLE universes (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	kind TEXT NOT NULL CHECK (kind IN ('shared', 'single_player')),
	seed INTEGER NOT NULL,
	sector_count INTEGER NOT NULL,
	id_offset INTEGER NOT NULL DEFAULT 0,
	owner_player_id INTEGER,
	region_count INTEGER NOT NULL DEFAULT 0,
	star_mall_count INTEGER NOT NULL DEFAULT 0,
	seed_planet_count INTEGER NOT NULL DEFAULT 0,
	one_way_count INTEGER NOT NULL DEFAULT 0,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE UNIQUE INDEX idx_universes_single_shared ON universes (kind) WHERE kind = 'shared';
CREATE UNIQUE INDEX idx_universes_owner ON universes (owner_player_id) WHERE owner_player_id IS NOT NULL;

CREATE TABLE sectors (
	sector_id INTEGER PRIMARY KEY,
	universe_id INTEGER NOT NULL REFERENCES universes(id) ON DELETE CASCADE,
	sector_type TEXT NOT NULL
		CHECK (sector_type IN ('standard', 'one_way', 'protected', 'harmony_enforced')),
	has_star_mall BOOLEAN NOT NULL DEFAULT FALSE,
	has_seed_planet BOOLEAN NOT NULL DEFAULT FALSE,
	region_id INTEGER NOT NULL
);
CREATE INDEX idx_sectors_universe ON sectors (universe_id);

CREATE TABLE sector_edges (
	universe_id INTEGER NOT NULL REFERENCES universes(id) ON DELETE CASCADE,
	from_sector INTEGER NOT NULL REFERENCES sectors(sector_id) ON DELETE CASCADE,
	to_sector INTEGER NOT NULL REFERENCES sectors(sector_id) ON DELETE CASCADE,
	one_way BOOLEAN NOT NULL DEFAULT FALSE,
	PRIMARY KEY (from_sector, to_sector)
);
CREATE INDEX idx_sector_edges_universe ON sector_edges (universe_id);
`

// OpenDB returns a fresh in-memory database with Schema applied. The pool is
// pinned to one connection because every :memory: connection is its own database.
func OpenDB(t testing.TB) *database.DB {
	t.Helper()

	sqlDB, err := sql.Open("sqlite", ":memory:?_pragma=foreign_keys(1)")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if _, err := sqlDB.ExecContext(context.Background(), Schema); err != nil {
		t.Fatalf("apply schema: %v", err)
	}
	return &database.DB{DB: sqlDB}
}
