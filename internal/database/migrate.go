package database

import (
	"context"
	"database/sql"
	"fmt"
)

// The guard on deletes lives in the repositories; ON DELETE RESTRICT backs it
// up when two requests race.
//
// Stored text is HTML escaped, so widths allow six characters per input
// character ("&quot;" and "&#x2F;"). The binary collation keeps lookups by
// name exact.
var mysqlSchema = []string{
	`CREATE TABLE IF NOT EXISTS designs (
		id    CHAR(36)     NOT NULL PRIMARY KEY,
		name  VARCHAR(600) COLLATE utf8mb4_bin NOT NULL,
		descr TEXT         NOT NULL,
		KEY idx_designs_name (name)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS drills (
		id        CHAR(36)     NOT NULL PRIMARY KEY,
		part_num  VARCHAR(144) COLLATE utf8mb4_bin NOT NULL,
		design_id CHAR(36)     NOT NULL,
		descr     TEXT         NOT NULL,
		KEY idx_drills_part_num (part_num),
		CONSTRAINT fk_drills_design FOREIGN KEY (design_id) REFERENCES designs (id) ON DELETE RESTRICT
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS records (
		id       CHAR(36)    NOT NULL PRIMARY KEY,
		drill_id CHAR(36)    NOT NULL,
		amount   INT         NOT NULL,
		location VARCHAR(32) NOT NULL DEFAULT 'Tech Center',
		descr    TEXT        NOT NULL,
		KEY idx_records_location (location),
		CONSTRAINT fk_records_drill FOREIGN KEY (drill_id) REFERENCES drills (id) ON DELETE RESTRICT,
		CONSTRAINT chk_records_amount CHECK (amount >= 0),
		CONSTRAINT chk_records_location CHECK (location IN ('Tech Center', 'Warehouse'))
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS designs (
		id    TEXT NOT NULL PRIMARY KEY,
		name  TEXT NOT NULL,
		descr TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_designs_name ON designs (name)`,
	`CREATE TABLE IF NOT EXISTS drills (
		id        TEXT NOT NULL PRIMARY KEY,
		part_num  TEXT NOT NULL,
		design_id TEXT NOT NULL REFERENCES designs (id) ON DELETE RESTRICT,
		descr     TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS idx_drills_part_num ON drills (part_num)`,
	`CREATE INDEX IF NOT EXISTS idx_drills_design ON drills (design_id)`,
	`CREATE TABLE IF NOT EXISTS records (
		id       TEXT    NOT NULL PRIMARY KEY,
		drill_id TEXT    NOT NULL REFERENCES drills (id) ON DELETE RESTRICT,
		amount   INTEGER NOT NULL CHECK (amount >= 0),
		location TEXT    NOT NULL DEFAULT 'Tech Center' CHECK (location IN ('Tech Center', 'Warehouse')),
		descr    TEXT    NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS idx_records_drill ON records (drill_id)`,
	`CREATE INDEX IF NOT EXISTS idx_records_location ON records (location)`,
}

// Migrate creates the catalog tables when they do not exist yet.  It is safe
// to run on every start.
func Migrate(ctx context.Context, db *sql.DB, d Dialect) error {
	var stmts []string
	switch d {
	case MySQL:
		stmts = mysqlSchema
	case SQLite:
		stmts = sqliteSchema
	default:
		return fmt.Errorf("unknown dialect %q", d)
	}
	for _, s := range stmts {
		if _, err := db.ExecContext(ctx, s); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
