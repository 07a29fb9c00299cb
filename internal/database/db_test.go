package database

import (
	"context"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/drill-inventory/internal/model"
	"github.com/iliyamo/drill-inventory/internal/validation"
)

func TestOpenSQLiteAndMigrate(t *testing.T) {
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "nested", "test.db"))
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	require.NoError(t, Migrate(ctx, db, SQLite))
	// second run must be a no-op
	require.NoError(t, Migrate(ctx, db, SQLite))

	for _, table := range []string{"designs", "drills", "records"} {
		var n int
		err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n)
		require.NoError(t, err, table)
		assert.Zero(t, n)
	}
}

func TestSQLiteEnforcesReferences(t *testing.T) {
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "fk.db"))
	require.NoError(t, err)
	defer db.Close()
	ctx := context.Background()
	require.NoError(t, Migrate(ctx, db, SQLite))

	_, err = db.ExecContext(ctx, "INSERT INTO drills (id, part_num, design_id, descr) VALUES ('d1', 'X', 'missing', '')")
	assert.Error(t, err, "foreign key to designs must be enforced")

	_, err = db.ExecContext(ctx, "INSERT INTO designs (id, name, descr) VALUES ('g1', 'RDX', 'Drill Standard RDX')")
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, "INSERT INTO drills (id, part_num, design_id, descr) VALUES ('d1', 'X', 'g1', '')")
	require.NoError(t, err)

	_, err = db.ExecContext(ctx, "INSERT INTO records (id, drill_id, amount, location, descr) VALUES ('r1', 'd1', 1, 'Basement', '')")
	assert.Error(t, err, "location check must be enforced")
	_, err = db.ExecContext(ctx, "INSERT INTO records (id, drill_id, amount, location, descr) VALUES ('r1', 'd1', -1, 'Warehouse', '')")
	assert.Error(t, err, "amount check must be enforced")
}

func TestMigrateUnknownDialect(t *testing.T) {
	err := Migrate(context.Background(), nil, Dialect("oracle"))
	assert.Error(t, err)
}

func mysqlColumn(t *testing.T, column string) (width int, def string) {
	t.Helper()
	re := regexp.MustCompile(`(?m)^\s*` + column + `\s+VARCHAR\((\d+)\)([^,]*),`)
	for _, stmt := range mysqlSchema {
		if m := re.FindStringSubmatch(stmt); m != nil {
			n, err := strconv.Atoi(m[1])
			require.NoError(t, err)
			return n, m[2]
		}
	}
	t.Fatalf("column %s not found in mysql schema", column)
	return 0, ""
}

func TestMySQLSchemaFitsEscapedValues(t *testing.T) {
	name := validation.Escape(strings.Repeat("/", 100))
	part := validation.Escape(strings.Repeat(`"`, model.PartNumMaxLen))

	width, def := mysqlColumn(t, "name")
	assert.GreaterOrEqual(t, width, len([]rune(name)))
	assert.Contains(t, def, "COLLATE utf8mb4_bin")

	width, def = mysqlColumn(t, "part_num")
	assert.GreaterOrEqual(t, width, len([]rune(part)))
	assert.Contains(t, def, "COLLATE utf8mb4_bin")
}
