package assessstore

import (
	"database/sql"
	"fmt"

	"github.com/songwei/vitalrisk/schema"
)

// Clear removes all stored assessments and risk factors. The tables remain
// in place so subsequent runs keep working without re-creating schema.
func Clear(backend schema.DatabaseBackend, connStr string) error {
	if backend == schema.NoneBackend {
		return nil
	}

	var db *sql.DB
	var err error

	switch backend {
	case schema.SQLiteBackend:
		dbPath := connStr
		if dbPath == "" {
			dbPath = GetDBFilePath()
		}
		db, err = sql.Open("sqlite", dbPath)
	case schema.MySQLBackend:
		db, err = sql.Open("mysql", connStr)
	case schema.PostgreSQLBackend:
		db, err = sql.Open("pgx", connStr)
	default:
		return fmt.Errorf("unsupported store backend: %s", backend)
	}
	if err != nil {
		return fmt.Errorf("failed to open %s database: %w", backend, err)
	}
	defer func() { _ = db.Close() }()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to connect to %s database: %w", backend, err)
	}

	for _, table := range []string{riskFactorsTable, assessmentsTable} {
		query := fmt.Sprintf("DELETE FROM %s", quoteTableName(table, backend))
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("failed to clear table %s: %w", table, err)
		}
	}
	return nil
}
