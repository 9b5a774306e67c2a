package services

import (
	"bytes"
	"database/sql"
	"fmt"
	"os"

	_ "modernc.org/sqlite" // pure go sqlite driver
)

// sqliteMagic is the 16-byte header every SQLite database starts with
var sqliteMagic = []byte("SQLite format 3\x00")

// IsSQLite reports whether a payload is a SQLite database
func IsSQLite(payload []byte) bool {
	return bytes.HasPrefix(payload, sqliteMagic)
}

// DecodeStaticDB dumps every user table of a SQLite file into rows of
// column to value maps. blueprints.static holds a single cache table,
// so the result is the {"cache": [{key, value, time}, ...]} shape the
// record loader parses directly.
func DecodeStaticDB(path string) (map[string][]map[string]interface{}, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open static db: %w", err)
	}
	defer db.Close()

	tables, err := listTables(db)
	if err != nil {
		return nil, err
	}

	out := make(map[string][]map[string]interface{}, len(tables))
	for _, table := range tables {
		rows, err := dumpTable(db, table)
		if err != nil {
			return nil, fmt.Errorf("failed to dump table %s: %w", table, err)
		}
		out[table] = rows
	}

	return out, nil
}

// decodeStaticPayload stages a payload in a temp file for the SQLite
// driver, which only opens paths
func decodeStaticPayload(payload []byte) (map[string][]map[string]interface{}, error) {
	tmp, err := os.CreateTemp("", "frontier-*.static")
	if err != nil {
		return nil, fmt.Errorf("failed to stage static payload: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("failed to write static payload: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("failed to close static payload: %w", err)
	}

	return DecodeStaticDB(tmp.Name())
}

func listTables(db *sql.DB) ([]string, error) {
	rows, err := db.Query(`SELECT name FROM sqlite_master WHERE type='table' AND name NOT LIKE 'sqlite_%'`)
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan table name: %w", err)
		}
		tables = append(tables, name)
	}

	return tables, rows.Err()
}

func dumpTable(db *sql.DB, table string) ([]map[string]interface{}, error) {
	rows, err := db.Query(fmt.Sprintf("SELECT * FROM %q", table))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var out []map[string]interface{}
	for rows.Next() {
		values := make([]interface{}, len(columns))
		scan := make([]interface{}, len(columns))
		for i := range values {
			scan[i] = &values[i]
		}
		if err := rows.Scan(scan...); err != nil {
			return nil, err
		}

		row := make(map[string]interface{}, len(columns))
		for i, column := range columns {
			// TEXT and BLOB columns scan as byte slices; the cache
			// table's value column holds JSON-encoded strings
			if b, ok := values[i].([]byte); ok {
				row[column] = string(b)
			} else {
				row[column] = values[i]
			}
		}
		out = append(out, row)
	}

	return out, rows.Err()
}
