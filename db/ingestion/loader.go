// Package ingestion builds a SQLite reference snapshot from exported
// CSV tables. This is the external batch side of the reference store:
// it must never run while costing requests are in flight. Extraction of
// the CSVs from their upstream sources is out of scope; the loader only
// consumes already-extracted files.
package ingestion

import (
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"programme-cost/core/refdata"
	"programme-cost/internal/errors"
	"programme-cost/internal/logging"
)

// tableSpec describes one CSV-backed reference table
type tableSpec struct {
	table  string
	file   string
	header []string
	// keyCols index the declared key columns; duplicate keys are
	// flagged as data-integrity warnings and the first row wins
	keyCols []int
	// upperCols index columns normalized to upper case (country codes)
	upperCols []int
}

var tableSpecs = []tableSpec{
	{
		table:     refdata.TableSalaries,
		file:      "salaries.csv",
		header:    []string{"country", "cadre_level", "annual_salary", "currency", "year"},
		keyCols:   []int{0, 1},
		upperCols: []int{0},
	},
	{
		table:     refdata.TablePerDiems,
		file:      "per_diems.csv",
		header:    []string{"country", "dsa_national", "dsa_upper", "dsa_lower", "currency", "year", "local_proportion"},
		keyCols:   []int{0},
		upperCols: []int{0},
	},
	{
		table:   refdata.TableTransport,
		file:    "transport.csv",
		header:  []string{"vehicle_model", "operating_cost_per_km", "consumption_litres_per_km", "currency", "year"},
		keyCols: []int{0},
	},
	{
		table:   refdata.TableSupplies,
		file:    "supplies.csv",
		header:  []string{"item", "price", "currency", "year"},
		keyCols: []int{0},
	},
	{
		table: refdata.TableDistances,
		file:  "distances.csv",
		header: []string{"country", "ddist10", "ddist20", "ddist30", "ddist40", "ddist50",
			"ddist60", "ddist70", "ddist80", "ddist90", "ddist95", "ddist100"},
		keyCols:   []int{0},
		upperCols: []int{0},
	},
	{
		table:     refdata.TableDivisions,
		file:      "divisions.csv",
		header:    []string{"country", "provincial_divisions", "district_divisions"},
		keyCols:   []int{0},
		upperCols: []int{0},
	},
	{
		table: refdata.TableFacilities,
		file:  "facilities.csv",
		header: []string{"country", "regional_hospitals", "provincial_hospitals", "district_hospitals",
			"health_centres", "health_posts"},
		keyCols:   []int{0},
		upperCols: []int{0},
	},
	{
		table:     refdata.TableEconomicSeries,
		file:      "economic_series.csv",
		header:    []string{"country", "series", "year", "value"},
		keyCols:   []int{0, 1, 2},
		upperCols: []int{0},
	},
	{
		table:     refdata.TablePopulation,
		file:      "population.csv",
		header:    []string{"country", "year", "variant", "value_thousands"},
		keyCols:   []int{0, 1, 2},
		upperCols: []int{0},
	},
}

// Loader writes a reference snapshot
type Loader struct {
	db *sql.DB
}

// Open opens (or creates) a snapshot for writing and ensures the schema
func Open(path string) (*Loader, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, errors.Ingest("create snapshot directory", err)
		}
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.Ingest("open snapshot", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, errors.Ingest("create schema", err)
	}
	return &Loader{db: db}, nil
}

// Close releases the snapshot handle
func (l *Loader) Close() error {
	return l.db.Close()
}

// LoadDir loads every recognized CSV file found in dir. Missing files
// are skipped; a present file replaces that table's contents entirely.
func (l *Loader) LoadDir(dir string) error {
	loaded := 0
	for _, spec := range tableSpecs {
		path := filepath.Join(dir, spec.file)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}
		if err := l.loadTable(spec, path); err != nil {
			return err
		}
		loaded++
	}
	if loaded == 0 {
		return errors.Ingest("no recognized CSV files in "+dir, nil)
	}
	return nil
}

func (l *Loader) loadTable(spec tableSpec, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Ingest("open "+spec.file, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return errors.Ingest("read "+spec.file+" header", err)
	}
	if err := checkHeader(spec, header); err != nil {
		return err
	}

	tx, err := l.db.Begin()
	if err != nil {
		return errors.Ingest("begin load transaction", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM " + spec.table); err != nil {
		return errors.Ingest("clear "+spec.table, err)
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(spec.header)), ",")
	stmt, err := tx.Prepare(fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		spec.table, strings.Join(spec.header, ", "), placeholders))
	if err != nil {
		return errors.Ingest("prepare insert", err)
	}
	defer stmt.Close()

	seen := make(map[string]struct{})
	rows := 0
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return errors.Ingest("read "+spec.file, err)
		}
		if len(record) != len(spec.header) {
			return errors.Ingest(fmt.Sprintf("%s: want %d columns, got %d",
				spec.file, len(spec.header), len(record)), nil)
		}

		for _, i := range spec.upperCols {
			record[i] = strings.ToUpper(strings.TrimSpace(record[i]))
		}

		key := rowKey(spec, record)
		if _, dup := seen[key]; dup {
			logging.Warn("duplicate reference row, keeping first",
				zap.String("table", spec.table),
				zap.String("key", key))
			continue
		}
		seen[key] = struct{}{}

		args := make([]interface{}, len(record))
		for i, v := range record {
			args[i] = v
		}
		if _, err := stmt.Exec(args...); err != nil {
			return errors.Ingest("insert into "+spec.table, err)
		}
		rows++
	}

	if err := tx.Commit(); err != nil {
		return errors.Ingest("commit "+spec.table, err)
	}

	logging.Info("reference table loaded",
		zap.String("table", spec.table),
		zap.Int("rows", rows))
	return nil
}

func checkHeader(spec tableSpec, header []string) error {
	if len(header) != len(spec.header) {
		return errors.Ingest(fmt.Sprintf("%s: want header %v, got %v",
			spec.file, spec.header, header), nil)
	}
	for i, col := range spec.header {
		if strings.TrimSpace(strings.ToLower(header[i])) != col {
			return errors.Ingest(fmt.Sprintf("%s: want header %v, got %v",
				spec.file, spec.header, header), nil)
		}
	}
	return nil
}

func rowKey(spec tableSpec, record []string) string {
	parts := make([]string, 0, len(spec.keyCols))
	for _, i := range spec.keyCols {
		parts = append(parts, strings.TrimSpace(record[i]))
	}
	return strings.Join(parts, "/")
}
