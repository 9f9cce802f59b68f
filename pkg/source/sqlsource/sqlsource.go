// Package sqlsource reads chart datasets from a SQL database.
//
// The database holds three tables:
//
//	regiones(id, region, etiqueta, codigo, area, poblacion, porcentaje, emigrantes)
//	nacimientos(region, anio, valor)
//	destinos(region, destino, porcentaje, rango)
//
// Regions keep the order of regiones.id; destinations keep the order of
// destinos.rango, so rango 0 (or 1) is the primary destination. Optional
// numeric columns may be NULL.
//
// [Open] selects the driver from the DSN scheme:
//
//	sqlite:///path/to/data.db     modernc.org/sqlite
//	postgres://user:pw@host/db    github.com/lib/pq
//	mysql://user:pw@tcp(host)/db  github.com/go-sql-driver/mysql
package sqlsource

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/matzehuels/chileviz/pkg/errors"
	"github.com/matzehuels/chileviz/pkg/source"
)

const (
	regionsQuery      = "SELECT region, etiqueta, codigo, area, poblacion, porcentaje, emigrantes FROM regiones ORDER BY id"
	birthsQuery       = "SELECT region, anio, valor FROM nacimientos ORDER BY region, anio"
	destinationsQuery = "SELECT region, destino, porcentaje FROM destinos ORDER BY region, rango"
)

// Source loads a [source.Document] from a database.
type Source struct {
	db    *sql.DB
	owned bool
}

var _ source.Source = (*Source)(nil)

// New wraps an open database handle. The caller keeps ownership of db.
func New(db *sql.DB) *Source { return &Source{db: db} }

// Open connects to the database named by dsn.
func Open(dsn string) (*Source, error) {
	driver, conn, err := ParseDSN(dsn)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open(driver, conn)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", driver, err)
	}
	if driver == "sqlite" {
		db.SetMaxOpenConns(1)
	}
	return &Source{db: db, owned: true}, nil
}

// IsDSN reports whether s looks like a database DSN rather than a file path.
func IsDSN(s string) bool {
	_, _, err := ParseDSN(s)
	return err == nil
}

// ParseDSN splits dsn into a database/sql driver name and the connection
// string that driver expects.
func ParseDSN(dsn string) (driver, conn string, err error) {
	scheme, rest, ok := strings.Cut(dsn, "://")
	if !ok {
		return "", "", errors.New(errors.ErrCodeInvalidInput, "database DSN %q has no scheme", dsn)
	}
	switch strings.ToLower(scheme) {
	case "sqlite", "sqlite3", "file":
		return "sqlite", rest, nil
	case "postgres", "postgresql":
		return "postgres", dsn, nil
	case "mysql":
		return "mysql", rest, nil
	}
	return "", "", errors.New(errors.ErrCodeUnsupported, "unsupported database scheme %q (want sqlite, postgres or mysql)", scheme)
}

// Close closes the database if Open created it.
func (s *Source) Close() error {
	if s.owned {
		return s.db.Close()
	}
	return nil
}

// Load reads every table and assembles the document.
func (s *Source) Load(ctx context.Context) (*source.Document, error) {
	doc := &source.Document{}
	index := make(map[string]int)

	if err := s.loadRegions(ctx, doc, index); err != nil {
		return nil, err
	}
	if err := s.loadBirths(ctx, doc, index); err != nil {
		return nil, err
	}
	if err := s.loadDestinations(ctx, doc, index); err != nil {
		return nil, err
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *Source) loadRegions(ctx context.Context, doc *source.Document, index map[string]int) error {
	rows, err := s.db.QueryContext(ctx, regionsQuery)
	if err != nil {
		return fmt.Errorf("query regiones: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			name                          string
			label, code                   sql.NullString
			area, pop, percent, emigrants sql.NullFloat64
		)
		if err := rows.Scan(&name, &label, &code, &area, &pop, &percent, &emigrants); err != nil {
			return fmt.Errorf("scan regiones: %w", err)
		}
		if _, dup := index[name]; dup {
			return errors.InvalidInput("duplicate region %q in regiones", name)
		}
		index[name] = len(doc.Records)
		doc.Records = append(doc.Records, source.Record{
			Region:     name,
			Label:      label.String,
			Code:       code.String,
			Area:       nullable(area),
			Population: nullable(pop),
			Percent:    nullable(percent),
			Emigrants:  nullable(emigrants),
		})
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("read regiones: %w", err)
	}
	return nil
}

func (s *Source) loadBirths(ctx context.Context, doc *source.Document, index map[string]int) error {
	rows, err := s.db.QueryContext(ctx, birthsQuery)
	if err != nil {
		return fmt.Errorf("query nacimientos: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			name  string
			year  int
			value float64
		)
		if err := rows.Scan(&name, &year, &value); err != nil {
			return fmt.Errorf("scan nacimientos: %w", err)
		}
		i, ok := index[name]
		if !ok {
			return errors.MissingKey("region referenced by nacimientos", name)
		}
		rec := &doc.Records[i]
		if rec.Births == nil {
			rec.Births = make(map[string]float64)
		}
		rec.Births[strconv.Itoa(year)] = value
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("read nacimientos: %w", err)
	}
	return nil
}

func (s *Source) loadDestinations(ctx context.Context, doc *source.Document, index map[string]int) error {
	rows, err := s.db.QueryContext(ctx, destinationsQuery)
	if err != nil {
		return fmt.Errorf("query destinos: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			name, dest string
			percent    float64
		)
		if err := rows.Scan(&name, &dest, &percent); err != nil {
			return fmt.Errorf("scan destinos: %w", err)
		}
		i, ok := index[name]
		if !ok {
			return errors.MissingKey("region referenced by destinos", name)
		}
		doc.Records[i].Destinations = append(doc.Records[i].Destinations, source.Destination{Region: dest, Percent: percent})
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("read destinos: %w", err)
	}
	return nil
}

func nullable(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
