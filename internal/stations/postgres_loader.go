package stations

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	_ "github.com/jackc/pgx/v5/stdlib"
	"trainsearch.org/internal/geo"
	"trainsearch.org/internal/models"
)

const defaultStationTable = "stations"

// stationsQuery builds the select for table, which may be schema-qualified
// ("schema.table"). Each part is quoted as an identifier.
func stationsQuery(table string) string {
	if table == "" {
		table = defaultStationTable
	}
	ident := pgx.Identifier(strings.Split(table, "."))
	return fmt.Sprintf("SELECT id, name, latitude, longitude FROM %s ORDER BY id", ident.Sanitize())
}

func openDB(databaseURL string) (*sql.DB, error) {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open postgres database: %w", err)
	}

	db.SetMaxOpenConns(2)
	db.SetMaxIdleConns(0)
	db.SetConnMaxLifetime(5 * time.Minute)
	return db, nil
}

// loadStationsFromPostgres reads every row of the configured stations table.
func loadStationsFromPostgres(ctx context.Context, src models.StationSource) ([]*geo.Station, error) {
	db, err := openDB(src.DatabaseURL)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("verify postgres connection: %w", err)
	}

	return queryStations(ctx, db, stationsQuery(src.Table))
}

func queryStations(ctx context.Context, db *sql.DB, q string) ([]*geo.Station, error) {
	rows, err := db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("query stations: %w", err)
	}
	defer rows.Close()

	stations := make([]*geo.Station, 0)
	for rows.Next() {
		var r models.StationRecord
		var name sql.NullString
		if err := rows.Scan(&r.ID, &name, &r.Latitude, &r.Longitude); err != nil {
			return nil, fmt.Errorf("scan station row: %w", err)
		}
		st, err := stationFromRow(r, name)
		if err != nil {
			return nil, err
		}
		stations = append(stations, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate station rows: %w", err)
	}
	return stations, nil
}

func stationFromRow(r models.StationRecord, name sql.NullString) (*geo.Station, error) {
	if r.ID == "" {
		return nil, fmt.Errorf("station row without id")
	}
	r.Name = name.String
	st := r.Station()
	return &st, nil
}
