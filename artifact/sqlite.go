package artifact

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/glebarez/go-sqlite" // registers the "sqlite" driver

	"github.com/hupe1980/travelmesh/core"
)

const schema = `CREATE TABLE IF NOT EXISTS travel_guides (
    seq INTEGER PRIMARY KEY AUTOINCREMENT,
    id TEXT NOT NULL UNIQUE,
    created_at TEXT NOT NULL,
    user_query TEXT,
    location TEXT,
    date TEXT,
    weather_response TEXT,
    hotel_response TEXT,
    restaurant_response TEXT,
    attraction_response TEXT,
    final_response TEXT
);`

// SQLiteStore keeps guides in a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (and if needed creates) the database file at path.
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", "file:"+path+"?_pragma=busy_timeout(10000)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create travel_guides table: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error { return s.db.Close() }

// Save implements Store.
func (s *SQLiteStore) Save(ctx context.Context, rec *Record) (string, error) {
	id := core.NewID()
	_, err := s.db.ExecContext(ctx, `INSERT INTO travel_guides
        (id, created_at, user_query, location, date, weather_response, hotel_response, restaurant_response, attraction_response, final_response)
        VALUES (?,?,?,?,?,?,?,?,?,?);`,
		id, rec.Timestamp.UTC().Format(time.RFC3339Nano), rec.UserQuery, rec.Location, rec.Date,
		rec.WeatherResponse, rec.HotelResponse, rec.RestaurantResponse, rec.AttractionResponse, rec.FinalResponse)
	if err != nil {
		return "", fmt.Errorf("insert guide: %w", err)
	}
	return id, nil
}

// Get implements Store.
func (s *SQLiteStore) Get(ctx context.Context, id string) (*Record, error) {
	row := s.db.QueryRowContext(ctx, `SELECT created_at, user_query, location, date, weather_response, hotel_response, restaurant_response, attraction_response, final_response
        FROM travel_guides WHERE id = ?;`, id)

	var (
		rec     Record
		created string
	)
	err := row.Scan(&created, &rec.UserQuery, &rec.Location, &rec.Date,
		&rec.WeatherResponse, &rec.HotelResponse, &rec.RestaurantResponse, &rec.AttractionResponse, &rec.FinalResponse)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query guide: %w", err)
	}

	ts, err := time.Parse(time.RFC3339Nano, created)
	if err != nil {
		return nil, fmt.Errorf("parse guide timestamp: %w", err)
	}
	rec.Timestamp = ts
	return &rec, nil
}

// List implements Store.
func (s *SQLiteStore) List(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id FROM travel_guides ORDER BY seq ASC;`)
	if err != nil {
		return nil, fmt.Errorf("list guides: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan guide id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
