package history

import (
	"context"
	"database/sql"
	"time"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/farewatch/farewatch-cli/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite. Unlike the JSON
// backend, each RecordSnapshot is durable immediately, so Save is a no-op.
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db, now: time.Now}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS fare_snapshots (
	route_id   TEXT NOT NULL,
	date       TEXT NOT NULL,
	price      INTEGER NOT NULL,
	carrier    TEXT NOT NULL,
	market_avg REAL NOT NULL DEFAULT 0,
	PRIMARY KEY (route_id, date)
);

CREATE INDEX IF NOT EXISTS idx_fare_snapshots_route ON fare_snapshots(route_id);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) RecordSnapshot(ctx context.Context, routeID string, snap model.DailySnapshot) error {
	if routeID == "" {
		return eris.New("sqlite: empty route id")
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO fare_snapshots (route_id, date, price, carrier, market_avg)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(route_id, date) DO UPDATE SET
		 	price = excluded.price,
		 	carrier = excluded.carrier,
		 	market_avg = excluded.market_avg`,
		routeID, snap.Date, snap.Price, snap.Carrier, snap.MarketAvg,
	)
	return eris.Wrapf(err, "sqlite: record snapshot for %s", routeID)
}

func (s *SQLiteStore) Latest(ctx context.Context, routeID string) (*model.DailySnapshot, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT date, price, carrier, market_avg FROM fare_snapshots
		 WHERE route_id = ? ORDER BY date DESC LIMIT 1`,
		routeID,
	)

	var snap model.DailySnapshot
	err := row.Scan(&snap.Date, &snap.Price, &snap.Carrier, &snap.MarketAvg)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: latest snapshot for %s", routeID)
	}
	return &snap, nil
}

func (s *SQLiteStore) History(ctx context.Context, routeID string) ([]model.DailySnapshot, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT date, price, carrier, market_avg FROM fare_snapshots
		 WHERE route_id = ? ORDER BY date ASC`,
		routeID,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: history for %s", routeID)
	}
	defer rows.Close()

	var series []model.DailySnapshot
	for rows.Next() {
		var snap model.DailySnapshot
		if err := rows.Scan(&snap.Date, &snap.Price, &snap.Carrier, &snap.MarketAvg); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan snapshot")
		}
		series = append(series, snap)
	}
	return series, eris.Wrap(rows.Err(), "sqlite: history iterate")
}

func (s *SQLiteStore) Window(ctx context.Context, routeID string, days int) ([]model.DailySnapshot, error) {
	series, err := s.History(ctx, routeID)
	if err != nil {
		return nil, err
	}
	return windowSnapshots(series, days, s.now()), nil
}

func (s *SQLiteStore) RouteIDs(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT DISTINCT route_id FROM fare_snapshots ORDER BY route_id`,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: route ids")
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan route id")
		}
		ids = append(ids, id)
	}
	return ids, eris.Wrap(rows.Err(), "sqlite: route ids iterate")
}

// Save is a no-op; every append is already durable.
func (s *SQLiteStore) Save(_ context.Context) error { return nil }
