package store

import (
	"fmt"
	"strings"
)

type dialect struct {
	driver     string
	migrations string
}

// Statements use numbered $N placeholders, which both drivers bind by position.
const (
	insertSongQuery = `
INSERT INTO songs (song_id, title, artist_id, year, duration)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (song_id) DO NOTHING`

	insertArtistQuery = `
INSERT INTO artists (artist_id, name, latitude, longitude)
VALUES ($1, $2, $3, $4)
ON CONFLICT (artist_id) DO NOTHING`

	insertTimeQuery = `
INSERT INTO time (start_time, hour, day, week, month, year, weekday)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (start_time) DO NOTHING`

	insertUserQuery = `
INSERT INTO users (user_id, first_name, last_name, gender, level)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (user_id) DO UPDATE SET level = excluded.level`

	insertSongPlayQuery = `
INSERT INTO songplays (start_time, user_id, level, song_id, artist_id, session_id, location, user_agent)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	findSongQuery = `
SELECT s.song_id, a.artist_id
FROM songs s
JOIN artists a ON s.artist_id = a.artist_id
WHERE s.title = $1 AND a.name = $2 AND s.duration = $3
LIMIT 1`
)

func dialectFor(driver string) (dialect, error) {
	switch strings.ToLower(driver) {
	case "", DriverSQLite, "sqlite":
		return dialect{
			driver:     DriverSQLite,
			migrations: "migrations/sqlite3",
		}, nil
	case DriverPostgres, "postgres", "postgresql":
		return dialect{
			driver:     DriverPostgres,
			migrations: "migrations/pgx",
		}, nil
	default:
		return dialect{}, fmt.Errorf("unsupported driver %q (want %s or %s)", driver, DriverSQLite, DriverPostgres)
	}
}
