package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ademuri/sparkify-etl/internal/record"
)

// Error is a failed statement against the destination store.
type Error struct {
	Op    string
	Table string
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Table, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Tx is the transaction holding one input file's rows. Callers should defer
// Rollback right after Begin; it is a no-op once Commit succeeded.
type Tx struct {
	tx *sql.Tx
}

func (t *Tx) Commit() error {
	if err := t.tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

func (t *Tx) Rollback() error {
	err := t.tx.Rollback()
	if errors.Is(err, sql.ErrTxDone) {
		return nil
	}
	return err
}

func (t *Tx) exec(ctx context.Context, table, query string, args ...any) error {
	if _, err := t.tx.ExecContext(ctx, query, args...); err != nil {
		return &Error{Op: "insert into", Table: table, Err: err}
	}
	return nil
}

func (t *Tx) InsertSong(ctx context.Context, r record.SongRecord) error {
	return t.exec(ctx, "songs", insertSongQuery,
		r.SongID, r.Title, r.ArtistID, r.Year, r.Duration)
}

func (t *Tx) InsertArtist(ctx context.Context, r record.ArtistRecord) error {
	return t.exec(ctx, "artists", insertArtistQuery,
		r.ArtistID, r.Name, r.Latitude, r.Longitude)
}

func (t *Tx) InsertTime(ctx context.Context, r record.TimeRecord) error {
	return t.exec(ctx, "time", insertTimeQuery,
		r.StartTime, r.Hour, r.Day, r.Week, r.Month, r.Year, r.Weekday)
}

// InsertUser adds a user, or refreshes the subscription level of one that
// already exists.
func (t *Tx) InsertUser(ctx context.Context, r record.UserRecord) error {
	return t.exec(ctx, "users", insertUserQuery,
		r.UserID, r.FirstName, r.LastName, r.Gender, r.Level)
}

func (t *Tx) InsertSongPlay(ctx context.Context, r record.SongPlayRecord) error {
	return t.exec(ctx, "songplays", insertSongPlayQuery,
		r.StartTime, r.UserID, r.Level, r.SongID, r.ArtistID, r.SessionID, r.Location, r.UserAgent)
}
