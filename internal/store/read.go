package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ademuri/sparkify-etl/internal/record"
)

// Tables lists the star schema's tables, dimensions first.
var Tables = []string{"songs", "artists", "users", "time", "songplays"}

// FindSong looks up the song and artist ids of a stored song whose title,
// artist name and duration all equal the given values. The match is exact:
// no case folding, no tolerance on duration, and a null argument never
// matches. A miss is not an error; both ids come back null.
func (t *Tx) FindSong(ctx context.Context, title, artist record.NullString, duration record.NullFloat64) (songID, artistID record.NullString, err error) {
	row := t.tx.QueryRowContext(ctx, findSongQuery, title, artist, duration)
	err = row.Scan(&songID, &artistID)
	if errors.Is(err, sql.ErrNoRows) {
		return record.NullString{}, record.NullString{}, nil
	}
	if err != nil {
		return record.NullString{}, record.NullString{}, &Error{Op: "select from", Table: "songs", Err: err}
	}
	return songID, artistID, nil
}

// CountRows returns the number of rows the store holds in each of Tables.
// These can be lower than the number of rows submitted, since conflicting
// inserts are collapsed.
func (s *Store) CountRows(ctx context.Context) (map[string]int64, error) {
	counts := make(map[string]int64, len(Tables))
	for _, table := range Tables {
		var n int64
		// Table names come from the fixed list above.
		row := s.db.QueryRowContext(ctx, fmt.Sprintf("SELECT COUNT(*) FROM %s", table))
		if err := row.Scan(&n); err != nil {
			return nil, &Error{Op: "count", Table: table, Err: err}
		}
		counts[table] = n
	}
	return counts, nil
}
