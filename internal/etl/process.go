package etl

import (
	"context"

	"github.com/ademuri/sparkify-etl/internal/record"
	"github.com/ademuri/sparkify-etl/internal/store"
	"github.com/ademuri/sparkify-etl/internal/transform"
)

// ProcessSongFile loads the songs and artists of one song-metadata file.
func (l *Loader) ProcessSongFile(ctx context.Context, tx *store.Tx, path string) (FileStats, error) {
	log := l.logger(ctx)
	log.Debug().Str("file", path).Msg("song file")

	data, skipped, err := record.ReadSongFile(path, l.skipMalformed)
	if err != nil {
		return FileStats{}, err
	}
	l.warnSkipped(ctx, skipped)

	stats := FileStats{Records: len(data), Skipped: len(skipped)}

	for _, song := range transform.Songs(data) {
		if err := tx.InsertSong(ctx, song); err != nil {
			return FileStats{}, err
		}
		stats.Songs++
	}

	for _, artist := range transform.Artists(data) {
		if err := tx.InsertArtist(ctx, artist); err != nil {
			return FileStats{}, err
		}
		stats.Artists++
	}

	return stats, nil
}

// ProcessLogFile loads the time, user and songplay rows of one activity
// log. Only NextSong events are used.
func (l *Loader) ProcessLogFile(ctx context.Context, tx *store.Tx, path string) (FileStats, error) {
	log := l.logger(ctx)

	events, skipped, err := record.ReadLogFile(path, l.skipMalformed)
	if err != nil {
		return FileStats{}, err
	}
	l.warnSkipped(ctx, skipped)

	plays := transform.NextSongs(events)
	log.Debug().Str("file", path).Int("length", len(plays)).Msg("log file")

	stats := FileStats{Records: len(events), Skipped: len(skipped), NextSong: len(plays)}

	for _, t := range transform.Times(plays) {
		if err := tx.InsertTime(ctx, t); err != nil {
			return FileStats{}, err
		}
		stats.TimeRows++
	}

	for _, u := range transform.Users(plays) {
		if err := tx.InsertUser(ctx, u); err != nil {
			return FileStats{}, err
		}
		stats.Users++
	}

	for _, e := range plays {
		songID, artistID, err := tx.FindSong(ctx, e.Song, e.Artist, e.Length)
		if err != nil {
			return FileStats{}, err
		}
		if songID.Valid {
			stats.Matched++
		} else {
			log.Trace().Str("song", e.Song.String).Str("artist", e.Artist.String).Msg("no stored song")
		}

		if err := tx.InsertSongPlay(ctx, transform.SongPlay(e, songID, artistID)); err != nil {
			return FileStats{}, err
		}
		stats.SongPlays++
	}

	return stats, nil
}

func (l *Loader) warnSkipped(ctx context.Context, skipped []*record.ParseError) {
	log := l.logger(ctx)
	for _, perr := range skipped {
		log.Warn().Err(perr.Err).Str("file", perr.Path).Int("line", perr.Line).Msg("skipping malformed line")
	}
}
