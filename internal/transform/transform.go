// Package transform reshapes parsed input lines into star-schema rows. It
// performs no I/O.
package transform

import (
	"time"

	"github.com/ademuri/sparkify-etl/internal/record"
)

type nullKey struct {
	valid bool
	value string
}

func keyOf(n record.NullString) nullKey {
	return nullKey{valid: n.Valid, value: n.String}
}

// NextSongPage is the page value of events that represent a song play.
const NextSongPage = "NextSong"

// Songs projects song rows out of song data, keeping the first occurrence
// of each song_id. A null song_id counts as one key of its own.
func Songs(data []record.SongData) []record.SongRecord {
	seen := make(map[nullKey]bool)
	var songs []record.SongRecord
	for _, d := range data {
		k := keyOf(d.SongID)
		if seen[k] {
			continue
		}
		seen[k] = true
		songs = append(songs, record.SongRecord{
			SongID:   d.SongID,
			Title:    d.Title,
			ArtistID: d.ArtistID,
			Year:     d.Year,
			Duration: d.Duration,
		})
	}
	return songs
}

// Artists projects artist rows out of song data, keeping the first
// occurrence of each artist_id.
func Artists(data []record.SongData) []record.ArtistRecord {
	seen := make(map[nullKey]bool)
	var artists []record.ArtistRecord
	for _, d := range data {
		k := keyOf(d.ArtistID)
		if seen[k] {
			continue
		}
		seen[k] = true
		artists = append(artists, record.ArtistRecord{
			ArtistID:  d.ArtistID,
			Name:      d.ArtistName,
			Latitude:  d.ArtistLatitude,
			Longitude: d.ArtistLongitude,
		})
	}
	return artists
}

// NextSongs returns the song-play events in their original order.
func NextSongs(events []record.LogEvent) []record.LogEvent {
	var plays []record.LogEvent
	for _, e := range events {
		if e.Page == NextSongPage {
			plays = append(plays, e)
		}
	}
	return plays
}

// Time decomposes a millisecond epoch timestamp, read as UTC.
func Time(ts int64) record.TimeRecord {
	t := time.UnixMilli(ts).UTC()
	_, week := t.ISOWeek()
	return record.TimeRecord{
		StartTime: ts,
		Hour:      t.Hour(),
		Day:       t.Day(),
		Week:      week,
		Month:     int(t.Month()),
		Year:      t.Year(),
		Weekday:   (int(t.Weekday()) + 6) % 7,
	}
}

// Times returns one time row per event. Events sharing a timestamp produce
// duplicate rows.
func Times(events []record.LogEvent) []record.TimeRecord {
	times := make([]record.TimeRecord, 0, len(events))
	for _, e := range events {
		times = append(times, Time(e.TS))
	}
	return times
}

// Users projects user rows out of events, keeping the first occurrence of
// each user id. Events without a user id yield no user row.
func Users(events []record.LogEvent) []record.UserRecord {
	seen := make(map[nullKey]bool)
	var users []record.UserRecord
	for _, e := range events {
		if !e.UserID.Valid {
			continue
		}
		k := keyOf(e.UserID)
		if seen[k] {
			continue
		}
		seen[k] = true
		users = append(users, record.UserRecord{
			UserID:    e.UserID,
			FirstName: e.FirstName,
			LastName:  e.LastName,
			Gender:    e.Gender,
			Level:     e.Level,
		})
	}
	return users
}

// SongPlay builds the fact row for an event from the ids a lookup resolved.
func SongPlay(e record.LogEvent, songID, artistID record.NullString) record.SongPlayRecord {
	return record.SongPlayRecord{
		StartTime: e.TS,
		UserID:    e.UserID,
		SongID:    songID,
		Level:     e.Level,
		ArtistID:  artistID,
		SessionID: e.SessionID,
		Location:  e.Location,
		UserAgent: e.UserAgent,
	}
}
