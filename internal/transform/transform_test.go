package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ademuri/sparkify-etl/internal/record"
)

func song(songID, artistID string) record.SongData {
	return record.SongData{
		SongID:     record.Str(songID),
		Title:      record.Str("title " + songID),
		ArtistID:   record.Str(artistID),
		Year:       record.Int(2000),
		Duration:   record.Float(180.5),
		ArtistName: record.Str("name " + artistID),
	}
}

func event(page string, ts int64, userID string) record.LogEvent {
	return record.LogEvent{
		TS:        ts,
		UserID:    record.Str(userID),
		FirstName: record.Str("First" + userID),
		LastName:  record.Str("Last" + userID),
		Gender:    record.Str("F"),
		Level:     record.Str("free"),
		Page:      page,
		SessionID: record.Int(1),
	}
}

func TestSongsAndArtistsDedup(t *testing.T) {
	data := []record.SongData{
		song("S1", "A1"),
		song("S2", "A1"),
		song("S1", "A2"),
		song("S3", "A3"),
	}
	data[2].Title = record.Str("second S1")

	songs := Songs(data)
	require.Len(t, songs, 3)
	assert.Equal(t, record.Str("S1"), songs[0].SongID)
	assert.Equal(t, record.Str("title S1"), songs[0].Title, "first occurrence wins")
	assert.Equal(t, record.Str("S2"), songs[1].SongID)
	assert.Equal(t, record.Str("S3"), songs[2].SongID)

	artists := Artists(data)
	require.Len(t, artists, 3)
	assert.Equal(t, record.Str("A1"), artists[0].ArtistID)
	assert.Equal(t, record.Str("name A1"), artists[0].Name)
	assert.Equal(t, record.Str("A2"), artists[1].ArtistID)
	assert.Equal(t, record.Str("A3"), artists[2].ArtistID)
}

func TestSingleSongFile(t *testing.T) {
	d := song("S1", "A1")
	songs := Songs([]record.SongData{d})
	artists := Artists([]record.SongData{d})

	require.Len(t, songs, 1)
	require.Len(t, artists, 1)
	assert.Equal(t, record.SongRecord{
		SongID:   record.Str("S1"),
		Title:    record.Str("title S1"),
		ArtistID: record.Str("A1"),
		Year:     record.Int(2000),
		Duration: record.Float(180.5),
	}, songs[0])
	assert.False(t, artists[0].Latitude.Valid)
}

func TestNullKeysDedupTogether(t *testing.T) {
	data := []record.SongData{
		{Title: record.Str("one")},
		{Title: record.Str("two")},
	}
	assert.Len(t, Songs(data), 1)
	assert.Len(t, Artists(data), 1)
}

func TestNextSongs(t *testing.T) {
	events := []record.LogEvent{
		event("Home", 1, "U1"),
		event("NextSong", 2, "U1"),
		event("Logout", 3, "U1"),
		event("NextSong", 4, "U2"),
		event("nextsong", 5, "U2"),
	}

	plays := NextSongs(events)
	require.Len(t, plays, 2)
	assert.Equal(t, int64(2), plays[0].TS)
	assert.Equal(t, int64(4), plays[1].TS)
}

func TestTime(t *testing.T) {
	tests := []struct {
		name string
		ts   int64
		want record.TimeRecord
	}{
		{
			name: "thursday evening",
			ts:   1541106106796,
			want: record.TimeRecord{StartTime: 1541106106796, Hour: 21, Day: 1, Week: 44, Month: 11, Year: 2018, Weekday: 3},
		},
		{
			name: "iso week rolls into next year",
			ts:   1546300799000,
			want: record.TimeRecord{StartTime: 1546300799000, Hour: 23, Day: 31, Week: 1, Month: 12, Year: 2018, Weekday: 0},
		},
		{
			name: "new year midnight",
			ts:   1230768000000,
			want: record.TimeRecord{StartTime: 1230768000000, Hour: 0, Day: 1, Week: 1, Month: 1, Year: 2009, Weekday: 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Time(tt.ts))
		})
	}
}

func TestTimesKeepsDuplicates(t *testing.T) {
	events := []record.LogEvent{
		event("NextSong", 1541106106796, "U1"),
		event("NextSong", 1541106106796, "U2"),
	}

	times := Times(events)
	require.Len(t, times, 2)
	assert.Equal(t, times[0], times[1])
}

func TestUsersDedup(t *testing.T) {
	events := []record.LogEvent{
		event("NextSong", 1, "U1"),
		event("NextSong", 2, "U2"),
		event("NextSong", 3, "U1"),
	}
	events[2].Level = record.Str("paid")

	users := Users(events)
	require.Len(t, users, 2)
	assert.Equal(t, record.Str("U1"), users[0].UserID)
	assert.Equal(t, record.Str("free"), users[0].Level, "first occurrence wins")
	assert.Equal(t, record.Str("U2"), users[1].UserID)
}

func TestUsersSkipsMissingUserID(t *testing.T) {
	events := []record.LogEvent{
		event("NextSong", 1, "U1"),
		event("NextSong", 2, "U1"),
		event("NextSong", 3, "U2"),
	}
	events[1].UserID = record.NullString{}

	users := Users(events)
	require.Len(t, users, 2)
	assert.Equal(t, record.Str("U1"), users[0].UserID)
	assert.Equal(t, record.Str("U2"), users[1].UserID)
}

func TestSongPlay(t *testing.T) {
	e := event("NextSong", 42, "U1")
	e.Location = record.Str("Phoenix, AZ")
	e.UserAgent = record.Str("Mozilla")

	play := SongPlay(e, record.Str("S1"), record.Str("A1"))
	assert.Equal(t, record.SongPlayRecord{
		StartTime: 42,
		UserID:    record.Str("U1"),
		SongID:    record.Str("S1"),
		Level:     record.Str("free"),
		ArtistID:  record.Str("A1"),
		SessionID: record.Int(1),
		Location:  record.Str("Phoenix, AZ"),
		UserAgent: record.Str("Mozilla"),
	}, play)

	miss := SongPlay(e, record.NullString{}, record.NullString{})
	assert.False(t, miss.SongID.Valid)
	assert.False(t, miss.ArtistID.Valid)
}
