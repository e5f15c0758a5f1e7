// Package record holds the input and output shapes of the ETL run: the
// song and activity-log lines read from disk, and the rows written to the
// star schema.
package record

// SongData is one line of a song-metadata file. It describes a song and the
// artist who recorded it.
type SongData struct {
	SongID          NullString  `json:"song_id"`
	Title           NullString  `json:"title"`
	ArtistID        NullString  `json:"artist_id"`
	Year            NullInt64   `json:"year"`
	Duration        NullFloat64 `json:"duration"`
	ArtistName      NullString  `json:"artist_name"`
	ArtistLatitude  NullFloat64 `json:"artist_latitude"`
	ArtistLongitude NullFloat64 `json:"artist_longitude"`
}

// LogEvent is one line of an activity log.
type LogEvent struct {
	TS        int64       `json:"ts"`
	UserID    NullString  `json:"userId"`
	FirstName NullString  `json:"firstName"`
	LastName  NullString  `json:"lastName"`
	Gender    NullString  `json:"gender"`
	Level     NullString  `json:"level"`
	Page      string      `json:"page"`
	Song      NullString  `json:"song"`
	Artist    NullString  `json:"artist"`
	Length    NullFloat64 `json:"length"`
	SessionID NullInt64   `json:"sessionId"`
	Location  NullString  `json:"location"`
	UserAgent NullString  `json:"userAgent"`
}

type SongRecord struct {
	SongID   NullString
	Title    NullString
	ArtistID NullString
	Year     NullInt64
	Duration NullFloat64
}

type ArtistRecord struct {
	ArtistID  NullString
	Name      NullString
	Latitude  NullFloat64
	Longitude NullFloat64
}

// TimeRecord breaks a millisecond timestamp into calendar units. Weekday
// counts from Monday = 0; Week is the ISO week number.
type TimeRecord struct {
	StartTime int64
	Hour      int
	Day       int
	Week      int
	Month     int
	Year      int
	Weekday   int
}

type UserRecord struct {
	UserID    NullString
	FirstName NullString
	LastName  NullString
	Gender    NullString
	Level     NullString
}

// SongPlayRecord is the fact row for one NextSong event. SongID and ArtistID
// stay null when the event couldn't be matched to a stored song.
type SongPlayRecord struct {
	StartTime int64
	UserID    NullString
	SongID    NullString
	Level     NullString
	ArtistID  NullString
	SessionID NullInt64
	Location  NullString
	UserAgent NullString
}
