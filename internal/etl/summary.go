package etl

// FileStats counts what one file contributed. Row counts are statements
// submitted, not rows the store ended up keeping.
type FileStats struct {
	Records   int `json:"records" yaml:"records"`
	Skipped   int `json:"skipped_lines" yaml:"skipped_lines"`
	NextSong  int `json:"next_song_events" yaml:"next_song_events"`
	Songs     int `json:"songs" yaml:"songs"`
	Artists   int `json:"artists" yaml:"artists"`
	Users     int `json:"users" yaml:"users"`
	TimeRows  int `json:"time_rows" yaml:"time_rows"`
	SongPlays int `json:"songplays" yaml:"songplays"`
	Matched   int `json:"matched_songplays" yaml:"matched_songplays"`
}

// PhaseSummary totals one pass over a data directory.
type PhaseSummary struct {
	Root      string `json:"root" yaml:"root"`
	Files     int    `json:"files_found" yaml:"files_found"`
	Processed int    `json:"files_processed" yaml:"files_processed"`
	FileStats `yaml:",inline"`
}

func (p *PhaseSummary) add(s FileStats) {
	p.Records += s.Records
	p.Skipped += s.Skipped
	p.NextSong += s.NextSong
	p.Songs += s.Songs
	p.Artists += s.Artists
	p.Users += s.Users
	p.TimeRows += s.TimeRows
	p.SongPlays += s.SongPlays
	p.Matched += s.Matched
}

// Summary is the result of a full load.
type Summary struct {
	RunID string       `json:"run_id" yaml:"run_id"`
	Songs PhaseSummary `json:"song_data" yaml:"song_data"`
	Logs  PhaseSummary `json:"log_data" yaml:"log_data"`

	// Stored holds the row count of each table once the load finished.
	Stored map[string]int64 `json:"stored_rows,omitempty" yaml:"stored_rows,omitempty"`
}

// TimeRows is the number of time rows submitted. It equals the number of
// NextSong events loaded, even when timestamps collide in the store.
func (s Summary) TimeRows() int {
	return s.Logs.TimeRows
}

// SongPlayRows is the number of songplay rows submitted.
func (s Summary) SongPlayRows() int {
	return s.Logs.SongPlays
}
