package cmd

import (
	"errors"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"github.com/ademuri/sparkify-etl/internal/discover"
	"github.com/ademuri/sparkify-etl/internal/etl"
	"github.com/ademuri/sparkify-etl/internal/store"
)

const (
	songLine = `{"num_songs":1,"song_id":"S1","title":"T1","artist_id":"A1","year":2000,"duration":180.5,"artist_name":"AR1","artist_latitude":null,"artist_longitude":null}`
	playOne  = `{"artist":"AR1","firstName":"Kaylee","gender":"F","lastName":"Summers","length":180.5,"level":"free","location":"Phoenix-Mesa-Scottsdale, AZ","page":"NextSong","sessionId":139,"song":"T1","ts":1541106106796,"userAgent":"Mozilla/5.0","userId":"U1"}`
	playTwo  = `{"artist":"Other","firstName":"Kaylee","gender":"F","lastName":"Summers","length":200.0,"level":"free","location":"Phoenix-Mesa-Scottsdale, AZ","page":"NextSong","sessionId":139,"song":"Elsewhere","ts":1541106352796,"userAgent":"Mozilla/5.0","userId":"U1"}`
	home     = `{"artist":null,"firstName":"Kaylee","gender":"F","lastName":"Summers","length":null,"level":"free","location":"Phoenix-Mesa-Scottsdale, AZ","page":"Home","sessionId":139,"song":null,"ts":1541106400000,"userAgent":"Mozilla/5.0","userId":"U1"}`
)

func TestCreateTablesAndLoad(t *testing.T) {
	d := newTestData(t)
	writeData(t, d.songDir, "A/A/A/TRAAAAW128F429D538.json", songLine)
	writeData(t, d.logDir, "2018/11/2018-11-01-events.json", playOne, home, playTwo)

	out, err := execute(t, "create-tables", "--dsn", d.dsn)
	if err != nil {
		t.Fatalf("create-tables failed: %v", err)
	}
	if !strings.Contains(out, "Tables ready") {
		t.Errorf("create-tables output = %q", out)
	}

	out, err = execute(t,
		"--dsn", d.dsn,
		"--song-data", d.songDir,
		"--log-data", d.logDir,
		"--log-level", "error",
		"--output", "json",
	)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	var summary etl.Summary
	if err := json.Unmarshal([]byte(out), &summary); err != nil {
		t.Fatalf("decoding summary %q: %v", out, err)
	}
	if summary.Songs.Songs != 1 || summary.Songs.Artists != 1 {
		t.Errorf("song phase = %+v, want 1 song and 1 artist", summary.Songs)
	}
	if summary.Logs.NextSong != 2 {
		t.Errorf("NextSong events = %d, want 2", summary.Logs.NextSong)
	}
	if summary.TimeRows() != 2 || summary.SongPlayRows() != 2 {
		t.Errorf("time/songplay rows = %d/%d, want 2/2", summary.TimeRows(), summary.SongPlayRows())
	}
	if summary.Logs.Users != 1 {
		t.Errorf("users = %d, want 1", summary.Logs.Users)
	}
	if summary.Logs.Matched != 1 {
		t.Errorf("matched songplays = %d, want 1", summary.Logs.Matched)
	}
	if summary.Stored["songplays"] != 2 {
		t.Errorf("stored songplays = %d, want 2", summary.Stored["songplays"])
	}
}

func TestLoadWithoutTables(t *testing.T) {
	d := newTestData(t)
	_, err := execute(t, "--dsn", d.dsn, "--song-data", d.songDir, "--log-data", d.logDir)
	if !errors.Is(err, store.ErrNoSchema) {
		t.Fatalf("expected ErrNoSchema, got %v", err)
	}
}

func TestLoadMissingDataDir(t *testing.T) {
	d := newTestData(t)
	if _, err := execute(t, "create-tables", "--dsn", d.dsn); err != nil {
		t.Fatalf("create-tables failed: %v", err)
	}

	_, err := execute(t, "--dsn", d.dsn, "--song-data", d.songDir, "--log-data", d.logDir, "--log-level", "error")
	var fsErr *discover.FilesystemError
	if !errors.As(err, &fsErr) {
		t.Fatalf("expected *discover.FilesystemError, got %v", err)
	}
}

func TestRejectsArguments(t *testing.T) {
	if _, err := execute(t, "extra"); err == nil {
		t.Error("expected an error for a positional argument")
	}
}

func TestRejectsBadOutput(t *testing.T) {
	d := newTestData(t)
	_, err := execute(t, "--dsn", d.dsn, "--output", "xml")
	if err == nil || !strings.Contains(err.Error(), "--output") {
		t.Errorf("expected --output error, got %v", err)
	}
}

func TestRejectsBadDriver(t *testing.T) {
	d := newTestData(t)
	_, err := execute(t, "create-tables", "--dsn", d.dsn, "--driver", "oracle")
	if err == nil || !strings.Contains(err.Error(), "unsupported driver") {
		t.Errorf("expected unsupported driver error, got %v", err)
	}
}

func TestCommands(t *testing.T) {
	if rootCmd.Use != "sparkify-etl" {
		t.Errorf("expected use 'sparkify-etl', got %s", rootCmd.Use)
	}
	if createTablesCmd.Use != "create-tables" {
		t.Errorf("expected use 'create-tables', got %s", createTablesCmd.Use)
	}
}
