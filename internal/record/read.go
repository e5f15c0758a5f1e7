package record

import (
	"bufio"
	"bytes"
	"fmt"
	"os"

	"github.com/goccy/go-json"
)

const maxLineSize = 16 * 1024 * 1024

// ParseError reports a line that isn't a valid JSON object.
type ParseError struct {
	Path string
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: %v", e.Path, e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ReadSongFile reads every song line in path. With skipMalformed set, bad
// lines are returned as ParseErrors alongside the records instead of
// aborting the read.
func ReadSongFile(path string, skipMalformed bool) ([]SongData, []*ParseError, error) {
	return readLines[SongData](path, skipMalformed)
}

// ReadLogFile reads every event line in path. See ReadSongFile for the
// meaning of skipMalformed.
func ReadLogFile(path string, skipMalformed bool) ([]LogEvent, []*ParseError, error) {
	return readLines[LogEvent](path, skipMalformed)
}

func readLines[T any](path string, skipMalformed bool) ([]T, []*ParseError, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening %q: %w", path, err)
	}
	defer f.Close()

	var records []T
	var skipped []*ParseError

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)
	line := 0
	for scanner.Scan() {
		line++
		text := bytes.TrimSpace(scanner.Bytes())
		if len(text) == 0 {
			continue
		}

		var rec T
		if err := decodeObject(text, &rec); err != nil {
			perr := &ParseError{Path: path, Line: line, Err: err}
			if !skipMalformed {
				return nil, skipped, perr
			}
			skipped = append(skipped, perr)
			continue
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, skipped, &ParseError{Path: path, Line: line + 1, Err: err}
	}

	return records, skipped, nil
}

// decodeObject unmarshals one line, which must hold a JSON object.
func decodeObject(text []byte, v any) error {
	if text[0] != '{' {
		return fmt.Errorf("expected a JSON object, got %.20q", text)
	}
	return json.Unmarshal(text, v)
}
