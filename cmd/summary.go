/*
Copyright 2026 Google LLC

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"io"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"

	"github.com/ademuri/sparkify-etl/internal/etl"
	"github.com/ademuri/sparkify-etl/internal/store"
)

func validOutput(format string) bool {
	switch format {
	case "table", "yaml", "json":
		return true
	}
	return false
}

func writeSummary(out io.Writer, s etl.Summary, format string) error {
	switch format {
	case "yaml":
		encoder := yaml.NewEncoder(out)
		encoder.SetIndent(2)
		if err := encoder.Encode(s); err != nil {
			return fmt.Errorf("encoding summary: %w", err)
		}
		return encoder.Close()

	case "json":
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(s); err != nil {
			return fmt.Errorf("encoding summary: %w", err)
		}
		return nil

	default:
		return writeSummaryTable(out, s)
	}
}

// writeSummaryTable compares the rows submitted per table with what the
// store holds.
func writeSummaryTable(out io.Writer, s etl.Summary) error {
	submitted := map[string]int{
		"songs":     s.Songs.Songs,
		"artists":   s.Songs.Artists,
		"users":     s.Logs.Users,
		"time":      s.Logs.TimeRows,
		"songplays": s.Logs.SongPlays,
	}
	table := tablewriter.NewWriter(out)
	table.Header([]string{"Table", "Submitted", "Stored"})
	for _, name := range store.Tables {
		stored := "-"
		if n, ok := s.Stored[name]; ok {
			stored = strconv.FormatInt(n, 10)
		}
		if err := table.Append([]string{name, strconv.Itoa(submitted[name]), stored}); err != nil {
			return fmt.Errorf("rendering table: %w", err)
		}
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("rendering table: %w", err)
	}

	fmt.Fprintf(out, "files: %d song, %d log; NextSong events: %d; matched songplays: %d\n",
		s.Songs.Processed, s.Logs.Processed, s.Logs.NextSong, s.Logs.Matched)
	fmt.Fprintf(out, "times_count: %d songplays_count: %d\n", s.TimeRows(), s.SongPlayRows())
	return nil
}
