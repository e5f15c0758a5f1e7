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
	"context"
	"fmt"
	"io"

	"github.com/spf13/viper"

	"github.com/ademuri/sparkify-etl/internal/etl"
	"github.com/ademuri/sparkify-etl/internal/logging"
	"github.com/ademuri/sparkify-etl/internal/store"
)

type RunConfig struct {
	Store          store.Config
	Log            logging.Config
	SongData       string
	LogData        string
	Ext            string
	SkipMalformed  bool
	FilesPerSecond float64
	Output         string
}

func loadRunConfig() (RunConfig, error) {
	config := RunConfig{
		Store:          storeConfig(),
		Log:            logConfig(),
		SongData:       viper.GetString("song-data"),
		LogData:        viper.GetString("log-data"),
		Ext:            viper.GetString("ext"),
		SkipMalformed:  viper.GetBool("skip-malformed"),
		FilesPerSecond: viper.GetFloat64("files-per-second"),
		Output:         viper.GetString("output"),
	}

	if !validOutput(config.Output) {
		return config, fmt.Errorf("--output: unknown format %q (want table, yaml or json)", config.Output)
	}
	if config.FilesPerSecond < 0 {
		return config, fmt.Errorf("--files-per-second: must not be negative")
	}
	return config, nil
}

func runETL(ctx context.Context, out io.Writer, config RunConfig) error {
	logger, err := logging.New(config.Log)
	if err != nil {
		return err
	}

	db, err := store.New(ctx, config.Store)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	logger.Info().Str("driver", db.Driver()).Msg("connected")

	loader := etl.NewLoader(db, etl.Options{
		Logger:         logger,
		Ext:            config.Ext,
		SkipMalformed:  config.SkipMalformed,
		FilesPerSecond: config.FilesPerSecond,
	})

	summary, err := loader.Run(ctx, config.SongData, config.LogData)
	if err != nil {
		return err
	}

	return writeSummary(out, summary, config.Output)
}
