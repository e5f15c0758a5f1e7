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
	"os"
	"os/signal"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"github.com/ademuri/sparkify-etl/internal/logging"
	"github.com/ademuri/sparkify-etl/internal/store"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "sparkify-etl",
	Short: "Loads song metadata and activity logs into a star schema",
	Long: `Reads every song file under --song-data and every activity log under
--log-data, and loads them into the songs, artists, users, time and songplays
tables. Each file is committed on its own.

The tables must already exist; see create-tables.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := loadRunConfig()
		if err != nil {
			return err
		}
		return runETL(cmd.Context(), cmd.OutOrStdout(), config)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.sparkify-etl.yaml)")

	flags.String("driver", store.DriverSQLite, "Database driver: sqlite3 or pgx")
	viper.BindPFlag("driver", flags.Lookup("driver"))

	flags.StringP("dsn", "d", "./sparkify.db",
		"SQLite path, or PostgreSQL connection string (e.g. \"host=127.0.0.1 dbname=sparkifydb user=student password=student\")")
	viper.BindPFlag("dsn", flags.Lookup("dsn"))

	flags.Uint("connect-attempts", 3, "Number of times to try reaching the database")
	viper.BindPFlag("connect-attempts", flags.Lookup("connect-attempts"))

	flags.String("log-level", "info", "Log level: trace, debug, info, warn, error")
	viper.BindPFlag("log-level", flags.Lookup("log-level"))

	flags.String("log-format", "console", "Log format: console or json")
	viper.BindPFlag("log-format", flags.Lookup("log-format"))

	local := rootCmd.Flags()
	local.String("song-data", "./data/song_data", "Directory holding song metadata files")
	viper.BindPFlag("song-data", local.Lookup("song-data"))

	local.String("log-data", "./data/log_data", "Directory holding activity log files")
	viper.BindPFlag("log-data", local.Lookup("log-data"))

	local.String("ext", ".json", "Extension of the files to load")
	viper.BindPFlag("ext", local.Lookup("ext"))

	local.Bool("skip-malformed", false, "Log and skip lines that aren't valid JSON instead of failing")
	viper.BindPFlag("skip-malformed", local.Lookup("skip-malformed"))

	local.Float64("files-per-second", 0, "Maximum files loaded per second (0 is unlimited)")
	viper.BindPFlag("files-per-second", local.Lookup("files-per-second"))

	local.StringP("output", "o", "table", "Summary format: table, yaml or json")
	viper.BindPFlag("output", local.Lookup("output"))
}

// initConfig reads in config file, .env and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		// Search config in home directory with name ".sparkify-etl" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".sparkify-etl")
	}

	// A missing .env is fine.
	_ = godotenv.Load()

	viper.SetEnvPrefix("sparkify")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func storeConfig() store.Config {
	return store.Config{
		Driver:          viper.GetString("driver"),
		DSN:             viper.GetString("dsn"),
		ConnectAttempts: viper.GetUint("connect-attempts"),
	}
}

func logConfig() logging.Config {
	return logging.Config{
		Level:  viper.GetString("log-level"),
		Format: viper.GetString("log-format"),
	}
}
