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

	"github.com/spf13/cobra"

	"github.com/ademuri/sparkify-etl/internal/store"
)

// createTablesCmd represents the create-tables command
var createTablesCmd = &cobra.Command{
	Use:   "create-tables",
	Short: "Creates the star schema tables",
	Long:  `Applies the songs, artists, users, time and songplays table definitions for the selected driver. Running it again is a no-op.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		config := storeConfig()
		if err := store.CreateTables(cmd.Context(), config); err != nil {
			return fmt.Errorf("creating tables: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Tables ready in %s database\n", config.Driver)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(createTablesCmd)
}
