/*
Copyright © 2025 Valentyn Solomko <valentyn.solomko@gmail.com>

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
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/valpere/verbico/internal/history"
	"github.com/valpere/verbico/internal/output"
)

var historyFormat string

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage the translation history",
	Long:  `List, inspect, export, and clear the last 10 translations kept in local storage.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := rootCmd.PersistentPreRunE(cmd, args); err != nil {
			return err
		}
		return checkFormat(historyFormat)
	},
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded translations, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		h, closeDB, err := openHistory(context.Background(), cfg)
		if err != nil {
			return err
		}
		defer closeDB()

		return output.Translations(cmd.OutOrStdout(), historyFormat, h.List())
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one translation in full",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		h, closeDB, err := openHistory(context.Background(), cfg)
		if err != nil {
			return err
		}
		defer closeDB()

		t, err := h.Get(args[0])
		if errors.Is(err, history.ErrNotFound) {
			return fmt.Errorf("no translation with id %q", args[0])
		}
		if err != nil {
			return err
		}
		return output.Translation(cmd.OutOrStdout(), historyFormat, t)
	},
}

var historyExportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Write the history as JSON, YAML or TOML",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format := historyFormat
		if format == output.FormatTable {
			format = output.FormatJSON
		}

		h, closeDB, err := openHistory(context.Background(), cfg)
		if err != nil {
			return err
		}
		defer closeDB()

		w := cmd.OutOrStdout()
		if len(args) == 1 {
			f, err := os.Create(args[0])
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", args[0], err)
			}
			defer f.Close()
			w = f
		}
		if err := output.Encode(w, format, "translations", h.List()); err != nil {
			return fmt.Errorf("failed to export history: %w", err)
		}
		if len(args) == 1 {
			stderrf("Exported %d translations to %s\n", h.Len(), args[0])
		}
		return nil
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all recorded translations",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		h, closeDB, err := openHistory(ctx, cfg)
		if err != nil {
			return err
		}
		defer closeDB()

		n := h.Len()
		if err := h.Clear(ctx); err != nil {
			return fmt.Errorf("failed to clear history: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d translations from history.\n", n)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.PersistentFlags().StringVarP(&historyFormat, "format", "o", output.FormatTable, "Output format: table, json, yaml, toml")
	historyCmd.PersistentFlags().String("db", "", "Database path (overrides history.db_path)")
	bindPersistentFlag(historyCmd, "history.db_path", "db")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyExportCmd)
	historyCmd.AddCommand(historyClearCmd)
}
