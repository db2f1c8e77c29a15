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
	"fmt"

	"github.com/spf13/cobra"

	"github.com/valpere/verbico/internal/catalog"
)

var detectLocal bool

var detectCmd = &cobra.Command{
	Use:   "detect [text...]",
	Short: "Detect the language of text",
	Long: `Print the catalog code of the language the text is written in.

Detection never fails: when the upstream is unreachable the answer comes
from a character-range heuristic, which defaults to English.`,
	Example: `  verbico detect "Bonjour tout le monde"
  verbico detect --local "Привет"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readText(args, cmd.InOrStdin())
		if err != nil {
			return err
		}

		ctx := context.Background()
		svc, err := buildService(ctx, cfg, detectLocal)
		if err != nil {
			return err
		}

		code := svc.DetectLanguage(ctx, text)
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", code, catalog.Name(code))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(detectCmd)

	detectCmd.Flags().BoolVar(&detectLocal, "local", false, "Call the upstream API directly instead of the server")
	detectCmd.Flags().Bool("statistical", false, "With --local, try offline statistical detection before the heuristic")
	detectCmd.Flags().String("server", "", "Server base URL (overrides client.base_url)")

	bindFlag(detectCmd, "detection.statistical", "statistical")
	bindFlag(detectCmd, "client.base_url", "server")
}
