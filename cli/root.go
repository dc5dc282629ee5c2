/*
   Copyright 2025 The DIRPX Authors.

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

// Package cli implements the refid command line tool: identifier
// inspection and resolution against a manifest-described universe.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func NewRootCommand(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "refid",
		Short: "Inspect and resolve persisted reference identifiers",
		Long: `Refid encodes type and member descriptors into stable identifier
strings and resolves stored identifiers back against a set of loaded
units. The CLI works offline on the identifier grammar (explain) or
against a TOML manifest describing units and types (resolve, units).`,
	}

	explainCmd := &cobra.Command{
		Use:   "explain <identifier>",
		Short: "Decompose an identifier without resolving it",
		Args:  cobra.ExactArgs(1),
		RunE:  RunExplain,
	}

	resolveCmd := &cobra.Command{
		Use:   "resolve <identifier>",
		Short: "Resolve an identifier against a manifest universe",
		Args:  cobra.ExactArgs(1),
		RunE:  RunResolve,
	}
	resolveCmd.Flags().String("manifest", "refid-manifest.toml", "Manifest file describing units and types")
	resolveCmd.Flags().String("config", "", "Optional refid.toml with resolution settings")
	resolveCmd.Flags().Int("suggest", 5, "Maximum number of near-miss suggestions on failure")

	unitsCmd := &cobra.Command{
		Use:   "units",
		Short: "List the units and types of a manifest universe",
		RunE:  RunUnits,
	}
	unitsCmd.Flags().String("manifest", "refid-manifest.toml", "Manifest file describing units and types")
	unitsCmd.Flags().String("config", "", "Optional refid.toml with resolution settings")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "refid %s\n", version)
		},
	}

	rootCmd.AddCommand(
		explainCmd,
		resolveCmd,
		unitsCmd,
		versionCmd,
	)

	return rootCmd
}
