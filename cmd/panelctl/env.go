package main

import (
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/spf13/cobra"
)

var envOpts struct {
	export bool
}

var envCmd = &cobra.Command{
	Use:   "env",
	Short: "Print the effective panel settings as environment variables",
	Long: `Print the panel settings after defaults and overrides are applied, in the
notation the panel writes. The output can be used to launch an applet with
the same settings:

  eval "$(panelctl env --export --anchor Left --size L)" && my-applet`,
	RunE: runEnv,
}

func init() {
	rootCmd.AddCommand(envCmd)

	envCmd.Flags().BoolVar(&envOpts.export, "export", false,
		"Prefix lines with export and quote values for a shell")
}

func runEnv(cmd *cobra.Command, args []string) error {
	env := panelContext().Env()

	keys := make([]string, 0, len(env))
	for k := range env {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		var line string
		if envOpts.export {
			line = fmt.Sprintf("export %s=%s", k, strconv.Quote(env[k]))
		} else {
			line = k + "=" + env[k]
		}
		if _, err := fmt.Fprintln(os.Stdout, line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}
