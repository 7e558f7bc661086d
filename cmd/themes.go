package cmd

import (
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/spf13/cobra"

	"github.com/zjrosen/xselect/internal/ui/styles"
)

var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List theme presets and color tokens",
	Long: `List the built-in theme presets and every color token that can be
overridden under theme.colors in the config file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return printThemes(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(themesCmd)
}

func printThemes(w io.Writer) error {
	if _, err := fmt.Fprintln(w, "Presets:"); err != nil {
		return err
	}
	for _, name := range slices.Sorted(maps.Keys(styles.Presets)) {
		if _, err := fmt.Fprintf(w, "  %-18s %s\n", name, styles.Presets[name].Description); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintln(w, "\nColor tokens:"); err != nil {
		return err
	}
	for _, token := range styles.AllTokens() {
		if _, err := fmt.Fprintf(w, "  %-24s %s\n", token, styles.DefaultPreset.Colors[token]); err != nil {
			return err
		}
	}
	return nil
}
