package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/archexport/pkg/export"
)

// formatsCommand lists the format registry.
func (c *CLI) formatsCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "formats",
		Short: "List export formats",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			formats := export.Formats()
			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(formats)
			}
			fmt.Println(formatsTable(formats))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the registry as JSON")
	return cmd
}

// formatsTable renders the registry as a bordered table.
func formatsTable(formats []export.FormatInfo) string {
	rows := make([][]string, len(formats))
	for i, info := range formats {
		notes := info.PlannedWork
		if info.Implemented {
			notes = info.Description
		}
		rows[i] = []string{string(info.Format), info.Extension, info.MediaType, formatStatus(info), notes}
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Format", "File", "Media type", "Status", "Notes").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return listHeaderStyle
			}
			if row < 0 || row >= len(formats) {
				return lipgloss.NewStyle()
			}
			if !formats[row].Implemented {
				return lipgloss.NewStyle().Foreground(colorDim)
			}
			if col == 3 {
				return StyleSuccess
			}
			return lipgloss.NewStyle()
		}).
		Render()
}

// completeFormats completes --format with the implemented formats.
func completeFormats(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	var out []string
	for _, info := range export.Formats() {
		if info.Implemented && strings.HasPrefix(string(info.Format), toComplete) {
			out = append(out, string(info.Format)+"\t"+info.Description)
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}
