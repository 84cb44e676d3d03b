package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/pcbdrill/pkg/drill"
	pcbio "github.com/matzehuels/pcbdrill/pkg/io"
	"github.com/matzehuels/pcbdrill/pkg/pipeline"
)

// toolsCommand creates the tools command.
func (c *CLI) toolsCommand() *cobra.Command {
	var plated bool

	cmd := &cobra.Command{
		Use:   "tools FILE",
		Short: "Print the drill tool table of a board",
		Long: `Print the drill tool table of a board.

Tools are numbered from T10 in the order their diameters first appear. The
holes and slots columns count what the drill file would machine; excluded
counts plated holes and vias left out by --plated=false.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("plated") {
				plated = cfg.Drill.IncludePlated
			}

			data, err := pcbio.ReadFile(args[0])
			if err != nil {
				return err
			}
			runner := pipeline.NewRunner(nil, nil, c.Logger)
			res, err := runner.Assemble(data, pipeline.Options{IncludePlated: plated})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			printKeyValue(w, "Board", args[0])
			printKeyValue(w, "Tools", strconv.Itoa(len(res.Tools)))
			if res.Skipped > 0 {
				printKeyValue(w, "Skipped", strconv.Itoa(res.Skipped))
			}
			if len(res.Tools) > 0 {
				fmt.Fprintln(w, renderToolTable(res.Tools))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&plated, "plated", true, "count plated holes and vias")
	return cmd
}

// renderToolTable formats tools as a bordered table.
func renderToolTable(tools []drill.ToolUsage) string {
	rows := make([][]string, 0, len(tools))
	for _, t := range tools {
		rows = append(rows, []string{
			fmt.Sprintf("T%02d", t.Number),
			strconv.FormatFloat(t.Diameter, 'f', 3, 64),
			strconv.Itoa(t.Holes),
			strconv.Itoa(t.Slots),
			strconv.Itoa(t.Excluded),
		})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(StyleDim).
		Headers("TOOL", "DIAMETER (mm)", "HOLES", "SLOTS", "EXCLUDED").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return StyleTitle.Padding(0, 1)
			case col == 0:
				return StyleHighlight.Padding(0, 1)
			default:
				return StyleValue.Padding(0, 1).Align(lipgloss.Right)
			}
		}).
		String()
}
