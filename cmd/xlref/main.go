// xlref is a small developer tool exposing the reference codec: converting
// between column letters and indexes, and decomposing reference text into
// its structural parts.
package main

import (
	"os"
	"strconv"

	"github.com/spf13/cobra"

	xlformula "github.com/vogtb/go-xlformula"
)

func main() {
	root := &cobra.Command{
		Use:   "xlref",
		Short: "Inspect and convert Excel cell and range references",
	}
	root.AddCommand(newColCommand())
	root.AddCommand(newParseCommand())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newColCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "col <letters|index>",
		Short: "Convert between column letters and a 1-based column index",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if index, err := strconv.Atoi(args[0]); err == nil {
				letters, err := xlformula.ColumnLetters(index)
				if err != nil {
					return err
				}
				cmd.Println(letters)
				return nil
			}
			index, err := xlformula.ColumnIndex(args[0])
			if err != nil {
				return err
			}
			cmd.Println(index)
			return nil
		},
	}
}

func newParseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "parse <reference>",
		Short: "Decompose reference text into workbook, sheet, and cells",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, err := xlformula.ParseRange(args[0])
			if err != nil {
				return err
			}
			if parsed.Workbook != "" {
				cmd.Printf("workbook: %s\n", parsed.Workbook)
			}
			if parsed.Sheet != "" {
				cmd.Printf("sheet:    %s\n", parsed.Sheet)
			}
			printCell(cmd, "anchor", parsed.Anchor)
			if parsed.Opposite != nil {
				printCell(cmd, "opposite", *parsed.Opposite)
			}
			return nil
		},
	}
}

func printCell(cmd *cobra.Command, label string, cell xlformula.ParsedCell) {
	cmd.Printf("%s:   column %s (%d) row %d %s\n",
		label, cell.Letters, cell.Col, cell.Row, describeKind(cell.Kind()))
}

func describeKind(kind xlformula.RefKind) string {
	switch kind {
	case xlformula.AbsRef:
		return "absolute"
	case xlformula.AbsRow:
		return "absolute row"
	case xlformula.AbsCol:
		return "absolute column"
	default:
		return "relative"
	}
}
