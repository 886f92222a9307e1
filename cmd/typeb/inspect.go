package main

import (
	"fmt"
	"os"

	"github.com/aretw0/typeb/internal/cli"
	"github.com/aretw0/typeb/internal/presentation/graph"
	"github.com/aretw0/typeb/internal/presentation/report"
	"github.com/aretw0/typeb/internal/presentation/tui"
	"github.com/aretw0/typeb/pkg/domain"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Show a key's settings and, optionally, a letter-by-letter trace",
	Example: `  typeb inspect --key 1941-12-07
  typeb inspect --switches 9-1,24,6-23 --trace ATTACK
  typeb inspect --switches 9-1,24,6-23 --mermaid`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, _ := newLogger(cmd)
		ctx := cmd.Context()

		store, err := openStore(cmd)
		if err != nil {
			return err
		}
		sheet, err := cli.ResolveSheet(ctx, keyOptions(cmd), store)
		if err != nil {
			return err
		}

		trace, _ := cmd.Flags().GetString("trace")
		decrypt, _ := cmd.Flags().GetBool("decrypt")
		limit, _ := cmd.Flags().GetInt("limit")
		mermaid, _ := cmd.Flags().GetBool("mermaid")
		plain, _ := cmd.Flags().GetBool("plain")

		rec := &report.Recorder{Limit: limit}
		m, err := cli.NewMachine(sheet, logger, false, rec.Hooks())
		if err != nil {
			return err
		}

		dir := domain.Encipher
		if decrypt {
			dir = domain.Decipher
		}

		out := cmd.OutOrStdout()
		if trace != "" {
			if dir == domain.Encipher {
				_, err = m.EncryptContext(ctx, trace)
			} else {
				_, err = m.DecryptContext(ctx, trace)
			}
			if err != nil {
				return err
			}
		}

		if mermaid {
			var overlay *graph.Overlay
			if len(rec.Events) > 0 {
				overlay = &graph.Overlay{Class: rec.Events[0].Class, Direction: dir}
			}
			fmt.Fprint(out, graph.GenerateMermaid(m.Settings(), overlay))
			return nil
		}

		isTTY := out == os.Stdout && tui.IsTerminal(os.Stdout)
		render := tui.NewRenderer(tui.Width(os.Stdout, 100), plain || !isTTY)
		var mdOpts []report.Option
		if isTTY && !plain {
			mdOpts = append(mdOpts, report.WithLetterStyle(tui.Class))
		}
		rendered, err := render(report.Markdown(sheet.Name, m.Settings(), rec.Events, mdOpts...))
		if err != nil {
			return err
		}
		if isTTY && !plain {
			tui.PrintBanner(out, typebVersion())
		}
		fmt.Fprint(out, rendered)
		return nil
	},
}

func init() {
	addKeyFlags(inspectCmd)
	inspectCmd.Flags().String("trace", "", "Run this text through the machine and show each letter")
	inspectCmd.Flags().Bool("decrypt", false, "Trace in the decrypt direction")
	inspectCmd.Flags().Int("limit", 50, "Maximum letters in the trace (0 for all)")
	inspectCmd.Flags().Bool("mermaid", false, "Print the signal path as a Mermaid flowchart instead; with --trace, highlight the first letter's path")
	inspectCmd.Flags().Bool("plain", false, "Print Markdown without terminal styling")
	rootCmd.AddCommand(inspectCmd)
}
