package main

import (
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list [prefix]",
	Aliases: []string{"ls"},
	Short:   "List the functions that would be wrapped",
	Args:    cobra.MaximumNArgs(1),
	RunE:    runList,
}

func init() {
	addCollectFlags(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	log := setupLogger()

	cfg, err := collectConfig(cmd)
	if err != nil {
		return err
	}
	if err := requireCollectConfig(cfg); err != nil {
		return err
	}

	funcs, _, err := collectFunctions(cmd, cfg, log)
	if err != nil {
		return err
	}

	var data [][]string
	for _, fn := range funcs {
		if len(args) > 0 && !strings.HasPrefix(fn.Name, args[0]) {
			continue
		}
		params := make([]string, 0, len(fn.Params))
		for i := range fn.Params {
			params = append(params, fn.Params[i].String())
		}
		data = append(data, []string{fn.Name, fn.Return.String(), strings.Join(params, ", ")})
	}

	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.SetHeader([]string{"NAME", "RETURNS", "PARAMETERS"})
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetNoWhiteSpace(true)
	table.SetTablePadding("    ")
	table.AppendBulk(data)
	table.Render()

	return nil
}
