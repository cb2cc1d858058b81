package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"safelvgl/internal/lvgl"
	"safelvgl/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	RunE:  runVersion,
}

func init() {
	versionCmd.Flags().StringP("lvgl", "l", "", "also report the version of this lvgl source tree")
}

func runVersion(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "safelvgl %s\n", version.Colored())
	if version.GitCommit != "" {
		fmt.Fprintf(out, "commit %s\n", version.GitCommit)
	}
	if version.BuildDate != "" {
		fmt.Fprintf(out, "built %s\n", version.BuildDate)
	}

	lvglPath, _ := cmd.Flags().GetString("lvgl")
	if lvglPath == "" {
		return nil
	}
	v, err := lvgl.ReadVersion(lvglPath)
	if err != nil {
		return err
	}
	if v.IsZero() {
		fmt.Fprintln(out, "lvgl version macros not found")
		return nil
	}
	fmt.Fprintf(out, "lvgl %s\n", v)
	return nil
}
