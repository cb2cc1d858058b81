package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"safelvgl/internal/config"
	"safelvgl/internal/generator"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the safe_lvgl wrapper sources",
	Long: `Parse the lvgl API header, collect every wrappable public function, and
write safe_lvgl.c and safe_lvgl.h into the output directory.`,
	RunE: runGenerate,
}

func init() {
	addCollectFlags(generateCmd)
	generateCmd.Flags().StringP("output", "o", "", "output directory for the generated sources")
	generateCmd.Flags().String("prefix", "", "wrapper name prefix")
	generateCmd.Flags().String("header", "", "path of the header document template")
	generateCmd.Flags().String("source", "", "path of the source document template")
	generateCmd.Flags().String("func-decl", "", "path of the function declaration template")
	generateCmd.Flags().String("func-def", "", "path of the function definition template")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	log := setupLogger()

	cfg, err := collectConfig(cmd)
	if err != nil {
		return err
	}
	applyGenerateFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	funcs, ver, err := collectFunctions(cmd, cfg, log)
	if err != nil {
		return err
	}

	em := generator.New(cfg.Prefix, ver, log)
	if err := em.LoadFuncTemplates(cfg.Templates.FuncDecl, cfg.Templates.FuncDef); err != nil {
		return err
	}
	if err := os.MkdirAll(cfg.OutputPath, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	if err := em.WriteDocuments(funcs, cfg.Templates.Header, cfg.Templates.Source, cfg.OutputPath); err != nil {
		return err
	}

	green := color.New(color.FgGreen)
	green.Fprintf(cmd.OutOrStdout(), "wrote %s and %s (%d functions, lvgl %s)\n",
		generator.HeaderName, generator.SourceName, len(funcs), ver)
	return nil
}

func applyGenerateFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("output") {
		cfg.OutputPath, _ = flags.GetString("output")
	}
	if flags.Changed("prefix") {
		cfg.Prefix, _ = flags.GetString("prefix")
	}
	if flags.Changed("header") {
		cfg.Templates.Header, _ = flags.GetString("header")
	}
	if flags.Changed("source") {
		cfg.Templates.Source, _ = flags.GetString("source")
	}
	if flags.Changed("func-decl") {
		cfg.Templates.FuncDecl, _ = flags.GetString("func-decl")
	}
	if flags.Changed("func-def") {
		cfg.Templates.FuncDef, _ = flags.GetString("func-def")
	}
}
