package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/melroyanthony/provet/internal/artifact"
	"github.com/melroyanthony/provet/internal/config"
	"github.com/melroyanthony/provet/internal/generation"
	"github.com/melroyanthony/provet/internal/platform"
	"github.com/melroyanthony/provet/internal/platform/logger"
)

var (
	generateOutputDir   string
	generateTemplateDir string
	generateModel       string
	generateTemperature float64
	generateMaxTokens   int
)

var generateCmd = &cobra.Command{
	Use:   "generate <consultation.json>",
	Short: "Generate a discharge note from a consultation record",
	Long: `Generate reads a consultation record from the given JSON file, produces a
discharge note with the configured language model, and saves it as
<stem>_discharge.json in the output directory.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		log := logger.SetupCLI(cfg.Server.LogLevel)
		if generateTemplateDir != "" {
			cfg.LLM.PromptDir = generateTemplateDir
		}

		ctx := cmd.Context()
		generator, err := platform.NewNoteGenerator(ctx, log, cfg)
		if err != nil {
			return err
		}

		inputPath := args[0]
		raw, err := loadConsultationFile(inputPath)
		if err != nil {
			return err
		}

		opts := generation.Options{
			Model:           generateModel,
			MaxTokens:       generateMaxTokens,
			SourceRecordRef: inputPath,
		}
		if cmd.Flags().Changed("temperature") {
			opts.Temperature = &generateTemperature
		}

		result, err := generator.Generate(ctx, raw, opts)
		if err != nil {
			return err
		}

		outputDir := generateOutputDir
		if outputDir == "" {
			outputDir = cfg.Output.Dir
		}
		outputPath, err := artifact.NewWriter(outputDir).Write(result, inputPath)
		if err != nil {
			return err
		}

		cmd.Printf("Discharge note saved to %s\n", outputPath)
		return nil
	},
}

func init() {
	generateCmd.Flags().StringVarP(&generateOutputDir, "output-dir", "o", "",
		"directory for the generated discharge note (default: configured output dir)")
	generateCmd.Flags().StringVar(&generateTemplateDir, "template-dir", "",
		"directory holding an instructions.txt prompt override")
	generateCmd.Flags().StringVarP(&generateModel, "model", "m", "",
		"model to use, overriding the configured default")
	generateCmd.Flags().Float64VarP(&generateTemperature, "temperature", "t", 0,
		"sampling temperature, overriding the configured default")
	generateCmd.Flags().IntVar(&generateMaxTokens, "max-tokens", 0,
		"completion token budget, overriding the configured default")
}
