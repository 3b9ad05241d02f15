package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/melroyanthony/provet/internal/config"
	"github.com/melroyanthony/provet/internal/platform"
	"github.com/melroyanthony/provet/internal/platform/logger"
)

var renderTemplateDir string

var renderCmd = &cobra.Command{
	Use:   "render <consultation.json>",
	Short: "Render the prompt for a consultation record without calling the model",
	Long: `Render validates the consultation record and prints the exact prompt that
generate would send to the language model. No API call is made, so it works
without network access and is useful for inspecting prompt output.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		log := logger.SetupCLI(cfg.Server.LogLevel)
		if renderTemplateDir != "" {
			cfg.LLM.PromptDir = renderTemplateDir
		}

		generator, err := platform.NewNoteGenerator(cmd.Context(), log, cfg)
		if err != nil {
			return err
		}

		raw, err := loadConsultationFile(args[0])
		if err != nil {
			return err
		}

		promptText, err := generator.RenderPreview(raw)
		if err != nil {
			return err
		}

		cmd.Print(promptText)
		return nil
	},
}

func init() {
	renderCmd.Flags().StringVar(&renderTemplateDir, "template-dir", "",
		"directory holding an instructions.txt prompt override")
}
