package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "provet",
	Short: "Generate veterinary discharge notes from consultation data",
	Long: `provet turns a structured veterinary consultation record (JSON) into a
professionally formatted discharge note using a language model.

Configuration comes from PROVET_* environment variables or a config.yaml
in the working directory; at minimum PROVET_LLM_API_KEY must be set.`,
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(renderCmd)
}

// loadConsultationFile reads and parses the consultation JSON document.
func loadConsultationFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%s contains invalid JSON: %w", path, err)
	}
	return raw, nil
}
