package main

import (
	"fmt"
	"os"

	"github.com/futig/legaldoc-assistant/internal/builder"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	environment string
	verbose     bool

	components *builder.Components
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "legaldoc",
	Short: "Conversational assistant for drafting legal documents",
	Long: `legaldoc walks you through drafting a legal document: it asks which
document you need, collects the details question by question and renders
the finished document, which can be exported as DOCX, PDF or Markdown.

Run without arguments to start the interactive chat.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		components, err = builder.BuildCLI(environment, verbose)
		if err != nil {
			return fmt.Errorf("failed to initialize: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if components != nil {
			_ = components.Logger.Sync()
		}
	},
	RunE: runChatCmd,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&environment, "env", "local", "Environment to run (local, prod, or custom)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Write logs to stderr")

	rootCmd.Flags().StringVarP(&chatLanguage, "language", "l", "", "Conversation language (EN or DE)")
	chatCmd.Flags().StringVarP(&chatLanguage, "language", "l", "", "Conversation language (EN or DE)")
	catalogCmd.Flags().StringVarP(&catalogLanguage, "language", "l", "EN", "Language of names and descriptions")
	researchCmd.Flags().BoolVar(&researchJSON, "json", false, "Print the full research record as JSON")

	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(researchCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
