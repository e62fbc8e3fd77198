package main

import (
	"fmt"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/futig/legaldoc-assistant/internal/entity"
	"github.com/futig/legaldoc-assistant/internal/integration/research"
	"github.com/spf13/cobra"
)

var researchJSON bool

var researchCmd = &cobra.Command{
	Use:   "research [document-type] [country]",
	Short: "Research jurisdiction requirements for a document type",
	Long: `Searches the web for the legal requirements, structure, key clauses and
compliance notes of a document type in a country and prints the guidance.

Example:
  legaldoc research nda Germany`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		docType := entity.DocumentTypeID(strings.ToLower(args[0]))
		if _, ok := components.Catalog.Lookup(docType); !ok {
			return fmt.Errorf("%w: %s", entity.ErrUnknownDocumentType, args[0])
		}

		record, err := components.Researcher.Research(cmd.Context(), docType, args[1])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if researchJSON {
			data, err := sonic.ConfigStd.MarshalIndent(record, "", "  ")
			if err != nil {
				return fmt.Errorf("encode research record: %w", err)
			}
			fmt.Fprintln(out, string(data))
			return nil
		}

		fmt.Fprintln(out, research.FormatGuidance(record))
		return nil
	},
}
