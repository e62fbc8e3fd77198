package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/futig/legaldoc-assistant/internal/entity"
	"github.com/spf13/cobra"
)

var catalogLanguage string

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List the document types that can be drafted",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		lang, err := entity.ParseLanguage(catalogLanguage)
		if err != nil {
			return err
		}
		return printCatalog(cmd.OutOrStdout(), components.Sessions.ListDocumentTypes(lang))
	},
}

func printCatalog(out io.Writer, types []entity.DocumentTypeDTO) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)

	fmt.Fprintln(w, "ID\tNAME\tQUESTIONS\tLOCALIZATION")
	for _, dt := range types {
		localization := "-"
		if len(dt.LocalizationSupport) > 0 {
			localization = strings.Join(dt.LocalizationSupport, ",")
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", dt.ID, dt.Name, dt.QuestionCount, localization)
	}

	return w.Flush()
}
