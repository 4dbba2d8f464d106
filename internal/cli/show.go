package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/avernik/doctrina/internal/loader"
)

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show <document>",
	Short: "Print the holdings a document describes",
	Long: `Show loads a YAML or JSON document and prints the factors,
enactments, and holdings it describes, after name references and brace
placeholders have been resolved.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := loader.LoadFile(args[0])
		if err != nil {
			return fmt.Errorf("load document: %w", err)
		}

		if len(doc.Factors) > 0 {
			fmt.Println("Factors:")
			for _, f := range doc.Factors {
				fmt.Printf("  %s\n", f)
			}
			fmt.Println()
		}
		if len(doc.Enactments) > 0 {
			fmt.Println("Enactments:")
			for _, e := range doc.Enactments {
				fmt.Printf("  %s\n", e)
			}
			fmt.Println()
		}
		for i, h := range doc.Holdings {
			fmt.Printf("Holding %d:\n%s\n\n", i, h)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
