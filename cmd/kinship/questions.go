package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/Kinship/internal/catalogue"
)

var questionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "Print the question bank",
	RunE:  runQuestions,
}

func init() {
	questionsCmd.Flags().StringP("category", "c", "", "only print one category")
	questionsCmd.Flags().Bool("json", false, "print JSON instead of a table")
}

func runQuestions(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	cat, err := loadCatalogue(cfg)
	if err != nil {
		return err
	}

	qs := cat.Questions()
	if raw, _ := cmd.Flags().GetString("category"); raw != "" {
		c, err := catalogue.ParseCategory(raw)
		if err != nil {
			return err
		}
		qs = cat.ByCategory(c)
	}

	out := cmd.OutOrStdout()
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(qs)
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCATEGORY\tRANGE\tWEIGHT\tREV\tTEXT")
	for _, q := range qs {
		lo, hi := q.Range()
		rev := ""
		if q.ReverseScored {
			rev = "yes"
		}
		fmt.Fprintf(tw, "%s\t%s\t%d..%d\t%.1f\t%s\t%s\n", q.ID, q.Category, lo, hi, q.Weight, rev, q.Text)
	}
	return tw.Flush()
}
