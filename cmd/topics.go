package cmd

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/nikogura/portfolio-chat/pkg/intent"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var topicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "List topics and the keywords that select them",
	Long: `List the keyword rules in the order they are checked. The first rule with a
keyword contained in the question wins; anything else is answered generally.`,
	RunE: runTopics,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(topicsCmd)
}

func runTopics(cmd *cobra.Command, args []string) (err error) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ORDER\tTOPIC\tCHIP\tKEYWORDS")
	for i, rule := range intent.NewClassifier().Rules() {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", i+1, rule.Topic, rule.Topic.Phrase(), strings.Join(rule.Keywords, ", "))
	}
	fmt.Fprintln(w, "-\tgeneral\t-\t(anything else)")

	err = w.Flush()
	return err
}
