package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/nikogura/portfolio-chat/pkg/config"
	"github.com/nikogura/portfolio-chat/pkg/intent"
	"github.com/nikogura/portfolio-chat/pkg/portfolio"
	"github.com/nikogura/portfolio-chat/pkg/renderer"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var askData string

//nolint:gochecknoglobals // Cobra boilerplate
var askHTML bool

//nolint:gochecknoglobals // Cobra boilerplate
var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Answer a single question and exit",
	Long: `Classify one question and print the answer without any simulated delay.

Example:
  portfolio-chat ask "What programming languages do you know?"
  portfolio-chat ask --html --data ./data.json "how can I reach you"
  portfolio-chat ask -v "tell me about your projects"   # also shows the matched keyword`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(askCmd)
	askCmd.Flags().StringVar(&askData, "data", "", "Portfolio data file or URL (default from config)")
	askCmd.Flags().BoolVar(&askHTML, "html", false, "Print the HTML body instead of plain text")
}

func runAsk(cmd *cobra.Command, args []string) (err error) {
	var cfg config.Config
	cfg, err = resolveConfig(askData)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var record portfolio.Record
	record, err = portfolio.LoadWithContext(ctx, cfg.DataLocation)
	if err != nil {
		err = errors.Wrap(err, "failed to load portfolio data")
		return err
	}

	question := strings.Join(args, " ")
	answer, keyword := answerQuestion(newRenderer(cfg), record, question)

	if getVerbose() {
		if keyword == "" {
			fmt.Println("(no keyword matched, answering generally)")
		} else {
			fmt.Printf("(matched %q)\n", keyword)
		}
	}

	if askHTML {
		fmt.Println(answer)
		return err
	}

	fmt.Println(renderer.StripHTML(answer))
	return err
}

// answerQuestion classifies question and renders the HTML answer. keyword is
// the rule keyword that matched, empty for the general fallback.
func answerQuestion(r *renderer.Renderer, record portfolio.Record, question string) (answer, keyword string) {
	t, keyword := intent.NewClassifier().Explain(question)
	answer = r.Render(t, record)
	return answer, keyword
}
