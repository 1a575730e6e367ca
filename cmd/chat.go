package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/nikogura/portfolio-chat/pkg/chat"
	"github.com/nikogura/portfolio-chat/pkg/config"
	"github.com/nikogura/portfolio-chat/pkg/portfolio"
	"github.com/nikogura/portfolio-chat/pkg/renderer"
	"github.com/nikogura/portfolio-chat/pkg/suggest"
	"github.com/nikogura/portfolio-chat/pkg/topic"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var chatData string

//nolint:gochecknoglobals // Cobra boilerplate
var chatNoDelay bool

//nolint:gochecknoglobals // Cobra boilerplate
var chatSave string

//nolint:gochecknoglobals // Cobra boilerplate
var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with the portfolio in the terminal",
	Long: `Start an interactive conversation in the terminal. Type a question, or
use a suggestion chip with /chip <topic>. /quit ends the session.

Example:
  portfolio-chat chat
  portfolio-chat chat --data ./data.yaml --no-delay
  portfolio-chat chat --save transcript.md`,
	RunE: runChat,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(chatCmd)
	chatCmd.Flags().StringVar(&chatData, "data", "", "Portfolio data file or URL (default from config)")
	chatCmd.Flags().BoolVar(&chatNoDelay, "no-delay", false, "Answer immediately instead of simulating thinking and typing")
	chatCmd.Flags().StringVar(&chatSave, "save", "", "Write the transcript to this file on exit (.md for Markdown, otherwise HTML)")
}

func runChat(cmd *cobra.Command, args []string) (err error) {
	var cfg config.Config
	cfg, err = resolveConfig(chatData)
	if err != nil {
		return err
	}

	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	store := portfolio.NewStore()
	store.Fill(ctx, cfg.DataLocation, log)

	delay := chat.RandomDelay(cfg.MinDelay(), cfg.MaxDelay())
	if chatNoDelay {
		delay = chat.NoDelay()
	}
	controller := chat.NewController(store, controllerOptions(cfg, delay, log)...)

	err = runREPL(ctx, os.Stdin, os.Stdout, controller)
	if err != nil {
		return err
	}

	if chatSave != "" {
		err = chat.WriteTranscript(controller.Transcript(), chatSave)
		if err != nil {
			return err
		}
		fmt.Printf("Transcript saved to %s\n", chatSave)
	}

	return err
}

// runREPL reads one submission per line until EOF, /quit, or ctx is done.
func runREPL(ctx context.Context, in io.Reader, out io.Writer, controller *chat.Controller) (err error) {
	typing := newSpinner(out, "typing")
	unsubscribe := controller.Subscribe(func(ev chat.Event) {
		if ev.Type != chat.EventTyping {
			return
		}
		if ev.Typing {
			typing.start()
			return
		}
		typing.stopSpinner()
	})
	defer unsubscribe()

	fmt.Fprintln(out, "Hi! Ask me anything about this portfolio.")
	printSuggestions(out, controller.Suggestions())

	lines, readErr := readLines(in)

	for {
		fmt.Fprint(out, "> ")

		var line string
		var open bool
		select {
		case <-ctx.Done():
			fmt.Fprintln(out)
			return err
		case line, open = <-lines:
		}
		if !open {
			break
		}

		line = strings.TrimSpace(line)
		if line == "/quit" || line == "/exit" {
			break
		}

		var reply chat.Turn
		reply, err = submitLine(ctx, controller, line)
		switch {
		case err == nil:
			fmt.Fprintf(out, "\n%s\n\n", renderer.StripHTML(reply.Body))
			printSuggestions(out, controller.Suggestions())
		case errors.Is(err, chat.ErrEmptyInput):
			err = nil
		case errors.Is(err, chat.ErrUnknownTopic):
			fmt.Fprintf(out, "%v\n", err)
			err = nil
		case ctx.Err() != nil:
			fmt.Fprintln(out)
			err = nil
			return err
		default:
			return err
		}
	}

	select {
	case err = <-readErr:
		if err != nil {
			err = errors.Wrap(err, "failed to read input")
			return err
		}
	default:
	}

	return err
}

// readLines scans in on its own goroutine so the prompt can also wait on a
// context. lines is closed at EOF, after any scan error is sent on errs.
func readLines(in io.Reader) (lines <-chan string, errs <-chan error) {
	lineCh := make(chan string)
	errCh := make(chan error, 1)

	go func() {
		defer close(lineCh)

		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			lineCh <- scanner.Text()
		}
		errCh <- scanner.Err()
	}()

	lines = lineCh
	errs = errCh
	return lines, errs
}

// submitLine routes "/chip <topic>" to ChipClicked and everything else to Submit.
func submitLine(ctx context.Context, controller *chat.Controller, line string) (reply chat.Turn, err error) {
	tag, isChip := strings.CutPrefix(line, "/chip")
	if !isChip {
		reply, err = controller.Submit(ctx, line)
		return reply, err
	}

	var t topic.Topic
	t, err = topic.Parse(tag)
	if err != nil {
		err = errors.Wrapf(chat.ErrUnknownTopic, "topic %q", strings.TrimSpace(tag))
		return reply, err
	}

	reply, err = controller.ChipClicked(ctx, t)
	return reply, err
}

func printSuggestions(out io.Writer, suggestions []suggest.Suggestion) {
	if len(suggestions) == 0 {
		return
	}
	tags := make([]string, 0, len(suggestions))
	for _, s := range suggestions {
		tags = append(tags, fmt.Sprintf("[%s] %s", s.Topic, s.Label))
	}
	fmt.Fprintf(out, "Try: %s\n", strings.Join(tags, "  "))
}
