// Command polldash renders the poll analytics dashboard and runs the
// unanimous-poll quiz.
//
// Usage:
//
//	polldash [render] [-layout layout.yaml] [-out site] [-format svg|png]
//	polldash quiz [-n 4]
//
// Settings are read from the environment (and a .env file when present);
// flags override them.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sartorproj/polldash/analysis"
	"github.com/sartorproj/polldash/config"
	"github.com/sartorproj/polldash/dashboard"
	"github.com/sartorproj/polldash/logging"
	"github.com/sartorproj/polldash/quiz"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout); err != nil {
		slog.Error("polldash failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := logging.InitLogger(cfg.LogLevel, cfg.LogFormat)

	cmd := "render"
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		cmd, args = args[0], args[1:]
	}

	switch cmd {
	case "render":
		return render(cfg, logger, args)
	case "quiz":
		return playQuiz(ctx, cfg, args, stdin, stdout)
	}
	return fmt.Errorf("unknown command %q", cmd)
}

func render(cfg *config.Config, logger *slog.Logger, args []string) error {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	layoutFile := fs.String("layout", cfg.LayoutFile, "YAML layout file (default layout when empty)")
	outDir := fs.String("out", cfg.OutputDir, "output directory")
	format := fs.String("format", cfg.ImageFormat, "static image format: svg or png")
	input := fs.String("in", cfg.AnalysisFile, "analysis results JSON file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	layout := dashboard.DefaultLayout()
	if *layoutFile != "" {
		var err error
		if layout, err = dashboard.LoadLayout(*layoutFile); err != nil {
			return err
		}
	}

	res, err := analysis.Load(*input)
	if err != nil {
		return err
	}

	page := dashboard.NewBuilder(layout, dashboard.WithLogger(logger)).Build(res)
	logger.Info("Dashboard built",
		"panels", len(page.Panels),
		"failures", len(page.Failures),
	)

	// Figure failures are logged; the page itself is still usable.
	if err := dashboard.WriteSite(*outDir, page, *format); err != nil {
		if _, statErr := os.Stat(filepath.Join(*outDir, dashboard.IndexFile)); statErr != nil {
			return err
		}
		logger.Warn("Site written with errors", "error", err)
	}

	logger.Info("Site written", "dir", *outDir)
	return nil
}

func playQuiz(ctx context.Context, cfg *config.Config, args []string, stdin io.Reader, stdout io.Writer) error {
	fs := flag.NewFlagSet("quiz", flag.ContinueOnError)
	n := fs.Int("n", cfg.QuizQuestions, "number of questions")
	input := fs.String("in", cfg.UnanimousFile, "unanimous polls JSON file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	polls, err := analysis.LoadUnanimous(*input)
	if err != nil {
		return err
	}

	questions, err := quiz.New(polls, nil).Draw(*n)
	if err != nil {
		return err
	}

	scanner := bufio.NewScanner(stdin)
	answers := make([]string, 0, len(questions))
	for i, q := range questions {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprintf(stdout, "\n%d. %s\n", i+1, q.Text)
		for j, opt := range q.Options {
			fmt.Fprintf(stdout, "   %d) %s\n", j+1, opt)
		}
		fmt.Fprint(stdout, "> ")

		answer, err := readChoice(scanner, q.Options)
		if err != nil {
			return err
		}
		answers = append(answers, answer)
	}

	result := quiz.Check(questions, answers)
	fmt.Fprintf(stdout, "\n%d/%d\n", result.Correct, result.Total)
	if result.Passed() {
		fmt.Fprintln(stdout, "Complimenti, hai risposto correttamente a tutte le domande!")
	} else {
		fmt.Fprintln(stdout, "Mi dispiace, non hai risposto correttamente a tutte le domande.")
	}
	return nil
}

// readChoice reads one answer, given either as the option number or as the
// option text. End of input counts as no answer.
func readChoice(scanner *bufio.Scanner, options []string) (string, error) {
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", err
		}
		return "", nil
	}

	line := strings.TrimSpace(scanner.Text())
	if idx, err := strconv.Atoi(line); err == nil {
		if idx < 1 || idx > len(options) {
			return "", nil
		}
		return options[idx-1], nil
	}
	return line, nil
}
