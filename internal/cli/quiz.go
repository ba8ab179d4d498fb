package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"career-guidance-service/internal/app"
	"career-guidance-service/internal/domain"
	"github.com/spf13/cobra"
)

// NewQuizCmd runs the aptitude quiz in the terminal and prints the filtered catalogs.
func NewQuizCmd(configPath *string) *cobra.Command {
	var quizID string
	cmd := &cobra.Command{
		Use:   "quiz",
		Short: "Take the aptitude quiz in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			if quizID != "" {
				cfg.Quiz.ID = quizID
			}
			rt, err := buildRuntime(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer rt.Close()
			return runQuiz(cmd.Context(), rt.service, cfg.Quiz.ID, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&quizID, "quiz", "", "quiz id (defaults to quiz.id from config)")
	return cmd
}

// runQuiz confirms each answer immediately instead of waiting for the auto-advance.
func runQuiz(ctx context.Context, service *app.CareerService, quizID string, in io.Reader, out io.Writer) error {
	engine, err := service.NewQuiz(ctx, quizID, app.QuizCallbacks{})
	if err != nil {
		return err
	}
	defer engine.Close()
	engine.Start(ctx)

	scanner := bufio.NewScanner(in)
	for !engine.IsComplete() {
		state := engine.State()
		printQuestion(out, state)

		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return err
			}
			return errors.New("quiz aborted before completion")
		}
		input := strings.TrimSpace(scanner.Text())
		switch strings.ToLower(input) {
		case "b", "back":
			if !engine.GoBack() {
				fmt.Fprintln(out, "Already at the first question.")
			}
			continue
		case "q", "quit":
			return errors.New("quiz aborted")
		}

		n, err := strconv.Atoi(input)
		if err != nil {
			fmt.Fprintln(out, "Enter an option number, b to go back or q to quit.")
			continue
		}
		if err := engine.SelectOption(ctx, n-1); err != nil {
			fmt.Fprintf(out, "Cannot select %q: %v\n", input, err)
			continue
		}
		// the armed advance may already have fired when the delay is zero
		engine.GoForward(ctx)
	}

	rec := engine.State().Recommendation
	fmt.Fprintf(out, "\nRecommended stream: %s\n", rec)
	return printCatalogs(ctx, service, out)
}

func printQuestion(out io.Writer, state domain.QuizState) {
	q := state.Question
	fmt.Fprintf(out, "\n[%d/%d, %d%%] %s\n", state.Index+1, state.Total, state.Percent, q.Text)
	for i, opt := range q.Options {
		fmt.Fprintf(out, "  %d) %s\n", i+1, opt.Label)
	}
	fmt.Fprint(out, "> ")
}

func printCatalogs(ctx context.Context, service *app.CareerService, out io.Writer) error {
	courses, err := service.ListCourses(ctx, app.CatalogQuery{})
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "\nCourses (%s):\n", filterLabel(courses.Filter))
	for _, c := range courses.Entries {
		fmt.Fprintf(out, "  - %s [%s, %s]\n", c.Title, c.Level, c.Duration)
	}

	colleges, err := service.ListColleges(ctx, app.CatalogQuery{})
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "\nColleges (%s):\n", filterLabel(colleges.Filter))
	for _, c := range colleges.Entries {
		fmt.Fprintf(out, "  - %s, %s\n", c.Name, c.State)
	}
	return nil
}

func filterLabel(s domain.Stream) string {
	if s == "" {
		return domain.AllStreams
	}
	return string(s)
}
