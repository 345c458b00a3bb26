package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/devgrade/interview-agent/internal/adapters/llm"
	memstore "github.com/devgrade/interview-agent/internal/adapters/storage/memory"
	"github.com/devgrade/interview-agent/internal/adapters/storage/transcriptfile"
	"github.com/devgrade/interview-agent/internal/app/interview"
	"github.com/devgrade/interview-agent/internal/app/tools"
	"github.com/devgrade/interview-agent/internal/config"
	"github.com/devgrade/interview-agent/internal/domain"
	"github.com/devgrade/interview-agent/internal/observability"
)

var (
	headerStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13"))
	interviewerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	notesStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	promptStyle      = lipgloss.NewStyle().Bold(true)
	warnStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)

type cliOptions struct {
	name          string
	role          string
	level         string
	stack         string
	transcriptDir string
	useMock       bool
	showNotes     bool
}

func main() {
	opts := cliOptions{}

	root := &cobra.Command{
		Use:   "interview-cli",
		Short: "Run a technical interview session in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInterview(cmd.Context(), opts)
		},
	}

	root.Flags().StringVar(&opts.name, "name", "Ivanov Ivan", "candidate full name")
	root.Flags().StringVar(&opts.role, "role", "C++ Developer", "target position")
	root.Flags().StringVar(&opts.level, "level", "Middle", "declared seniority level")
	root.Flags().StringVar(&opts.stack, "stack", "C++, Postgres", "technology stack")
	root.Flags().StringVar(&opts.transcriptDir, "transcript-dir", ".", "directory for the transcript file")
	root.Flags().BoolVar(&opts.useMock, "mock", false, "use the scripted mock generator instead of a real backend")
	root.Flags().BoolVar(&opts.showNotes, "show-notes", true, "print the internal reasoning notes after each turn")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runInterview(ctx context.Context, opts cliOptions) error {
	// Keep the chat output clean; structured logs go to stderr on warnings only.
	observability.SetLevel(slog.LevelWarn)

	gen, err := buildGenerator(opts)
	if err != nil {
		return err
	}

	archive := transcriptfile.NewStore(opts.transcriptDir)
	svc := interview.NewService(gen, memstore.NewStateStore(), tools.NewTranscriptTool(archive))

	fmt.Println(headerStyle.Render("=== AI INTERVIEW SYSTEM ==="))
	fmt.Println()

	out, err := svc.StartSession(ctx, interview.StartSessionInput{
		Profile: domain.CandidateProfile{
			Name:  opts.name,
			Role:  opts.role,
			Level: opts.level,
			Stack: opts.stack,
		},
	})
	if err != nil {
		return fmt.Errorf("starting session: %w", err)
	}

	fmt.Println(interviewerStyle.Render("Interviewer: ") + out.Utterance)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("\n" + promptStyle.Render("You: "))
		if !scanner.Scan() {
			fmt.Println(warnStyle.Render("\nInput closed, ending session."))
			return scanner.Err()
		}
		answer := strings.TrimSpace(scanner.Text())

		turn, err := svc.SubmitAnswer(ctx, interview.SubmitAnswerInput{
			SessionID: out.SessionID,
			Text:      answer,
		})
		if err != nil {
			return fmt.Errorf("submitting answer: %w", err)
		}

		if opts.showNotes && len(turn.ReasoningNotes) > 0 {
			fmt.Println()
			fmt.Println(notesStyle.Render(strings.Join(turn.ReasoningNotes, "\n")))
		}

		fmt.Println()
		fmt.Println(interviewerStyle.Render("Interviewer: ") + turn.Utterance)

		if turn.Terminated {
			fmt.Println()
			fmt.Println(headerStyle.Render("=== FINAL REPORT ==="))
			fmt.Println(turn.FinalReport)
			fmt.Println(warnStyle.Render("Transcript saved to " + opts.transcriptDir))
			return nil
		}
	}
}

func buildGenerator(opts cliOptions) (domain.TextGenerator, error) {
	if opts.useMock {
		return llm.NewScriptedGenerator(), nil
	}

	cfg, err := config.Load("")
	if err != nil {
		return nil, err
	}

	backend, err := cfg.ResolveBackend()
	if err != nil {
		return nil, err
	}

	switch backend {
	case config.BackendGroq:
		return llm.NewGroqClient(cfg.GroqAPIKey, cfg.ModelName, cfg.Temperature)
	case config.BackendMock:
		return llm.NewScriptedGenerator(), nil
	default:
		return llm.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.ModelName, cfg.Temperature)
	}
}
