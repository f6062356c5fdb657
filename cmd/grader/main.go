package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pavelanni/grader/internal/grader"
	"github.com/pavelanni/grader/internal/handler"
	appI18n "github.com/pavelanni/grader/internal/i18n"
	"github.com/pavelanni/grader/internal/llm"
	"github.com/pavelanni/grader/internal/model"
	"github.com/pavelanni/grader/internal/report"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "grader",
		Short: "Grade free-text student answers against an answer key",
	}

	grade := gradeCmd()
	root.AddCommand(grade, serveCmd(), versionCmd())

	// Make "grade" the default when no subcommand is given.
	root.RunE = grade.RunE

	// Register grade flags on root so bare `grader --student ...` still works.
	root.Flags().AddFlagSet(grade.Flags())

	return root
}

func gradeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "grade",
		Short: "Grade a student submission against an answer key",
		RunE:  runGrade,
	}
	f := cmd.Flags()
	f.StringP("student", "s", "", "Path to the student submission (plain text, required)")
	f.StringP("key", "k", "", "Path to the answer key (plain text, required)")
	f.StringP("output", "o", "-", "Output file path (- for stdout)")
	f.StringP("format", "f", "text", "Output format (text, csv, json)")
	addCommonFlags(f)

	_ = cmd.MarkFlagRequired("student")
	_ = cmd.MarkFlagRequired("key")

	return cmd
}

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP grading server",
		RunE:  runServe,
	}
	f := cmd.Flags()
	f.StringP("addr", "a", ":8080", "HTTP listen address")
	addCommonFlags(f)
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the grader version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	}
}

func addCommonFlags(f *pflag.FlagSet) {
	f.String("strategy", string(model.StrategySimilarity), "Grading strategy (similarity, llm)")
	f.Bool("strict", false, "Strict grading (selects the strict LLM prompt variant)")
	f.Bool("show-similarity", true, "Include the raw similarity percentage in feedback")
	f.String("llm-url", "", "OpenAI-compatible API base URL for the llm strategy")
	f.String("llm-key", "", "API key for the llm strategy")
	f.String("llm-model", "gpt-4o-mini", "Model name for the llm strategy")
	f.StringP("lang", "l", "en", "Feedback language")
	f.String("log-level", "info", "Log level (debug, info, warn, error)")
	f.String("log-format", "text", "Log format (text, json)")
}

func setupLogging(cmd *cobra.Command) {
	v := viperForCmd(cmd)

	var logLevel slog.Level
	switch strings.ToLower(v.GetString("log-level")) {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}
	handlerOpts := &slog.HandlerOptions{Level: logLevel}
	var logHandler slog.Handler
	switch strings.ToLower(v.GetString("log-format")) {
	case "json":
		logHandler = slog.NewJSONHandler(os.Stderr, handlerOpts)
	default:
		logHandler = slog.NewTextHandler(os.Stderr, handlerOpts)
	}
	slog.SetDefault(slog.New(logHandler))
}

// viperForCmd binds a command's flags and environment to a fresh viper instance.
func viperForCmd(cmd *cobra.Command) *viper.Viper {
	v := viper.New()
	_ = v.BindPFlags(cmd.Flags())

	v.SetEnvPrefix("GRADER")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetConfigName("grader")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/grader")
	v.AddConfigPath("/etc/grader")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			slog.Warn("error reading config file", "error", err)
		}
	} else {
		slog.Info("loaded config file", "path", v.ConfigFileUsed())
	}

	return v
}

// optionsFor builds the grading options shared by grade and serve.
func optionsFor(v *viper.Viper) model.Options {
	opts := model.DefaultOptions()
	opts.Strategy = model.StrategyName(strings.ToLower(v.GetString("strategy")))
	opts.Strict = v.GetBool("strict")
	opts.ShowSimilarity = v.GetBool("show-similarity")
	return opts
}

// llmClientFor creates the LLM client when an endpoint is configured,
// picking the prompt variant from the strict flag.
func llmClientFor(v *viper.Viper, opts model.Options) (*llm.Client, error) {
	if v.GetString("llm-url") == "" && v.GetString("llm-key") == "" {
		return nil, nil
	}
	variant := string(llm.PromptStandard)
	if opts.Strict {
		variant = string(llm.PromptStrict)
	}
	return llm.New(
		v.GetString("llm-url"),
		v.GetString("llm-key"),
		v.GetString("llm-model"),
		variant,
	)
}

func runGrade(cmd *cobra.Command, _ []string) error {
	setupLogging(cmd)
	v := viperForCmd(cmd)

	if err := appI18n.Init(v.GetString("lang")); err != nil {
		return fmt.Errorf("init i18n: %w", err)
	}
	ctx := appI18n.WithLocalizer(cmd.Context(), appI18n.NewLocalizer(v.GetString("lang")))

	// Source documents arrive as already-decoded plain text; DOCX/PDF
	// decoding is an upstream concern.
	studentText, err := os.ReadFile(v.GetString("student"))
	if err != nil {
		return fmt.Errorf("read student submission: %w", err)
	}
	keyText, err := os.ReadFile(v.GetString("key"))
	if err != nil {
		return fmt.Errorf("read answer key: %w", err)
	}

	opts := optionsFor(v)
	strategy, err := strategyFor(v, opts)
	if err != nil {
		return err
	}

	runner := grader.NewRunner(strategy, grader.WithProgress(func(done, total int, id string) {
		slog.Info("graded question", "question", id, "done", done, "total", total)
	}))

	results, summary, err := runner.Run(ctx, string(studentText), string(keyText))
	if err != nil {
		return err
	}

	out, closeOut, err := openOutput(v.GetString("output"))
	if err != nil {
		return err
	}
	defer closeOut()

	switch strings.ToLower(v.GetString("format")) {
	case "csv":
		return report.WriteCSV(out, results)
	case "json":
		return report.WriteJSON(out, report.Export{
			GradedAt: time.Now().UTC(),
			Strategy: string(opts.Strategy),
			Results:  results,
			Summary:  summary,
		})
	default:
		return report.WriteText(ctx, out, results, summary)
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	setupLogging(cmd)
	v := viperForCmd(cmd)

	lang := v.GetString("lang")
	if err := appI18n.Init(lang); err != nil {
		return fmt.Errorf("init i18n: %w", err)
	}

	opts := optionsFor(v)
	llmClient, err := llmClientFor(v, opts)
	if err != nil {
		return fmt.Errorf("create LLM client: %w", err)
	}
	if llmClient != nil {
		if err := llmClient.Ping(context.Background()); err != nil {
			return fmt.Errorf("LLM health check: %w", err)
		}
		slog.Info("LLM endpoint OK", "url", v.GetString("llm-url"), "model", v.GetString("llm-model"))
	}

	h := handler.New(llmClient, opts)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(appI18n.Middleware(lang))
	h.Routes(r)

	addr := v.GetString("addr")
	slog.Info("starting server",
		"addr", addr,
		"strategy", opts.Strategy,
		"strict", opts.Strict,
		"lang", lang,
	)
	return http.ListenAndServe(addr, r)
}

func strategyFor(v *viper.Viper, opts model.Options) (grader.Strategy, error) {
	switch opts.Strategy {
	case model.StrategySimilarity:
		return grader.NewSimilarityStrategy(opts), nil
	case model.StrategyLLM:
		client, err := llmClientFor(v, opts)
		if err != nil {
			return nil, fmt.Errorf("create LLM client: %w", err)
		}
		if client == nil {
			return nil, fmt.Errorf("llm strategy requires --llm-url or --llm-key")
		}
		return grader.NewLLMStrategy(client), nil
	default:
		return nil, fmt.Errorf("unknown strategy %q", opts.Strategy)
	}
}

func openOutput(path string) (io.Writer, func(), error) {
	if path == "" || path == "-" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("create output file: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}
