package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/jacoelho/propath/internal/config"
	"github.com/jacoelho/propath/internal/exit"
	"github.com/jacoelho/propath/internal/formatter/stdout"
	"github.com/jacoelho/propath/internal/input"
	"github.com/jacoelho/propath/internal/resolver"
	"github.com/jacoelho/propath/internal/results"
)

func main() {
	os.Exit(run(os.Args, os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, in io.Reader, out, errOut io.Writer) int {
	cfg, exitResult := config.Parse(args)
	if exitResult != nil {
		if exitResult.ExitCode == exit.CodeSuccess {
			exitResult.Output = out
		} else {
			exitResult.Output = errOut
		}
		exitResult.Print()
		return exitResult.ExitCode
	}

	level := slog.LevelWarn
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(errOut, &slog.HandlerOptions{Level: level}))

	docs, err := input.Load(cfg.Files, in)
	if err != nil {
		fmt.Fprintf(errOut, "Error: %v\n", err)
		return exit.CodeFailure
	}

	r := resolver.New(
		resolver.WithLogger(logger),
		resolver.WithTokens(cfg.Tokens),
	)
	narrowing := input.Narrowing{Pointer: cfg.Pointer, JSONPath: cfg.JSONPath}

	summary := results.NewSummary(len(docs))
	for _, doc := range docs {
		builder := results.NewResultBuilder(doc.Name())

		root, err := narrowing.Apply(doc.Value)
		if err != nil {
			logger.Warn("document skipped", slog.String("source", doc.Name()), slog.String("error", err.Error()))
			summary.Add(builder.WithError(err).Build())
			continue
		}

		summary.Add(builder.WithValue(r.Resolve(root, cfg.Path, cfg.Default)).Build())
	}

	f := stdout.NewWithWriter(out, cfg.Encoding, useColor(cfg, out))
	if err := f.Format(summary); err != nil {
		fmt.Fprintf(errOut, "Error: failed to write output: %v\n", err)
		return exit.CodeFailure
	}

	if summary.HasFailures() {
		return exit.CodeFailure
	}

	return exit.CodeSuccess
}

func useColor(cfg *config.Config, out io.Writer) bool {
	if f, ok := out.(*os.File); ok {
		return cfg.UseColor(f)
	}
	return cfg.Color == config.ColorAlways
}
