// Command generate produces a lesson or certificate text from the terminal
// using the same generator wiring as the server.
//
//	generate lesson -topic Photosynthesis -grade 4
//	generate certificate -name "Jane Doe" -achievement "Science Fair"
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rs/zerolog"
	"golang.org/x/term"

	"github.com/elimufine/elimu-backend/internal/config"
	"github.com/elimufine/elimu-backend/internal/generation"
	"github.com/elimufine/elimu-backend/internal/logger"
	"github.com/elimufine/elimu-backend/internal/service"
)

const usage = `usage:
  generate lesson -topic TOPIC -grade GRADE
  generate certificate -name NAME -achievement ACHIEVEMENT`

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	// Logs go to stderr so stdout carries only the JSON result.
	log := logger.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gen, err := generation.FromConfig(ctx, cfg, log, nil)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build generator")
	}

	in := prompter{
		reader:      bufio.NewReader(os.Stdin),
		out:         os.Stderr,
		interactive: term.IsTerminal(int(os.Stdin.Fd())),
	}
	svc := service.NewGenerationService(gen, log)

	if err := run(ctx, os.Args[1:], svc, in, os.Stdout, log); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, svc *service.GenerationService, in prompter, out io.Writer, log zerolog.Logger) error {
	if len(args) == 0 {
		return errors.New(usage)
	}

	var result interface{}
	switch args[0] {
	case "lesson":
		fs := flag.NewFlagSet("lesson", flag.ContinueOnError)
		topic := fs.String("topic", "", "lesson topic")
		grade := fs.String("grade", "", "grade level (1-8)")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		if err := in.fill(topic, "Enter Topic: "); err != nil {
			return err
		}
		if err := in.fill(grade, "Enter Grade (1-8): "); err != nil {
			return err
		}

		log.Info().Str("topic", *topic).Str("grade", *grade).Msg("Generating lesson")
		lesson, err := svc.GenerateLesson(ctx, *topic, *grade)
		if err != nil {
			return err
		}
		result = lesson

	case "certificate":
		fs := flag.NewFlagSet("certificate", flag.ContinueOnError)
		name := fs.String("name", "", "student name")
		achievement := fs.String("achievement", "", "achievement being recognised")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		if err := in.fill(name, "Enter Student Name: "); err != nil {
			return err
		}
		if err := in.fill(achievement, "Enter Achievement: "); err != nil {
			return err
		}

		log.Info().Str("achievement", *achievement).Msg("Generating certificate")
		text, err := svc.GenerateCertificate(ctx, *name, *achievement)
		if err != nil {
			return err
		}
		result = map[string]string{"certificate_text": text}

	default:
		return fmt.Errorf("unknown command %q\n%s", args[0], usage)
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

// prompter asks for flags left empty, but only on an interactive terminal.
type prompter struct {
	reader      *bufio.Reader
	out         io.Writer
	interactive bool
}

func (p prompter) fill(dst *string, label string) error {
	if strings.TrimSpace(*dst) != "" || !p.interactive {
		return nil
	}
	fmt.Fprint(p.out, label)
	line, err := p.reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("read input: %w", err)
	}
	*dst = strings.TrimSpace(line)
	return nil
}
