package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"

	"github.com/wrenfield/setlist/internal/parser"
	"github.com/wrenfield/setlist/internal/playlist"
	"github.com/wrenfield/setlist/internal/queue"
)

func resolveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "resolve",
		Usage: "Resolve a playlist program into a track URI list",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "input",
				Aliases: []string{"i"},
				Usage:   "Path to the program file (defaults to stdin)",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Path to write the resolved URIs (defaults to stdout)",
			},
			&cli.BoolFlag{
				Name:  "clipboard",
				Usage: "Copy the resolved URIs to the system clipboard",
			},
			&cli.BoolFlag{
				Name:  "quiet",
				Usage: "Suppress progress output",
			},
		},
		Action: r.Resolve,
	}
}

// Resolve reads a playlist program from --input (or stdin), runs it through
// the parser and playlist controller, and writes the rendered URI list to
// --output (or stdout).
func (r *Runner) Resolve(ctx context.Context, cmd *cli.Command) error {
	programText, err := readProgram(cmd.String("input"))
	if err != nil {
		return fmt.Errorf("failed to read program: %w", err)
	}

	program := parser.Parse(programText)

	if program.Entries.Size() == 0 {
		return promptForEmptyProgram()
	}

	var progress chan queue.Progress
	if !cmd.Bool("quiet") {
		progress = make(chan queue.Progress, 1)
		go func() {
			for p := range progress {
				r.logger.Info("resolving", "step", p.Step, "total", p.Total, "entry", p.Message)
			}
		}()
	}

	pl := playlist.New(program, r.gw, lastfmAnnotator(r), r.logger)
	output, err := pl.Dispatch(ctx, progress)
	if progress != nil {
		close(progress)
	}
	if err != nil {
		return fmt.Errorf("resolution failed: %w", err)
	}

	if err := r.writeResolved(cmd.String("output"), output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if cmd.Bool("clipboard") {
		if err := clipboard.WriteAll(output); err != nil {
			r.logger.Warn("failed to copy to clipboard", "err", err)
		}
	}

	return nil
}

// lastfmAnnotator returns nil as a playlist.Annotator when no client was
// configured, so #SORT BY LAST.FM degrades to "everything ties at -1"
// rather than panicking.
func lastfmAnnotator(r *Runner) playlist.Annotator {
	if r.lastfm == nil {
		return nil
	}
	return r.lastfm
}

func readProgram(path string) (string, error) {
	var r io.Reader = os.Stdin
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return "", err
		}
		defer f.Close()
		r = f
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// writeResolved writes the rendered URI list to path, or to the Runner's
// output writer (stdout by default) if path is empty.
func (r *Runner) writeResolved(path, content string) error {
	if path == "" {
		return r.writePlain("%s\n", content)
	}
	return os.WriteFile(path, []byte(content+"\n"), 0644)
}

// promptForEmptyProgram offers an interactive one-shot prompt when the
// supplied program had no resolvable lines, letting an interactive user
// enter a single track query rather than exiting silently. The entered
// query is printed back to stdout as-is; it is not resolved.
func promptForEmptyProgram() error {
	if !isInteractive() {
		return nil
	}

	var query string
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("No entries found. Enter a track query, or leave blank to exit").
				Value(&query),
		),
	).Run()
	if err != nil || query == "" {
		return nil
	}

	fmt.Println(query)
	return nil
}

func isInteractive() bool {
	fi, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}
