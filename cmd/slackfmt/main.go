// Command slackfmt converts formatted text between Rich Text JSON,
// Mrkdwn, and GitHub-Flavored Markdown from the command line. It is an
// external caller of the core: all conversion logic lives in the
// slackfmt package; this file is I/O and flag plumbing only.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/insomnimus/slackfmt"
	"github.com/insomnimus/slackfmt/ast"
)

func main() {
	var (
		from       string
		to         string
		teamID     string
		bestEffort bool
		outPath    string
	)

	flags := pflag.NewFlagSet("slackfmt", pflag.ExitOnError)
	flags.StringVar(&from, "from", "", "input format: rt, mk, gfm")
	flags.StringVar(&to, "to", "", "output format: rt, gfm")
	flags.StringVar(&teamID, "team-id", "", "team id included in rendered mention deep links")
	flags.BoolVar(&bestEffort, "best-effort", false, "degrade unrenderable nodes instead of failing (default: strict)")
	flags.StringVarP(&outPath, "output", "o", "", "output file instead of stdout")
	flags.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: slackfmt --from=rt|mk|gfm --to=rt|gfm [flags] [input-file]")
		fmt.Fprintln(os.Stderr, "\nIf no input file is given, input is read from stdin.")
		fmt.Fprintln(os.Stderr, "\nFlags:")
		flags.PrintDefaults()
	}

	if err := flags.Parse(os.Args[1:]); err != nil {
		os.Exit(2)
	}

	if from == "" || to == "" {
		flags.Usage()
		os.Exit(2)
	}

	data, err := readInput(flags.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "slackfmt: %v\n", err)
		os.Exit(1)
	}

	opts := slackfmt.Options{TeamID: teamID, RaiseOnError: !bestEffort}
	out, err := convert(data, from, to, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "slackfmt: %v\n", err)
		os.Exit(1)
	}

	if err := writeOutput(outPath, out); err != nil {
		fmt.Fprintf(os.Stderr, "slackfmt: %v\n", err)
		os.Exit(1)
	}
}

func convert(data []byte, from, to string, opts slackfmt.Options) ([]byte, error) {
	doc, err := parseInput(data, from)
	if err != nil {
		return nil, err
	}
	switch to {
	case "gfm":
		s, err := slackfmt.RenderGFM(doc, opts)
		if err != nil {
			return nil, err
		}
		return []byte(s), nil
	case "rt":
		return slackfmt.RenderRT(doc)
	default:
		return nil, fmt.Errorf("unknown --to format %q (want rt or gfm)", to)
	}
}

func parseInput(data []byte, from string) (*ast.Document, error) {
	switch from {
	case "rt":
		return slackfmt.ParseRT(data)
	case "mk":
		return slackfmt.ParseMK(string(data))
	case "gfm":
		return slackfmt.ParseGFM(data)
	default:
		return nil, fmt.Errorf("unknown --from format %q (want rt, mk, or gfm)", from)
	}
}

func readInput(args []string) ([]byte, error) {
	if len(args) == 0 {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(args[0])
}

func writeOutput(path string, data []byte) error {
	if path == "" {
		_, err := os.Stdout.Write(data)
		if err == nil {
			fmt.Println()
		}
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
