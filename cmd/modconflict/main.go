// Command modconflict evaluates conflict rules against candidate coordinates.
//
// Usage:
//
//	modconflict --rules conflicts.star select com.foo:old:1.0 com.foo:new:2.0
//	modconflict --rules conflicts.star select --explain com.x:a:1.0 com.x:b:1.0
//	modconflict --rules conflicts.star select --all g:a:1 g:b:2 h:x:1
//	modconflict --rules conflicts.star conflicts --among com.x:b,com.y:c com.x:a
//	modconflict --rules conflicts.star check
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	modconflict "github.com/albertocavalcante/go-modconflict"
	"github.com/albertocavalcante/go-modconflict/coord"
	"github.com/albertocavalcante/go-modconflict/predicate"
	"github.com/albertocavalcante/go-modconflict/rulesfile"
)

// state is shared between the root command's Before hook and subcommands.
type state struct {
	logger *slog.Logger
	rules  *modconflict.Rules
	stdout io.Writer
}

// RootCommand builds the modconflict command tree. Results go to stdout;
// logs and rule-file warnings go to stderr.
func RootCommand(stdout, stderr io.Writer) *cli.Command {
	st := &state{stdout: stdout}
	cmd := &cli.Command{
		Name:      "modconflict",
		Usage:     "resolve module conflicts with declared rules",
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "rules",
				Usage: "rules file with replace() and conflict_group() declarations",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Value: "warn",
				Usage: "log level: debug, info, warn or error",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			var level slog.Level
			if err := level.UnmarshalText([]byte(cmd.String("log-level"))); err != nil {
				return ctx, fmt.Errorf("--log-level: %w", err)
			}
			st.logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

			rs := modconflict.NewRuleSet()
			if path := cmd.String("rules"); path != "" {
				warnings, err := rulesfile.Load(path, rs)
				for _, w := range warnings {
					st.logger.Warn(w.Message, "pos", w.Pos.String())
				}
				if err != nil {
					return ctx, err
				}
				st.logger.Debug("loaded rules", "file", path, "rules", rs.Len())
			}
			st.rules = rs.Freeze()
			return ctx, nil
		},
		Commands: []*cli.Command{
			selectCommand(st),
			conflictsCommand(st),
			checkCommand(st),
		},
	}
	return cmd
}

func selectCommand(st *state) *cli.Command {
	return &cli.Command{
		Name:      "select",
		Usage:     "print the winning candidate of a conflict slot",
		ArgsUsage: "group:name:version ...",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "explain", Usage: "print what every rule did"},
			&cli.BoolFlag{Name: "all", Usage: "partition the candidates into slots and select one winner per slot"},
			&cli.BoolFlag{Name: "strict", Usage: "fail as soon as one rule selects no candidate"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			candidates, err := parseCandidates(cmd.Args().Slice())
			if err != nil {
				return err
			}
			o, err := modconflict.NewOrchestrator(st.rules,
				modconflict.WithLogger(st.logger),
				modconflict.WithStrictSelectors(cmd.Bool("strict")),
			)
			if err != nil {
				return err
			}

			if cmd.Bool("all") {
				winners, err := o.SelectAll(candidates)
				for _, w := range winners {
					fmt.Fprintln(st.stdout, w.ModuleVersion())
				}
				return err
			}
			if cmd.Bool("explain") {
				exp, err := o.Explain(candidates)
				if err != nil {
					return err
				}
				fmt.Fprint(st.stdout, exp)
				return nil
			}
			winner, err := o.Select(candidates)
			if err != nil {
				return err
			}
			fmt.Fprintln(st.stdout, winner.ModuleVersion())
			return nil
		},
	}
}

func conflictsCommand(st *state) *cli.Command {
	return &cli.Command{
		Name:      "conflicts",
		Usage:     "print the modules that share a conflict slot with a module",
		ArgsUsage: "group:name",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{Name: "among", Usage: "modules to test against (group:name)"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 1 {
				return fmt.Errorf("conflicts: expected one group:name argument, got %d", cmd.Args().Len())
			}
			id, err := coord.ParseModuleID(cmd.Args().First())
			if err != nil {
				return err
			}
			o, err := modconflict.NewOrchestrator(st.rules, modconflict.WithLogger(st.logger))
			if err != nil {
				return err
			}
			conflicts := o.ModuleConflicts(id)

			among := cmd.StringSlice("among")
			if len(among) == 0 {
				fmt.Fprintln(st.stdout, predicate.Describe(conflicts))
				return nil
			}
			for _, s := range among {
				other, err := coord.ParseModuleID(s)
				if err != nil {
					return fmt.Errorf("--among: %w", err)
				}
				if conflicts.IsSatisfiedBy(other) {
					fmt.Fprintln(st.stdout, other)
				}
			}
			return nil
		},
	}
}

func checkCommand(st *state) *cli.Command {
	return &cli.Command{
		Name:  "check",
		Usage: "validate the rules file",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			for _, r := range st.rules.Resolvers() {
				fmt.Fprintln(st.stdout, r)
			}
			fmt.Fprintf(st.stdout, "%d rules\n", st.rules.Len())
			return nil
		},
	}
}

func parseCandidates(args []string) ([]modconflict.Candidate, error) {
	if len(args) == 0 {
		return nil, errors.New("no candidates given")
	}
	out := make([]modconflict.Candidate, 0, len(args))
	for _, a := range args {
		for _, s := range strings.Split(a, ",") {
			mv, err := coord.ParseModuleVersion(strings.TrimSpace(s))
			if err != nil {
				return nil, err
			}
			out = append(out, mv)
		}
	}
	return out, nil
}

func main() {
	cmd := RootCommand(os.Stdout, os.Stderr)
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("exited", "error", err)
		os.Exit(1)
	}
}
