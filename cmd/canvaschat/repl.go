package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bdobrica/canvaschat/internal/canvaschat/document"
	"github.com/bdobrica/canvaschat/internal/canvaschat/host"
	"github.com/bdobrica/canvaschat/internal/canvaschat/session"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Type chat commands against the seeded workspace",
	Long: `Reads one chat turn per line. Meta commands:
  :select <id> [<id>...]  select components (turns go to their thread)
  :deselect               clear the selection
  :tree                   print the component tree
  :suggest                print example commands
  :quit                   exit`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		rt, err := setup(true)
		if err != nil {
			return err
		}
		defer rt.Close()
		return runREPL(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), rt.sessions, rt.workspace)
	},
}

func runREPL(ctx context.Context, in io.Reader, out io.Writer, sessions *session.Controller, ws *host.Workspace) error {
	var selection []string
	scanner := bufio.NewScanner(in)
	prompt := func() {
		if len(selection) > 0 {
			fmt.Fprintf(out, "[%s]> ", strings.Join(selection, ","))
			return
		}
		fmt.Fprint(out, "> ")
	}

	prompt()
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		fields := strings.Fields(line)
		switch {
		case line == "":
		case line == ":quit" || line == ":q":
			return nil
		case fields[0] == ":select":
			if ws.Selection(fields[1:]) == nil {
				fmt.Fprintln(out, "No single component matches that selection.")
			} else {
				selection = fields[1:]
			}
		case line == ":deselect":
			selection = nil
		case line == ":tree":
			printTree(out, ws.Components(), 0)
		case line == ":suggest":
			s := sessions.Suggestions()
			for _, g := range s.Groups {
				fmt.Fprintf(out, "%s:\n", g.Category)
				for _, ex := range g.Examples {
					fmt.Fprintf(out, "  %s\n", ex)
				}
			}
			fmt.Fprintf(out, "Create: %s\n", strings.Join(s.Creatable, ", "))
		default:
			scope := session.ScopeMain
			if len(selection) > 0 {
				scope = session.ScopeComponent
			}
			res, err := sessions.ProcessCommand(ctx, session.Request{Text: line, Selection: selection, Scope: scope})
			if errors.Is(err, session.ErrEmptyCommand) {
				break
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(out, res.Message)
			if res.NeedsMoreInfo && len(res.Options) > 0 {
				fmt.Fprintf(out, "  options: %s\n", strings.Join(res.Options, ", "))
			}
		}
		prompt()
	}
	return scanner.Err()
}

func printTree(out io.Writer, cs []*document.Component, indent int) {
	for _, c := range cs {
		fmt.Fprintf(out, "%s%s (%s)\n", strings.Repeat("  ", indent), c.ID, c.Type)
		printTree(out, c.Children, indent+1)
	}
}
