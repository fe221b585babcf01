package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/alkoleft/lezer-bsl/bsl/session"
)

const replHelp = `Each line is appended to the document and reparsed incrementally.
Commands:
  :tree   print the current tree as an outline
  :stats  print parse counters
  :reset  start over with an empty document
  :quit   leave
`

// repl keeps a growing document and the session that parses it.
type repl struct {
	a       *app
	out     io.Writer
	session *session.Session
	text    string
}

func newReplCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Type BSL line by line and watch the incremental tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r := &repl{a: a, out: cmd.OutOrStdout(), session: a.newSession()}
			r.session.Parse("")

			line := liner.NewLiner()
			defer line.Close()
			line.SetCtrlCAborts(true)

			fmt.Fprint(r.out, replHelp)
			for {
				input, err := line.Prompt("bsl> ")
				if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
					return nil
				}
				if err != nil {
					return fmt.Errorf("read line: %w", err)
				}
				line.AppendHistory(input)
				if !r.eval(input) {
					return nil
				}
			}
		},
	}
}

// eval handles one input line and reports whether to keep going.
func (r *repl) eval(input string) bool {
	switch strings.TrimSpace(input) {
	case ":quit", ":q":
		return false
	case ":tree":
		if err := styledEncoder(r.out, r.text, true).Encode(r.session.LastTree()); err != nil {
			r.a.log.Error("encode", "err", err)
		}
		return true
	case ":stats":
		st := r.session.Stats()
		fmt.Fprintf(r.out, "full %d, incremental %d, rejected %d, reused %d\n",
			st.FullParses, st.IncrementalParses, st.RejectedBatches, st.ReusedNodes)
		return true
	case ":reset":
		r.text = ""
		r.session.Parse("")
		return true
	}

	edit := session.Edit{Offset: len(r.text), InsertedText: input + "\n"}
	r.text += edit.InsertedText
	tree := r.session.ApplyEdits(r.text, []session.Edit{edit})
	fmt.Fprintln(r.out, tree.String())
	for _, e := range tree.Errors() {
		msg := "syntax error"
		if e.Error != nil {
			msg = e.Error.Message
		}
		fmt.Fprintf(r.out, "  error at %d: %s\n", e.From, msg)
	}
	return true
}
