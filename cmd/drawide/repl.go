package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ederatone/drawide/painter"
	"github.com/ederatone/drawide/painter/lang"
	"github.com/peterh/liner"
	"github.com/spf13/cobra"
)

const historyFile = ".drawide_history"

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Build a scene line by line in the terminal",
	Long: `Each entered line is appended to the buffer and the whole buffer is
re-evaluated. Meta commands:
  :clear        empty the buffer
  :png <path>   write the current scene as PNG
  :quit         exit`,
	Args: cobra.NoArgs,
	RunE: runRepl,
}

func init() {
	rootCmd.AddCommand(replCmd)
}

func runRepl(cmd *cobra.Command, _ []string) error {
	w, h, err := canvasSize()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)
	ln.SetCompleter(completeKeyword)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	s := &replSession{builder: newBuilder()}
	for {
		line, err := ln.Prompt("draw> ")
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				fmt.Fprintln(out)
				return nil
			}
			return err
		}
		ln.AppendHistory(line)

		quit, err := s.handle(out, line, w, h)
		if err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), err)
		}
		if quit {
			return nil
		}
	}
}

// replSession holds the buffer typed so far.
type replSession struct {
	builder *lang.Builder
	lines   []string
	scene   painter.Scene
}

func (s *replSession) handle(out io.Writer, line string, w, h int) (quit bool, err error) {
	trimmed := strings.TrimSpace(line)
	if strings.HasPrefix(trimmed, ":") {
		fields := strings.Fields(trimmed)
		switch strings.ToLower(fields[0]) {
		case ":quit", ":q":
			return true, nil
		case ":clear":
			s.lines = nil
		case ":png":
			if len(fields) != 2 {
				return false, errors.New("usage: :png <path>")
			}
			return false, s.writePNG(fields[1], w, h)
		default:
			return false, fmt.Errorf("unknown meta command %s", fields[0])
		}
	} else {
		s.lines = append(s.lines, line)
	}

	scene, errs := s.builder.Rebuild(strings.Join(s.lines, "\n"))
	s.scene = scene
	for i, sh := range scene {
		fmt.Fprintf(out, "%3d  %s\n", i+1, sh)
	}
	printDiagnostics(out, errs)
	return false, nil
}

func (s *replSession) writePNG(path string, w, h int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := painter.EncodePNG(f, s.scene, style(), w, h); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func completeKeyword(line string) []string {
	var c []string
	for _, usage := range lang.Keywords() {
		kw, _, _ := strings.Cut(usage, " ")
		if strings.HasPrefix(kw, strings.ToLower(line)) {
			c = append(c, kw+" ")
		}
	}
	return c
}
