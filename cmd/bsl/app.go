package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/alkoleft/lezer-bsl/bsl/session"
	"github.com/alkoleft/lezer-bsl/format"
	"github.com/alkoleft/lezer-bsl/internal/config"
	"github.com/alkoleft/lezer-bsl/internal/langdetect"
	"github.com/alkoleft/lezer-bsl/internal/logging"
)

// app carries what every command shares: the configuration and the logger.
type app struct {
	configPath string
	logLevel   string

	cfg *config.Config
	log *log.Logger
}

func (a *app) setup(cmd *cobra.Command) error {
	var err error
	if a.configPath != "" {
		a.cfg, err = config.Load(a.configPath)
	} else {
		a.cfg, err = config.Discover(".")
	}
	if err != nil {
		return err
	}

	level := a.cfg.Log.Level
	if a.logLevel != "" {
		level = a.logLevel
	}
	a.log = logging.New(cmd.ErrOrStderr(), level)
	logging.SetDefault(a.log)
	if a.cfg.Path != "" {
		a.log.Debug("loaded configuration", "path", a.cfg.Path)
	}
	return nil
}

func defaultLogger() *log.Logger {
	return logging.Default()
}

func (a *app) newSession(extra ...session.Option) *session.Session {
	return session.New(append(a.cfg.SessionOptions(), extra...)...)
}

// readSource reads the named file, or standard input for "-". Files that do
// not look like BSL are still parsed, with a warning.
func (a *app) readSource(cmd *cobra.Command, name string) (string, error) {
	var data []byte
	var err error
	if name == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(name)
	}
	if err != nil {
		return "", fmt.Errorf("read source: %w", err)
	}
	if lang := langdetect.Detect(name, data); lang != langdetect.BSL {
		a.log.Warn("input does not look like BSL", "file", name, "detected", lang)
	}
	return string(data), nil
}

// terminal reports whether w is a terminal, and its width when it is.
func terminal(w io.Writer) (bool, int) {
	f, ok := w.(*os.File)
	if !ok {
		return false, 0
	}
	fd := f.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		return false, 0
	}
	width, _, err := term.GetSize(int(fd))
	if err != nil {
		return true, 0
	}
	return true, width
}

func styledEncoder(w io.Writer, src string, positions bool) *format.StyledEncoder {
	tty, width := terminal(w)
	color := tty && os.Getenv("NO_COLOR") == ""
	enc := format.NewStyledEncoder(w, src, format.NewStyles(color), positions)
	enc.Width = width
	return enc
}
