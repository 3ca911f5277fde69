// Command fen runs Fen programs.
//
//	fen            interactive REPL (line editing when stdin is a terminal)
//	fen <file>     run a script; exit 70 on runtime error
//
// Anything else prints usage and exits 64.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/peterh/liner"
	"gopkg.in/yaml.v3"

	fen "github.com/fen-lang/fen"
)

const (
	appName     = "fen"
	rcFile      = ".fenrc.yaml"
	historyFile = ".fen_history"
	promptMain  = "> "
	promptCont  = "... "
)

var banner = fmt.Sprintf("Fen %s REPL\nCtrl+C cancels input, Ctrl+D exits.", fen.Version)

func blue(s string) string { return "\x1b[94m" + s + "\x1b[0m" }

// config is the optional ~/.fenrc.yaml. Zero values fall back to defaults.
type config struct {
	History string `yaml:"history"`
	Prompt  string `yaml:"prompt"`
	Color   bool   `yaml:"color"`
}

func loadConfig() config {
	cfg := config{Prompt: promptMain}
	home, err := os.UserHomeDir()
	if err != nil {
		return cfg
	}
	cfg.History = filepath.Join(home, historyFile)

	raw, err := os.ReadFile(filepath.Join(home, rcFile))
	if err != nil {
		return cfg
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		fmt.Fprintf(os.Stderr, "%s: ignoring malformed %s: %v\n", appName, rcFile, err)
	}
	if cfg.Prompt == "" {
		cfg.Prompt = promptMain
	}
	return cfg
}

func main() {
	switch len(os.Args) {
	case 1:
		os.Exit(repl())
	case 2:
		d := fen.NewDriver(os.Stdin, os.Stdout, os.Stderr)
		os.Exit(d.RunFile(os.Args[1]))
	default:
		fmt.Printf("Usage: %s [script]\n", appName)
		os.Exit(fen.ExitUsage)
	}
}

func repl() int {
	d := fen.NewDriver(os.Stdin, os.Stdout, os.Stderr)

	if stat, err := os.Stdin.Stat(); err != nil || stat.Mode()&os.ModeCharDevice == 0 {
		// Piped input: plain prompt loop, no line editing.
		d.RunPrompt(os.Stdin)
		return fen.ExitOK
	}

	cfg := loadConfig()
	fmt.Println(banner)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if cfg.History != "" {
		if f, err := os.Open(cfg.History); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			if f, err := os.Create(cfg.History); err == nil {
				_, _ = ln.WriteHistory(f)
				_ = f.Close()
			}
		}()
	}

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	d.Interactive = true
	prompt := cfg.Prompt
	if cfg.Color {
		prompt = blue(prompt)
	}

	for {
		line, err := ln.Prompt(prompt)
		if err == liner.ErrPromptAborted {
			continue
		}
		if err != nil { // io.EOF and real terminal errors both end the session
			fmt.Println()
			return fen.ExitOK
		}

		src := line
		for fen.Incomplete(src) {
			more, err := ln.Prompt(promptCont)
			if err != nil {
				break
			}
			src += "\n" + more
		}

		if src != "" {
			ln.AppendHistory(src)
		}
		d.RunLine(src)
	}
}
