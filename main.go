package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/peterh/liner"

	"github.com/jcorbin/fourth/internal/config"
)

func main() {
	ctx := context.Background()

	var (
		evalLine   string
		configPath string
		trace      bool
		timeout    time.Duration
	)
	flag.StringVar(&evalLine, "e", "", "evaluate one line and exit")
	flag.StringVar(&configPath, "config", "", "config file path")
	flag.BoolVar(&trace, "trace", false, "enable trace logging")
	flag.DurationVar(&timeout, "timeout", 0, "specify a time limit (script mode)")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}

	opts := []Option{
		WithOutput(os.Stdout),
		WithLocale(cfg.Locale),
	}
	if trace || cfg.Trace {
		opts = append(opts, WithLogf(log.Printf))
	}

	if timeout != 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	switch {
	case evalLine != "":
		f := New(append(opts, WithInput(strings.NewReader(evalLine)))...)
		if err := f.Run(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %+v\n", err)
			os.Exit(1)
		}

	case flag.NArg() > 0:
		readers := make([]io.Reader, 0, flag.NArg())
		closers := make([]io.Closer, 0, flag.NArg())
		for _, name := range flag.Args() {
			file, err := os.Open(name)
			if err != nil {
				fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
				os.Exit(1)
			}
			readers = append(readers, file)
			closers = append(closers, file)
		}
		f := New(append(opts, WithInput(io.MultiReader(readers...)))...)
		err := f.Run(ctx)
		for _, c := range closers {
			c.Close()
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %+v\n", err)
			os.Exit(1)
		}

	default:
		repl(New(opts...), cfg)
	}
}

// repl runs the interactive loop: line editing, history, and tab
// completion over the current dictionary.
func repl(f *Forth, cfg *config.Config) {
	line := liner.NewLiner()
	defer line.Close()

	line.SetCtrlCAborts(true)
	line.SetCompleter(func(prefix string) (heads []string) {
		last := strings.LastIndexByte(prefix, ' ') + 1
		for _, word := range f.Words() {
			if strings.HasPrefix(word, strings.ToUpper(prefix[last:])) {
				heads = append(heads, prefix[:last]+word)
			}
		}
		return heads
	})

	if file, err := os.Open(cfg.History); err == nil {
		line.ReadHistory(file)
		file.Close()
	}
	defer func() {
		if file, err := os.Create(cfg.History); err == nil {
			line.WriteHistory(file)
			file.Close()
		}
	}()

	for {
		input, err := line.Prompt(cfg.Prompt)
		if err == liner.ErrPromptAborted {
			fmt.Println("^C")
			continue
		}
		if err == io.EOF {
			fmt.Println()
			return
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
			return
		}
		if strings.TrimSpace(input) != "" {
			line.AppendHistory(input)
		}
		err = f.Eval(input)
		f.Flush()
		if err != nil {
			if errors.Is(err, ErrBye) {
				return
			}
			fmt.Printf("error: %v\n", err)
		}
	}
}
