package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/benjamonnguyen/daytrack"
	"github.com/benjamonnguyen/daytrack/charmlog"
	"github.com/benjamonnguyen/daytrack/storage"
	"github.com/benjamonnguyen/daytrack/store"
	tea "github.com/charmbracelet/bubbletea"
	flag "github.com/spf13/pflag"
)

var logger daytrack.Logger

func main() {
	confFile := flag.StringP("config", "c", daytrack.DefaultConfFile(), "conf file")
	seed := flag.Bool("seed", false, "add sample tasks if there are none")
	showHelp := flag.BoolP("help", "h", false, "show usage")
	flag.Parse()

	if *showHelp {
		printUsage()
		os.Exit(0)
	}

	// conf
	conf, err := daytrack.LoadConfig(*confFile)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	f, err := charmlog.OpenFile(conf.LogPath)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	defer f.Close() //nolint:errcheck
	logger = charmlog.NewLogger(charmlog.Options{
		Writer: f,
		Level:  conf.LogLevel,
	})
	logger.Info("loaded config", "config", conf)

	// storage
	timeout, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	blobs, closeStorage, err := storage.Open(timeout, conf, logger)
	if err != nil {
		logger.Error("failed storage open", "error", err)
		fmt.Println(err)
		os.Exit(1)
	}
	defer closeStorage() //nolint:errcheck

	st, err := store.Open(timeout, blobs, store.Options{Logger: logger})
	if err != nil {
		logger.Error("failed store open", "error", err)
		fmt.Println(err)
		os.Exit(1)
	}
	if *seed {
		if added, err := st.Seed(timeout); err != nil {
			logger.Error("failed seed", "error", err)
		} else if added {
			logger.Info("seeded sample tasks")
		}
	}

	// handle initial args
	shouldExit, err := handleProgramArgs(timeout, st, flag.Args())
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	if shouldExit {
		return
	}

	// start program
	fmt.Println(colorize(colorYellow, logo))
	fmt.Printf("\nEnter \"/h\" for help\n\n")

	p := tea.NewProgram(newModel(st, logger, conf.TimeFormat))
	if _, err := p.Run(); err != nil {
		logger.Error(err.Error())
	}
}

func printUsage() {
	fmt.Print(colorize(colorYellow, programUsage))
	flag.PrintDefaults()
}

// handleProgramArgs runs a one-shot command given on the command line and
// reports whether the program should exit instead of starting the TUI.
func handleProgramArgs(ctx context.Context, st *store.Store, args []string) (bool, error) {
	if len(args) == 0 {
		return false, nil
	}

	switch args[0] {
	case "/a":
		d, err := taskDataFromInput(strings.Join(args[1:], " "), st.Now())
		if err != nil {
			return true, err
		}
		t, err := st.Add(ctx, d)
		if err != nil {
			return true, err
		}
		fmt.Printf("Added %q\n", t.Title)
		return true, nil
	default:
		printUsage()
		return true, nil
	}
}
