package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/benjamonnguyen/daytrack"
	"github.com/benjamonnguyen/daytrack/charmlog"
	"github.com/benjamonnguyen/daytrack/storage"
	"github.com/benjamonnguyen/daytrack/store"
	flag "github.com/spf13/pflag"
)

func main() {
	confFile := flag.StringP("config", "c", daytrack.DefaultConfFile(), "conf file")
	addr := flag.String("addr", "", "listen address (overrides "+daytrack.KeyAPIAddr+")")
	seed := flag.Bool("seed", false, "add sample tasks if there are none")
	flag.Parse()

	conf, err := daytrack.LoadConfig(*confFile)
	if err != nil {
		panic(err)
	}
	if *addr != "" {
		conf.APIAddr = *addr
	}

	// logger
	logger := charmlog.NewLogger(charmlog.Options{
		Writer: os.Stdout,
		Level:  conf.LogLevel,
		Prefix: "daytrackd",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// storage
	timeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	blobs, closeStorage, err := storage.Open(timeout, conf, logger)
	if err != nil {
		logger.Fatal("failed storage open", "error", err)
	}
	defer closeStorage() //nolint:errcheck

	st, err := store.Open(timeout, blobs, store.Options{Logger: logger})
	if err != nil {
		logger.Fatal("failed store open", "error", err)
	}
	if *seed {
		if _, err := st.Seed(timeout); err != nil {
			logger.Error("failed seed", "error", err)
		}
	}

	// routes
	c := &controller{
		store: st,
		l:     logger,
	}
	srv := &http.Server{
		Addr:              conf.APIAddr,
		Handler:           newRouter(c),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdown); err != nil {
			logger.Error("failed shutdown", "error", err)
		}
	}()

	logger.Info("starting api server", "addr", conf.APIAddr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server stopped", "error", err)
	}
}
