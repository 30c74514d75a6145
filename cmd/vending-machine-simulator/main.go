// Package main boots the Vending Machine Simulator HTTP server.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fairyhunter13/vending-machine-simulator/internal/config"
	httpapi "github.com/fairyhunter13/vending-machine-simulator/internal/http"
	"github.com/fairyhunter13/vending-machine-simulator/internal/idle"
	"github.com/fairyhunter13/vending-machine-simulator/internal/obs"
	"github.com/fairyhunter13/vending-machine-simulator/internal/phrase"
	"github.com/fairyhunter13/vending-machine-simulator/internal/queue"
	"github.com/fairyhunter13/vending-machine-simulator/internal/random"
	"github.com/fairyhunter13/vending-machine-simulator/internal/store"
	"github.com/fairyhunter13/vending-machine-simulator/internal/vending"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		obs.InitLogger("info")
		obs.Logger.Error("config_error", "error", err)
		os.Exit(1)
	}
	obs.InitLogger(cfg.LogLevel)

	rng, seed, err := random.NewSeeded(cfg.RandomSeed)
	if err != nil {
		obs.Logger.Error("random_seed_error", "error", err)
		os.Exit(1)
	}
	phrases, err := phrase.New(cfg.Locale)
	if err != nil {
		obs.Logger.Error("locale_error", "error", err)
		os.Exit(1)
	}
	obs.Logger.Info("service_starting",
		"locale", phrases.Locale(),
		"random_seed", seed,
		"bill_reject_rate", cfg.BillRejectRate,
	)

	eng := vending.New(
		vending.WithCatalog(vending.DefaultCatalog(cfg.InitialStock)),
		vending.WithWallet(cfg.InitialWallet),
		vending.WithCardBalance(cfg.InitialCardBalance),
		vending.WithBillRejectRate(cfg.BillRejectRate),
		vending.WithChance(rng),
		vending.WithFormatter(phrases),
	)

	st := store.New()
	q := queue.New(cfg.QueueBuffer)
	mgr := queue.NewManager(cfg, q, st, eng)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	mgr.Start(ctx)

	resetter := idle.New(mgr, st, eng.Greeting(), cfg.MessageResetAfter, cfg.MessageResetPoll)
	go resetter.Run(ctx)

	app := httpapi.NewApp(cfg, st, mgr)
	mux := httpapi.NewRouter(app)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		obs.Logger.Info("http_listen", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			obs.Logger.Error("http_server_error", "error", err)
			os.Exit(1)
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	s := <-sigc
	obs.Logger.Info("shutdown_signal", "signal", s.String())

	app.StartShutdown()
	obs.Logger.Info("shutdown_drain_begin", "backlog_size", mgr.BacklogSize(), "queue_depth", mgr.QueueDepth())

	ctxDrain, cancelDrain := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancelDrain()
	if drained := mgr.DrainUntil(ctxDrain); !drained {
		obs.Logger.Warn("shutdown_drain_timeout")
	} else {
		obs.Logger.Info("shutdown_drain_complete")
	}

	ctxSrv, cancelSrv := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelSrv()
	if err := srv.Shutdown(ctxSrv); err != nil {
		obs.Logger.Error("http_shutdown_error", "error", err)
	}
	cancel()
	mgr.Stop()
	if snap, ok := st.Get(); ok {
		obs.Logger.Info("service_stopped", "message_sequence", snap.Message.Sequence, "wallet", snap.Wallet)
	}
}
