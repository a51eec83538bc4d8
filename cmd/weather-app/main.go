package main

import (
	"context"
	"flag"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/term"

	httpapi "github.com/i474232898/weather-app/internal/api/http"
	"github.com/i474232898/weather-app/internal/config"
	"github.com/i474232898/weather-app/internal/display"
	"github.com/i474232898/weather-app/internal/metrics"
	"github.com/i474232898/weather-app/internal/scheduler"
	"github.com/i474232898/weather-app/internal/ui/terminal"
	"github.com/i474232898/weather-app/internal/weather"
	"github.com/i474232898/weather-app/internal/weather/providers"
)

func main() {
	var (
		serve = flag.Bool("serve", false, "serve the HTTP API instead of the interactive terminal")
		city  = flag.String("city", "", "city to fetch on startup")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if !*serve {
		closeLog := redirectLog(cfg.LogFile)
		defer closeLog()
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	// Outbound provider with a circuit breaker; a single attempt per fetch.
	provider := providers.NewOpenWeatherProvider(
		providers.NewHTTPClient(cfg.HTTPTimeout),
		cfg.BaseURL,
		providers.BreakerConfig{
			ConsecutiveFailures: cfg.BreakerFailures,
			OpenTimeout:         cfg.BreakerOpenTimeout,
		},
	)
	service := weather.NewService(provider, cfg.APIKey, metrics.NewFetch(reg))
	ctrl := display.NewController(service)

	// Callers wait slightly longer than the HTTP timeout so the provider's
	// own timeout is what the user sees.
	fetchTimeout := cfg.HTTPTimeout + 2*time.Second

	sched := scheduler.New(cfg.RefreshInterval, fetchTimeout, ctrl)

	if *serve {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		runServer(ctx, cfg, ctrl, sched, fetchTimeout, reg, *city)
		return
	}
	// Ctrl-C keeps its default behaviour in the terminal; the REPL exits on EOF or /quit.
	runTerminal(context.Background(), ctrl, sched, fetchTimeout, *city)
}

func runTerminal(ctx context.Context, ctrl *display.Controller, sched *scheduler.Scheduler, fetchTimeout time.Duration, city string) {
	repl := terminal.New(os.Stdin, os.Stdout, ctrl, term.IsTerminal(int(os.Stdout.Fd())))

	if city != "" {
		fctx, cancel := context.WithTimeout(ctx, fetchTimeout)
		if o, err := ctrl.FetchWait(fctx, city); err == nil {
			repl.Render(o.View)
		}
		cancel()
	}

	sched.OnRefresh = repl.Notify
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	if err := repl.Run(ctx); err != nil {
		log.Printf("ERROR: terminal input: %v", err)
	}
}

func runServer(ctx context.Context, cfg *config.AppConfig, ctrl *display.Controller, sched *scheduler.Scheduler, fetchTimeout time.Duration, reg *prometheus.Registry, city string) {
	if city != "" {
		fctx, cancel := context.WithTimeout(ctx, fetchTimeout)
		if o, err := ctrl.FetchWait(fctx, city); err == nil && o.Err != nil {
			log.Printf("INFO: initial fetch for %q: %s", city, o.Err.Message)
		}
		cancel()
	}

	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	app := httpapi.NewApp(ctrl, fetchTimeout, reg)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()
	log.Printf("INFO: listening on :%s", cfg.Port)

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}

// redirectLog keeps log output from interleaving with the interactive
// surface: it goes to path, or nowhere when path is empty.
func redirectLog(path string) func() {
	if path == "" {
		log.SetOutput(io.Discard)
		return func() {}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.Printf("ERROR: cannot open log file %s: %v", path, err)
		log.SetOutput(io.Discard)
		return func() {}
	}
	log.SetOutput(f)
	return func() { f.Close() }
}
