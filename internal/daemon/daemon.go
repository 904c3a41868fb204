// Package daemon runs the engine behind the HTTP API with a 1 Hz tick
// loop driving fatigue checks. The tick loop and the HTTP handlers share
// one mutex; the engine itself is single-threaded.
package daemon

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/ghostrider-app/ghostrider/internal/api"
	"github.com/ghostrider-app/ghostrider/internal/app/engine"
	"github.com/ghostrider-app/ghostrider/internal/domain"
	"github.com/ghostrider-app/ghostrider/internal/infra/store"
)

// Daemon wires the store, engine, and HTTP server together.
type Daemon struct {
	cfg Config
	log zerolog.Logger
	eng *engine.Engine
	mu  sync.Mutex

	closeStore func() error
}

// OpenEngine builds an engine over the configured data dir. A SQLite
// store that fails to open falls back to memory so the process still
// works for the session. The returned closer releases the store.
func OpenEngine(cfg Config, log zerolog.Logger) (*engine.Engine, func() error) {
	var st store.Store
	db, err := store.Open(cfg.DataDir())
	if err != nil {
		log.Warn().Err(err).Str("dir", cfg.DataDir()).
			Msg("sqlite unavailable, state will not survive this session")
		st = store.NewMemory()
	} else {
		st = db
	}

	eng := engine.New(st, domain.SystemClock{}, log)

	// First run: seed the cutoffs from config. Persisted settings from a
	// previous session take precedence.
	seed := cfg.SeedThresholds()
	if eng.Thresholds() == domain.DefaultThresholds() && seed.Validate() == nil {
		if err := eng.SetThresholds(seed); err != nil {
			log.Warn().Err(err).Msg("seed thresholds")
		}
	}
	return eng, st.Close
}

// New opens the store and constructs a ready-to-run daemon.
func New(cfg Config, log zerolog.Logger) *Daemon {
	eng, closeStore := OpenEngine(cfg, log)
	return &Daemon{cfg: cfg, log: log, eng: eng, closeStore: closeStore}
}

// Engine exposes the daemon's engine, mainly for tests.
func (d *Daemon) Engine() *engine.Engine { return d.eng }

// Run serves HTTP and drives the tick loop until ctx is cancelled.
func (d *Daemon) Run(ctx context.Context) error {
	srv := api.NewServer(d.eng, &d.mu)
	if d.cfg.API.EnableMetrics {
		srv.EnableMetrics()
	}

	httpSrv := &http.Server{
		Addr:    d.cfg.ListenAddr(),
		Handler: srv.Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		d.log.Info().Str("addr", httpSrv.Addr).Msg("api listening")
		if err := httpSrv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	ticker := time.NewTicker(d.cfg.TickInterval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			err := httpSrv.Shutdown(shutdownCtx)
			if cerr := d.closeStore(); cerr != nil {
				d.log.Warn().Err(cerr).Msg("close store")
			}
			return err
		case err := <-errCh:
			d.closeStore()
			return err
		case <-ticker.C:
			d.tick()
		}
	}
}

// tick advances the fatigue check under the shared engine lock.
func (d *Daemon) tick() {
	d.mu.Lock()
	events := d.eng.Tick()
	d.mu.Unlock()

	for _, ev := range events {
		d.log.Info().
			Str("kind", string(ev.Kind)).
			Str("platform", string(ev.Platform)).
			Int64("live_seconds", ev.LiveSeconds).
			Msg("fatigue warning")
	}
}
