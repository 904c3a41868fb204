package daemon

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/ghostrider-app/ghostrider/internal/domain"
)

func TestOpenEngine_SeedsThresholdsFromConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Data.Dir = t.TempDir()
	cfg.Thresholds.MinPrice = 4000
	cfg.Thresholds.MinPricePerKm = 3200

	eng, closeStore := OpenEngine(cfg, zerolog.Nop())
	defer closeStore()

	want := domain.Thresholds{MinPrice: 4000, MinPricePerKm: 3200}
	if eng.Thresholds() != want {
		t.Errorf("thresholds = %+v, want %+v", eng.Thresholds(), want)
	}
}

func TestOpenEngine_PersistedSettingsBeatConfigSeed(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Data.Dir = t.TempDir()

	eng, closeStore := OpenEngine(cfg, zerolog.Nop())
	custom := domain.Thresholds{MinPrice: 5000, MinPricePerKm: 4000}
	if err := eng.SetThresholds(custom); err != nil {
		t.Fatal(err)
	}
	closeStore()

	// The config still carries the defaults; the rider's saved settings win.
	reopened, closeStore := OpenEngine(cfg, zerolog.Nop())
	defer closeStore()
	if reopened.Thresholds() != custom {
		t.Errorf("thresholds = %+v, want persisted %+v", reopened.Thresholds(), custom)
	}
}

func TestOpenEngine_StateSurvivesReopen(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Data.Dir = t.TempDir()

	eng, closeStore := OpenEngine(cfg, zerolog.Nop())
	if _, err := eng.RecordCall(domain.Offer{Price: 4500, DistanceKm: 3}, "", true); err != nil {
		t.Fatal(err)
	}
	closeStore()

	reopened, closeStore := OpenEngine(cfg, zerolog.Nop())
	defer closeStore()
	if got := reopened.CallsForPeriod(domain.PeriodToday); len(got) != 1 {
		t.Errorf("reopened calls = %d, want 1", len(got))
	}
}
