package metrics

import (
	"io"
	"math/rand/v2"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/phanxgames/fireworks"
)

func TestObserveFrame(t *testing.T) {
	c := New()
	c.ObserveFrame(fireworks.FrameStats{
		Duration:      2 * time.Millisecond,
		SimTime:       1500,
		Speed:         0.5,
		Stars:         120,
		Sparks:        900,
		Pending:       3,
		SoundsPlayed:  2,
		SoundsDropped: 1,
	})
	if got := testutil.ToFloat64(c.stars); got != 120 {
		t.Errorf("stars = %v", got)
	}
	if got := testutil.ToFloat64(c.simTime); got != 1.5 {
		t.Errorf("sim time = %v", got)
	}
	if got := testutil.ToFloat64(c.sounds.WithLabelValues("dropped")); got != 1 {
		t.Errorf("dropped sounds = %v", got)
	}
	if n := testutil.CollectAndCount(c.updateDuration); n != 1 {
		t.Errorf("update histogram collected %d metrics", n)
	}
}

func TestSimulationFeedsCollector(t *testing.T) {
	cfg := fireworks.DefaultConfig()
	cfg.AutoLaunch = false
	cfg.Sound = false
	cfg.WordShell = false
	sim := fireworks.NewSimulation(cfg, 1280, 720)
	sim.SetRand(rand.New(rand.NewPCG(1, 2)))

	c := New()
	sim.SetObserver(c)
	sim.SetEventSink(c)

	if _, err := sim.Launch("Ring", 1, 0.5, 0.5); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 300; i++ {
		if err := sim.Update(1000.0/60, 1); err != nil {
			t.Fatal(err)
		}
	}
	if got := testutil.ToFloat64(c.shells.WithLabelValues("launch", "Ring")); got != 1 {
		t.Errorf("launches = %v", got)
	}
	if got := testutil.ToFloat64(c.shells.WithLabelValues("burst", "Ring")); got != 1 {
		t.Errorf("bursts = %v", got)
	}

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), "fireworks_burst_stars_count 1") {
		t.Errorf("metrics output missing burst histogram:\n%s", body)
	}
}
