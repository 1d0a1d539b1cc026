// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aclements/ggtutorial/internal/config"
	"github.com/aclements/ggtutorial/irt"
	"github.com/aclements/ggtutorial/longitudinal"
	"github.com/aclements/go-gg/table"
	"github.com/google/go-cmp/cmp"
)

func testObservations(t *testing.T) []longitudinal.Observation {
	t.Helper()
	p := longitudinal.DefaultParams()
	p.N = 30
	obs, err := longitudinal.Generate(p)
	if err != nil {
		t.Fatal(err)
	}
	return obs
}

func TestObservationsToTable(t *testing.T) {
	obs := []longitudinal.Observation{
		{ID: 1, Group: "A", Time: 1, Outcome: 0.5},
		{ID: 1, Group: "A", Time: 3, Outcome: 2},
		{ID: 2, Group: "C", Time: 1, Outcome: -1},
	}
	tab := observationsToTable(obs)
	if diff := cmp.Diff([]string{"id", "group", "time", "outcome"}, tab.Columns()); diff != "" {
		t.Errorf("columns (-want +got):\n%s", diff)
	}
	if got, want := tab.MustColumn("time"), []float64{1, 3, 1}; !cmp.Equal(got, want) {
		t.Errorf("time = %v, want %v", got, want)
	}
	if got, want := tab.MustColumn("group"), []string{"A", "A", "C"}; !cmp.Equal(got, want) {
		t.Errorf("group = %v, want %v", got, want)
	}
}

func TestCurvesToTable(t *testing.T) {
	pts := irt.Curves([]irt.Item{irt.Rasch(0)}, []float64{-1, 0, 1})
	g := curvesToTable(pts)
	var rows int
	for _, gid := range g.Tables() {
		rows += g.Table(gid).Len()
	}
	// One row per ability and measure.
	if rows != 6 {
		t.Errorf("got %d rows, want 6", rows)
	}
}

func TestLogTrend(t *testing.T) {
	// y = 2 + 3 ln x exactly.
	xs := []float64{1, 2, 4, 8}
	ys := make([]float64, len(xs))
	for i, x := range xs {
		ys[i] = 2 + 3*math.Log(x)
	}
	tab := new(table.Builder).Add("x", xs).Add("y", ys).AddConst("group", "A").Done()
	out := logTrend{X: "x", Y: "y", N: 5}.F(tab)

	res := out.Table(out.Tables()[0])
	gx := res.MustColumn("x").([]float64)
	gy := res.MustColumn("y").([]float64)
	if len(gx) != 5 || gx[0] != 1 || gx[4] != 8 {
		t.Fatalf("x samples = %v, want 5 points over [1, 8]", gx)
	}
	for i := range gx {
		if want := 2 + 3*math.Log(gx[i]); math.Abs(gy[i]-want) > 1e-9 {
			t.Errorf("fit(%v) = %v, want %v", gx[i], gy[i], want)
		}
	}
	if v, ok := res.Const("group"); !ok || v != "A" {
		t.Errorf("group const = %v, %v; want A, true", v, ok)
	}
}

func TestRenderCharts(t *testing.T) {
	obs := testObservations(t)
	pc := config.Default().Plot
	for _, kind := range chartKinds {
		for _, format := range []string{"svg", "png", "html"} {
			data, err := renderChart(kind, format, obs, pc)
			if errors.Is(err, errNoRendering) {
				if format == "svg" {
					t.Errorf("%s: every kind must render as svg", kind)
				}
				continue
			}
			if err != nil {
				t.Errorf("%s.%s: %v", kind, format, err)
				continue
			}
			if len(data) == 0 {
				t.Errorf("%s.%s: empty output", kind, format)
			}
			switch format {
			case "svg":
				if !bytes.Contains(data, []byte("<svg")) {
					t.Errorf("%s.svg: no <svg> element", kind)
				}
			case "png":
				if _, err := png.Decode(bytes.NewReader(data)); err != nil {
					t.Errorf("%s.png: %v", kind, err)
				}
			case "html":
				if !strings.Contains(string(data), "echarts") {
					t.Errorf("%s.html: no echarts script", kind)
				}
			}
		}
	}
	if _, err := renderChart("points", "gif", obs, pc); err == nil {
		t.Error("gif format: want error")
	}
}

func TestPlotIRT(t *testing.T) {
	for _, kind := range irtKinds {
		p, err := plotIRT(kind, tutorialItems, -3, 3, 7)
		if err != nil {
			t.Fatalf("%s: %v", kind, err)
		}
		var buf bytes.Buffer
		if err := p.WriteSVG(&buf, 400, 300); err != nil {
			t.Fatalf("%s: %v", kind, err)
		}
	}
	_, err := plotIRT("curves", []irt.Item{{A: -1, D: 1}}, -3, 3, 7)
	if !errors.Is(err, irt.ErrInvalidItem) {
		t.Errorf("bad item: got %v, want ErrInvalidItem", err)
	}
}

func TestThumbnail(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 40, 30))
	var in, out bytes.Buffer
	if err := png.Encode(&in, src); err != nil {
		t.Fatal(err)
	}
	if err := writeThumbnail(&out, in.Bytes()); err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(&out)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := img.Bounds().Size(), image.Pt(20, 15); got != want {
		t.Errorf("thumbnail size = %v, want %v", got, want)
	}
}

func TestByIndividual(t *testing.T) {
	obs := testObservations(t)
	runs := byIndividual(obs)
	if len(runs) != 30 {
		t.Fatalf("got %d runs, want 30", len(runs))
	}
	for i, run := range runs {
		for _, o := range run {
			if o.ID != i+1 {
				t.Fatalf("run %d contains individual %d", i, o.ID)
			}
		}
	}
}

func TestEstimateEnd(t *testing.T) {
	// Progress advances by 0.1 per second, so it completes at 10s.
	sec := float64(time.Second)
	times := []float64{1 * sec, 2 * sec, 3 * sec}
	progress := []float64{0.1, 0.2, 0.3}
	end, ok := estimateEnd(times, progress, 3*sec)
	if !ok {
		t.Fatal("estimateEnd reported no estimate")
	}
	if math.Abs(end-10*sec) > 1e-3*sec {
		t.Errorf("end = %v, want 10s", time.Duration(end))
	}

	if _, ok := estimateEnd(times[:1], progress[:1], sec); ok {
		t.Error("one sample: want no estimate")
	}
	if _, ok := estimateEnd(times, []float64{0.5, 0.4, 0.3}, 3*sec); ok {
		t.Error("progress going backwards: want no estimate")
	}
}

func TestStatusReporter(t *testing.T) {
	var buf bytes.Buffer
	sr := startStatusReporter(&buf)
	sr.Progress("working", 0.5)
	sr.Message("hello")
	sr.Stop()
	sr.Stop()
	out := buf.String()
	if !strings.Contains(out, "working") || !strings.Contains(out, "hello\n") {
		t.Errorf("output %q missing progress or message", out)
	}

	buf.Reset()
	plain := newStatusReporter(&buf)
	plain.Progress("ignored", 0.1)
	plain.Message("line")
	plain.Stop()
	if got := buf.String(); got != "line\n" {
		t.Errorf("plain output = %q, want %q", got, "line\n")
	}
}

func TestWatchFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "c.yaml")
	if err := os.WriteFile(path, []byte("a: 1\n"), 0644); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	changed := make(chan struct{}, 10)
	done := make(chan error)
	go func() {
		done <- watchFile(ctx, path, 10*time.Millisecond, func() { changed <- struct{}{} })
	}()

	// Keep writing until the watcher, which starts asynchronously,
	// sees a change.
	deadline := time.After(5 * time.Second)
	tick := time.NewTicker(50 * time.Millisecond)
	defer tick.Stop()
wait:
	for {
		select {
		case <-changed:
			break wait
		case <-tick.C:
			if err := os.WriteFile(path, []byte("a: 2\n"), 0644); err != nil {
				t.Fatal(err)
			}
		case <-deadline:
			t.Fatal("no change notification")
		}
	}

	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Errorf("watchFile returned %v, want context.Canceled", err)
	}
}

func TestLoessChart(t *testing.T) {
	p, err := plotDataset("loess", testObservations(t))
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := p.WriteSVG(&buf, 400, 300); err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(buf.Bytes(), []byte("<path")) {
		t.Error("loess chart has no smooth line")
	}
}

func TestRenderOnChangeStartupFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "c.yaml")
	if err := os.WriteFile(path, []byte("dataset: [\n"), 0644); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	calls := make(chan int, 10)
	n := 0
	render := func() error {
		n++
		calls <- n
		if n == 1 {
			return errors.New("invalid config")
		}
		return nil
	}
	done := make(chan error)
	go func() {
		done <- renderOnChange(ctx, path, 10*time.Millisecond, render)
	}()

	// The failed first render must not stop the watch.
	if got := <-calls; got != 1 {
		t.Fatalf("first render call = %d, want 1", got)
	}
	deadline := time.After(5 * time.Second)
	tick := time.NewTicker(50 * time.Millisecond)
	defer tick.Stop()
wait:
	for {
		select {
		case <-calls:
			break wait
		case <-tick.C:
			if err := os.WriteFile(path, []byte("dataset:\n  n: 3\n"), 0644); err != nil {
				t.Fatal(err)
			}
		case err := <-done:
			t.Fatalf("renderOnChange returned early: %v", err)
		case <-deadline:
			t.Fatal("no render after the config was fixed")
		}
	}

	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Errorf("renderOnChange returned %v, want context.Canceled", err)
	}
}
