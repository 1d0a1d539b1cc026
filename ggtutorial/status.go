// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"math"
	"os"
	"time"

	"github.com/aclements/go-moremath/fit"
	"golang.org/x/crypto/ssh/terminal"
)

// A statusReporter keeps a one-line progress message with an ETA at
// the bottom of a terminal. If the output is not a terminal, progress
// is dropped and messages are printed as plain lines.
type statusReporter struct {
	w      io.Writer
	update chan<- statusUpdate
	done   chan bool
}

type statusUpdate struct {
	progress float64
	message  string
}

func newStatusReporter(w io.Writer) *statusReporter {
	f, ok := w.(*os.File)
	if !ok || os.Getenv("TERM") == "dumb" || !terminal.IsTerminal(int(f.Fd())) {
		return &statusReporter{w: w}
	}
	return startStatusReporter(w)
}

// startStatusReporter starts a status line on w regardless of whether
// w is a terminal.
func startStatusReporter(w io.Writer) *statusReporter {
	update := make(chan statusUpdate)
	sr := &statusReporter{w: w, update: update}
	go sr.loop(update)
	return sr
}

// Progress sets the status line to msg with frac of the work done.
func (sr *statusReporter) Progress(msg string, frac float64) {
	if sr.update != nil {
		sr.update <- statusUpdate{message: msg, progress: frac}
	}
}

// Message prints msg above the status line.
func (sr *statusReporter) Message(msg string) {
	if sr.update == nil {
		fmt.Fprintln(sr.w, msg)
	} else {
		sr.update <- statusUpdate{message: msg, progress: -1}
	}
}

// Stop clears the status line and waits for the reporter to exit.
func (sr *statusReporter) Stop() {
	if sr.update != nil {
		sr.done = make(chan bool)
		close(sr.update)
		<-sr.done
		sr.update = nil
	}
}

func (sr *statusReporter) loop(updates <-chan statusUpdate) {
	const resetLine = "\r\x1b[2K"
	const wrapOff = "\x1b[?7l"
	const wrapOn = "\x1b[?7h"

	tick := time.NewTicker(time.Second / 4)
	defer tick.Stop()

	var end time.Time
	t0 := time.Now()

	var times, progress []float64
	var msg string
	for {
		select {
		case update, ok := <-updates:
			if !ok {
				fmt.Fprint(sr.w, resetLine)
				close(sr.done)
				return
			}
			if update.progress == -1 {
				fmt.Fprint(sr.w, resetLine)
				fmt.Fprintln(sr.w, update.message)
				break
			}
			now := float64(time.Since(t0))
			times = append(times, now)
			progress = append(progress, update.progress)
			msg = update.message

			if d, ok := estimateEnd(times, progress, now); ok {
				end = t0.Add(time.Duration(d))
			} else {
				end = time.Time{}
			}

		case <-tick.C:
		}

		eta := "unknown"
		if !end.IsZero() {
			etaDur := time.Until(end)
			etaDur -= etaDur % time.Second
			if etaDur <= 0 {
				eta = "0s"
			} else {
				eta = etaDur.String()
			}
		}
		if msg == "" {
			eta = "ETA " + eta
		} else {
			eta = ", ETA " + eta
		}
		fmt.Fprintf(sr.w, "%s%s%s%s%s", resetLine, wrapOff, msg, eta, wrapOn)
	}
}

// estimateEnd fits progress against times by linear regression with
// exponentially decaying weights and returns the time at which the
// fit reaches 1. It reports false if progress is not increasing.
func estimateEnd(times, progress []float64, now float64) (float64, bool) {
	const halfLife = 150 * time.Second
	if len(times) < 2 {
		return 0, false
	}
	weights := make([]float64, len(times))
	for i, t := range times {
		weights[i] = math.Exp(-1 / float64(halfLife) * (now - t))
	}
	coeffs := fit.PolynomialRegression(times, progress, weights, 1).Coefficients
	a, b := coeffs[0], coeffs[1]
	if !(b > 0) {
		return 0, false
	}
	// The root of a + b*x - 1 is the ending time.
	return (1 - a) / b, true
}
