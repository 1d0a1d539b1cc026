// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newWatchCmd() *cobra.Command {
	var debounce time.Duration
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-render charts whenever the config file changes",
		Long: `watch renders the configured charts, then renders them again each
time the file named by --config is saved, until interrupted. Invalid
configurations, including one present at startup, are logged and
skipped.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("config")
			if path == "" {
				return errors.New("watch needs --config")
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			render := func() error {
				cfg, err := loadConfig(cmd)
				if err != nil {
					return err
				}
				d, err := generate(ctx, cfg)
				if err != nil {
					return err
				}
				return plotAll(ctx, cfg, cfg.Plot.Kinds, d.Observations)
			}
			err := renderOnChange(ctx, path, debounce, render)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
	cmd.Flags().DurationVar(&debounce, "debounce", 300*time.Millisecond, "wait this long after the last change before rendering")
	return cmd
}

// renderOnChange calls render now and again after each change to
// path, logging render failures, until ctx is done.
func renderOnChange(ctx context.Context, path string, debounce time.Duration, render func() error) error {
	try := func() {
		if err := render(); err != nil {
			logger.Error("render failed", zap.String("path", path), zap.Error(err))
		}
	}
	try()
	return watchFile(ctx, path, debounce, try)
}

// watchFile calls onChange once writes to path have been quiet for
// debounce. It watches path's directory so that editors that replace
// the file are seen. watchFile returns when ctx is done.
func watchFile(ctx context.Context, path string, debounce time.Duration, onChange func()) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}
	logger.Info("watching", zap.String("path", abs))

	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs || !ev.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename) {
				continue
			}
			logger.Debug("config changed", zap.String("op", ev.Op.String()))
			timer.Reset(debounce)

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", zap.Error(err))

		case <-timer.C:
			onChange()
		}
	}
}
