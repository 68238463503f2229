// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

// Command seresave is the CLI front end for the batch driver, replacing
// the out-of-scope desktop UI (file selection, progress display, taskbar
// integration) spec.md leaves as an external collaborator. It follows the
// cobra shape the teacher's cmd/pedumper.go registers: a root command plus
// subcommands, flags bound in main(), a RunE func that loads input and
// dispatches.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/mod/semver"

	"github.com/saferwall/seresave/batch"
	"github.com/saferwall/seresave/config"
	"github.com/saferwall/seresave/internal/xlog"
	"github.com/saferwall/seresave/profile"
	"github.com/saferwall/seresave/scan"
	"github.com/saferwall/seresave/stream"
)

// buildVersion is the seresave binary's own version, compared against the
// highest signed-stream version any game profile declares (spec §6) when
// --check-latest is passed.
const buildVersion = "v0.1.0"

var checkLatest bool

// highestProfileVersion reports the highest signed-stream header version
// across the profile table, formatted as a semver string so it can be
// compared with golang.org/x/mod/semver.
func highestProfileVersion() string {
	var max int32
	for _, name := range profile.All() {
		p, err := profile.Get(name)
		if err != nil || p.Signed == nil {
			continue
		}
		if p.Signed.Version > max {
			max = p.Signed.Version
		}
	}
	return fmt.Sprintf("v%d.0.0", max)
}

var (
	configPath string
	verbose    bool
	workers    int
	dryRun     bool
)

func newLogger() xlog.Logger {
	level := xlog.LevelInfo
	if verbose {
		level = xlog.LevelDebug
	}
	return xlog.NewStdLogger(os.Stderr, level)
}

func runResave(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	prof, err := cfg.ResolveProfile()
	if err != nil {
		return err
	}
	files, auxiliary, err := config.LoadRenameList(cfg.RenameListPath)
	if err != nil {
		return err
	}

	log := newLogger()
	log.Infof("resaving %d file(s), updating references in %d file(s) under profile %s", len(files), len(auxiliary), prof.Name)

	if dryRun {
		for _, f := range files {
			log.Infof("would resave %s -> %s (delete_old=%v)", f.OldPath, f.NewPath, f.DeleteOld)
		}
		for _, p := range auxiliary {
			log.Infof("would update references in %s", p)
		}
		return nil
	}

	w := workers
	if w == 0 {
		w = cfg.Workers
	}
	d := &batch.Driver{
		GameRoot: cfg.GameRoot,
		Profile:  prof,
		Workers:  w,
		Log:      log,
		OnProgress: func() {
			log.Debugf("tick")
		},
	}

	result, err := d.Run(context.Background(), files, auxiliary)
	if err != nil {
		return err
	}

	for f, ferr := range result.ResaveErrors {
		log.Errorf("resave %s: %v", f.OldPath, ferr)
	}
	for p, ferr := range result.ReferenceErrors {
		log.Errorf("update references in %s: %v", p, ferr)
	}
	if len(result.ResaveErrors) > 0 || len(result.ReferenceErrors) > 0 {
		return fmt.Errorf("batch completed with %d resave and %d reference errors", len(result.ResaveErrors), len(result.ReferenceErrors))
	}
	log.Infof("batch completed successfully")
	return nil
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	files, auxiliary, err := config.LoadRenameList(cfg.RenameListPath)
	if err != nil {
		return err
	}

	targets := make(scan.Targets, len(files))
	for _, f := range files {
		targets[f.OldPath] = true
	}

	log := newLogger()
	for _, p := range append(append([]string{}, args...), auxiliary...) {
		full := cfg.GameRoot + string(os.PathSeparator) + p
		src, err := stream.OpenReadFile(full)
		if err != nil {
			log.Errorf("open %s: %v", p, err)
			continue
		}
		in, err := stream.OpenRead(src, nil)
		if err != nil {
			src.Close()
			log.Errorf("open read chain for %s: %v", p, err)
			continue
		}
		hit, err := scan.Scan(in, p, targets)
		in.Close()
		if err != nil {
			log.Errorf("scan %s: %v", p, err)
			continue
		}
		if hit {
			fmt.Println(p)
		}
	}
	return nil
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "seresave",
		Short: "Rewrites Serious Engine 2+ asset cross-references for renamed files",
		Long:  "seresave resaves Serious Engine 2+ resource files, rewriting cross-references to renamed assets across binary meta, text meta, NFO and Lua files.",
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "seresave.toml", "path to the seresave config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	resaveCmd := &cobra.Command{
		Use:   "resave",
		Short: "Runs the batch resave + reference-update driver",
		RunE:  runResave,
	}
	resaveCmd.Flags().IntVarP(&workers, "workers", "j", 0, "worker count (0 = the config file's workers, falling back to host parallelism)")
	resaveCmd.Flags().BoolVar(&dryRun, "dry-run", false, "print planned operations without writing anything")

	scanCmd := &cobra.Command{
		Use:   "scan [paths...]",
		Short: "Reports which files reference a rename-list's old paths, without resaving",
		RunE:  runScan,
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("seresave", buildVersion)
			if checkLatest {
				latest := highestProfileVersion()
				if semver.Compare(latest, buildVersion) > 0 {
					fmt.Printf("a newer profile format (%s) exists than this binary's own version (%s)\n", latest, buildVersion)
				} else {
					fmt.Println("up to date with the highest profile format version")
				}
			}
		},
	}
	versionCmd.Flags().BoolVar(&checkLatest, "check-latest", false, "compare against the highest game-profile format version")

	rootCmd.AddCommand(resaveCmd, scanCmd, versionCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
