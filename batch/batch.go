// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

// Package batch is the parallel two-phase driver of spec §4.8: a resave
// phase over the rename list, then a reference-update phase over every
// other file that might reference a renamed path, each phase a worker pool
// bounded by host parallelism, per-file errors isolated into a concurrent
// map rather than aborting the run. It plays the role for seresave that
// distr1/distri's internal/batch.Ctx.Build plays for package builds: one
// errgroup per phase, one goroutine per unit of work, a semaphore bounding
// concurrency, golang.org/x/xerrors wrapping at every task boundary.
package batch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/google/renameio"
	"golang.org/x/sync/errgroup"
	"golang.org/x/xerrors"

	xerr "github.com/saferwall/seresave/internal/xerrors"
	"github.com/saferwall/seresave/internal/xlog"
	"github.com/saferwall/seresave/profile"
	"github.com/saferwall/seresave/resave"
	"github.com/saferwall/seresave/stream"
)

// ResaveFile is the triple spec §3 defines: OldPath and NewPath are
// game-root-relative, forward-slash separated. Immutable once a batch
// starts.
type ResaveFile struct {
	OldPath   string
	NewPath   string
	DeleteOld bool
}

// Result collects the two per-file error tables spec §7 calls for, plus
// nothing else: no error here aborts the batch, only explicit cancellation
// does.
type Result struct {
	ResaveErrors    map[ResaveFile]error
	ReferenceErrors map[string]error
}

// Driver runs the batch described in spec §4.8 against one game root under
// one profile.
type Driver struct {
	// GameRoot is the directory every ResaveFile/auxiliary path is
	// resolved relative to.
	GameRoot string
	// Profile selects the write-side stream wrapping (signed/wrecked).
	Profile profile.Profile
	// Workers bounds intra-phase parallelism; 0 means runtime.NumCPU().
	Workers int
	// Log receives per-file failures; nil means xlog.Default.
	Log xlog.Logger
	// OnProgress, if set, is called once per completed unit of work in
	// either phase, success or failure.
	OnProgress func()
}

func (d *Driver) logger() xlog.Logger {
	if d.Log != nil {
		return d.Log
	}
	return xlog.Default
}

func (d *Driver) workers() int {
	if d.Workers > 0 {
		return d.Workers
	}
	return runtime.NumCPU()
}

func (d *Driver) tick() {
	if d.OnProgress != nil {
		d.OnProgress()
	}
}

// ioErr tags err as ErrIOFailure: an underlying OS/filesystem error surfaced
// at a task boundary, as opposed to a malformed-input or cancellation
// failure from further down the resave chain.
func ioErr(err error) error {
	return xerrors.Errorf("%v: %w", err, xerr.ErrIOFailure)
}

// Run executes the resave phase over files, builds the rename map from
// them, then the reference-update phase over auxiliary paths, then applies
// DeleteOld. Phases execute sequentially; no phase-2 task starts before
// every phase-1 task has finished or the phase was cancelled.
func (d *Driver) Run(ctx context.Context, files []ResaveFile, auxiliary []string) (*Result, error) {
	renameMap := make(resave.RenameMap, len(files))
	for _, f := range files {
		renameMap[f.OldPath] = f.NewPath
	}

	result := &Result{
		ResaveErrors:    make(map[ResaveFile]error),
		ReferenceErrors: make(map[string]error),
	}
	var mu sync.Mutex

	resaveErr := d.runPhase(ctx, len(files), func(taskCtx context.Context, i int) error {
		f := files[i]
		err := d.resaveOne(taskCtx, f, renameMap)
		defer d.tick()
		if err == nil {
			return nil
		}
		if errors.Is(err, xerr.ErrCancelled) {
			return err
		}
		d.logger().Errorf("resave %s: %v", f.OldPath, err)
		mu.Lock()
		result.ResaveErrors[f] = err
		mu.Unlock()
		return nil
	})
	if resaveErr != nil {
		return result, xerrors.Errorf("resave phase: %w", resaveErr)
	}

	refErr := d.runPhase(ctx, len(auxiliary), func(taskCtx context.Context, i int) error {
		p := auxiliary[i]
		err := d.updateReferenceOne(taskCtx, p, renameMap)
		defer d.tick()
		if err == nil {
			return nil
		}
		if errors.Is(err, xerr.ErrCancelled) {
			return err
		}
		d.logger().Errorf("update references in %s: %v", p, err)
		mu.Lock()
		result.ReferenceErrors[p] = err
		mu.Unlock()
		return nil
	})
	if refErr != nil {
		return result, xerrors.Errorf("reference-update phase: %w", refErr)
	}

	for _, f := range files {
		if !f.DeleteOld {
			continue
		}
		if _, failed := result.ResaveErrors[f]; failed {
			continue
		}
		// Deletion failures of source files are swallowed; this is
		// intentional (spec §7).
		_ = os.Remove(filepath.Join(d.GameRoot, f.OldPath))
	}

	return result, nil
}

// runPhase fans task out over n units of work, bounded to d.workers()
// concurrently in flight. task returning a non-nil error (reserved for
// cancellation) stops the phase; ordinary per-file failures are recorded
// by the caller and must return nil so the rest of the phase continues.
func (d *Driver) runPhase(ctx context.Context, n int, task func(ctx context.Context, i int) error) error {
	if n == 0 {
		return nil
	}
	eg, groupCtx := errgroup.WithContext(ctx)
	sem := make(chan struct{}, d.workers())
	for i := 0; i < n; i++ {
		i := i
		sem <- struct{}{}
		eg.Go(func() error {
			defer func() { <-sem }()
			return task(groupCtx, i)
		})
	}
	return eg.Wait()
}

// resaveOne is one phase-1 unit of work: open the source through the
// read-side factory chain, create the destination through the
// profile-driven write chain, invoke the resaver with newAssetFN set to
// the file's own new path (it is the renamed asset). On any failure the
// partial destination is deleted.
func (d *Driver) resaveOne(ctx context.Context, f ResaveFile, renameMap resave.RenameMap) error {
	if err := ctx.Err(); err != nil {
		return xerrors.Errorf("%s: %w", f.OldPath, xerr.ErrCancelled)
	}

	srcPath := filepath.Join(d.GameRoot, f.OldPath)
	dstPath := filepath.Join(d.GameRoot, f.NewPath)

	src, err := stream.OpenReadFile(srcPath)
	if err != nil {
		return xerrors.Errorf("open %s: %w", f.OldPath, ioErr(err))
	}
	defer src.Close()

	in, err := stream.OpenRead(src, nil)
	if err != nil {
		return xerrors.Errorf("open read chain for %s: %w", f.OldPath, err)
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dstPath), 0o755); err != nil {
		return xerrors.Errorf("mkdir for %s: %w", f.NewPath, ioErr(err))
	}
	dstFile, err := os.Create(dstPath)
	if err != nil {
		return xerrors.Errorf("create %s: %w", f.NewPath, ioErr(err))
	}

	out, err := stream.OpenWrite(dstFile, d.Profile, f.NewPath)
	if err != nil {
		dstFile.Close()
		os.Remove(dstPath)
		return xerrors.Errorf("open write chain for %s: %w", f.NewPath, err)
	}

	newPath := f.NewPath
	resaveErr := resave.Resave(in, out, f.OldPath, renameMap, &newPath)
	if closeErr := out.Close(); resaveErr == nil {
		resaveErr = closeErr
	}
	if closeErr := dstFile.Close(); resaveErr == nil {
		resaveErr = closeErr
	}
	if resaveErr != nil {
		os.Remove(dstPath)
		return xerrors.Errorf("resave %s: %w", f.OldPath, resaveErr)
	}
	return nil
}

// updateReferenceOne is one phase-2 unit of work: resave relPath into a
// sibling temp file, then atomically replace the original. Reference
// updates never pass newAssetFN - the file isn't itself being renamed.
// Per spec §5, the temp file is cleaned up on an ordinary per-file
// failure but left on disk if cancellation interrupted the task.
func (d *Driver) updateReferenceOne(ctx context.Context, relPath string, renameMap resave.RenameMap) error {
	if err := ctx.Err(); err != nil {
		return xerrors.Errorf("%s: %w", relPath, xerr.ErrCancelled)
	}

	fullPath := filepath.Join(d.GameRoot, relPath)

	src, err := stream.OpenReadFile(fullPath)
	if err != nil {
		return xerrors.Errorf("open %s: %w", relPath, ioErr(err))
	}
	defer src.Close()

	in, err := stream.OpenRead(src, nil)
	if err != nil {
		return xerrors.Errorf("open read chain for %s: %w", relPath, err)
	}
	defer in.Close()

	tmp, err := renameio.TempFile("", fullPath)
	if err != nil {
		return xerrors.Errorf("create temp file for %s: %w", relPath, ioErr(err))
	}

	out, err := stream.OpenWrite(tmp, d.Profile, relPath)
	if err != nil {
		tmp.Cleanup()
		return xerrors.Errorf("open write chain for %s: %w", relPath, err)
	}

	resaveErr := resave.Resave(in, out, relPath, renameMap, nil)
	if closeErr := out.Close(); resaveErr == nil {
		resaveErr = closeErr
	}

	if resaveErr != nil {
		if ctx.Err() != nil {
			return xerrors.Errorf("%s: %w", relPath, xerr.ErrCancelled)
		}
		tmp.Cleanup()
		return xerrors.Errorf("resave %s: %w", relPath, resaveErr)
	}

	if err := tmp.CloseAtomicallyReplace(); err != nil {
		tmp.Cleanup()
		return xerrors.Errorf("replace %s: %w", relPath, ioErr(err))
	}
	return nil
}
