// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package config

import (
	"github.com/BurntSushi/toml"
	"golang.org/x/xerrors"

	"github.com/saferwall/seresave/batch"
)

// renameListDocument is the on-disk shape of a RenameListPath file: the
// out-of-scope rename-rule dialog's output, consumed here rather than
// produced.
type renameListDocument struct {
	Resave    []resaveEntry    `toml:"resave"`
	Auxiliary []auxiliaryEntry `toml:"auxiliary"`
}

type resaveEntry struct {
	OldPath   string `toml:"old_path"`
	NewPath   string `toml:"new_path"`
	DeleteOld bool   `toml:"delete_old"`
}

type auxiliaryEntry struct {
	Path string `toml:"path"`
}

// LoadRenameList reads the rename list at path, returning the batch
// driver's two inputs: the ResaveFile list and the auxiliary path list.
func LoadRenameList(path string) ([]batch.ResaveFile, []string, error) {
	var doc renameListDocument
	if _, err := toml.DecodeFile(path, &doc); err != nil {
		return nil, nil, xerrors.Errorf("decode rename list %s: %w", path, err)
	}

	files := make([]batch.ResaveFile, 0, len(doc.Resave))
	for i, e := range doc.Resave {
		if e.OldPath == "" || e.NewPath == "" {
			return nil, nil, xerrors.Errorf("rename list %s: entry %d missing old_path/new_path", path, i)
		}
		files = append(files, batch.ResaveFile{
			OldPath:   e.OldPath,
			NewPath:   e.NewPath,
			DeleteOld: e.DeleteOld,
		})
	}

	auxiliary := make([]string, 0, len(doc.Auxiliary))
	for _, e := range doc.Auxiliary {
		if e.Path == "" {
			continue
		}
		auxiliary = append(auxiliary, e.Path)
	}

	return files, auxiliary, nil
}
