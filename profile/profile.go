// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

// Package profile holds the five game profiles (spec §6) as process
// constants, mirroring the way saferwall/pe treats Options as a plain
// struct populated once at New()/NewBytes() rather than something
// discovered or negotiated at runtime.
package profile

import (
	"encoding/base64"
	"path/filepath"
	"strings"

	"golang.org/x/xerrors"
)

// Name identifies one of the five selectable game profiles.
type Name string

const (
	SS2    Name = "SS2"
	SSHD   Name = "SSHD"
	SS3    Name = "SS3"
	Fusion Name = "Fusion"
	SS4    Name = "SS4"
)

// SignedStreamSpec describes the signed-stream parameters a profile uses on
// write: the header version and the DER-encoded RSA private key to sign
// with. A nil *SignedStreamSpec on a Profile means that profile never
// signs (SS2).
type SignedStreamSpec struct {
	Version      int32
	PrivateKeyDER []byte
}

// Profile is one row of the spec §6 game-profile table.
type Profile struct {
	Name       Name
	Signed     *SignedStreamSpec
	UseWrecker bool
}

func mustKey(b64 string) []byte {
	key, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		panic(xerrors.Errorf("decode embedded signing key: %w", err))
	}
	return key
}

// registry is the process-constant table of every selectable profile.
var registry = map[Name]Profile{
	SS2: {
		Name:       SS2,
		Signed:     nil,
		UseWrecker: false,
	},
	SSHD: {
		Name: SSHD,
		Signed: &SignedStreamSpec{
			Version:       4,
			PrivateKeyDER: mustKey(keySSHDBase64),
		},
		UseWrecker: false,
	},
	SS3: {
		Name: SS3,
		Signed: &SignedStreamSpec{
			Version:       5,
			PrivateKeyDER: mustKey(keySS3Base64),
		},
		UseWrecker: true,
	},
	Fusion: {
		Name: Fusion,
		Signed: &SignedStreamSpec{
			Version:       5,
			PrivateKeyDER: mustKey(keyFusionBase64),
		},
		UseWrecker: true,
	},
	SS4: {
		Name: SS4,
		Signed: &SignedStreamSpec{
			Version:       5,
			PrivateKeyDER: mustKey(keySS4Base64),
		},
		UseWrecker: true,
	},
}

// All returns the profile names in table order, for CLI flag validation and
// help text.
func All() []Name {
	return []Name{SS2, SSHD, SS3, Fusion, SS4}
}

// Get looks up a profile by name.
func Get(name Name) (Profile, error) {
	p, ok := registry[name]
	if !ok {
		return Profile{}, xerrors.Errorf("unknown game profile %q", string(name))
	}
	return p, nil
}

// bypassSigningExts are file extensions that never get a signed-stream
// wrapper regardless of profile, per spec §3's StreamProfile rule.
var bypassSigningExts = map[string]bool{
	".wav": true,
	".ogg": true,
}

// wreckerExt is the only extension that gets a wrecked-stream wrapper.
const wreckerExt = ".wld"

// WrapsFor reports, for a given path under this profile, whether the
// write-side stream factory should layer in a signed-stream wrapper and/or
// a wrecked-stream wrapper.
func (p Profile) WrapsFor(path string) (signStream, wreck bool) {
	ext := strings.ToLower(filepath.Ext(path))
	signStream = p.Signed != nil && !bypassSigningExts[ext]
	wreck = p.UseWrecker && ext == wreckerExt
	return signStream, wreck
}
