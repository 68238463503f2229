// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

// Package xrand is the one seed point every "freshly randomized" value in
// seresave goes through: signed-stream nonces, regenerated asset UIDs.
// None of it is cryptographic in purpose, but seeding from crypto/rand
// once at process start avoids the fixed, predictable sequence plain
// math/rand starts with otherwise.
package xrand

import (
	"crypto/rand"
	"math/big"
	mrand "math/rand"
	"sync"
)

var (
	mu  sync.Mutex
	src = mrand.New(mrand.NewSource(seed()))
)

func seed() int64 {
	n, err := rand.Int(rand.Reader, big.NewInt(1<<62))
	if err != nil {
		return 1
	}
	return n.Int64()
}

// Uint32 returns a uniformly distributed uint32.
func Uint32() uint32 {
	mu.Lock()
	defer mu.Unlock()
	return src.Uint32()
}
