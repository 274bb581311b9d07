// Copyright (c) 2013-2022 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import "go.uber.org/zap"

// log is the package-level logger, a silent no-op until a caller installs
// one with UseLogger. Validation failures are returned as errors to the
// caller regardless of logging; log only records operational detail a
// caller running a node would want in its own log stream.
var log = zap.NewNop()

// UseLogger configures blockchain's package-level logger. Callers embedding
// this package in a larger application typically call this once at
// startup with their own configured *zap.Logger.
func UseLogger(logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	log = logger
}
