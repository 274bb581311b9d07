// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import "errors"

var (
	errInvalidWitnessFlag  = errors.New("wire: witness marker byte present without witness flag 0x01")
	errTooManyTxIns        = errors.New("wire: transaction input count exceeds maximum allowed for block weight")
	errTooManyTxOuts       = errors.New("wire: transaction output count exceeds maximum allowed for block weight")
	errTooManyWitnessItems = errors.New("wire: witness stack item count exceeds maximum allowed")
	errTooManyTransactions = errors.New("wire: block transaction count exceeds maximum allowed for block weight")
)
