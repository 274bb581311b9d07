// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import (
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/thoughtledger/consensus/chaincfg"
	"github.com/thoughtledger/consensus/thtec"
)

// Address is an interface type for any type of destination a transaction
// output may spend to.  This package implements three such address types:
// AddressPubKeyHash, AddressScriptHash, and AddressPubKey.
//
// Human-readable text encoding (Base58Check, Bech32/Bech32m) is deliberately
// not implemented here: it is an I/O-layer concern orthogonal to consensus
// validation, so EncodeAddress returns a simple hex-prefixed identifier
// rather than the network's canonical wire format.
type Address interface {
	// String returns the string encoding of the transaction output
	// destination.
	String() string

	// EncodeAddress returns the string encoding of the payment address
	// associated with the Address value.
	EncodeAddress() string

	// ScriptAddress returns the raw bytes of the address to be used
	// when inserting the address into a txout's script.
	ScriptAddress() []byte

	// IsForNet returns whether the address is associated with the
	// passed bitcoin network.
	IsForNet(*chaincfg.Params) bool
}

// AddressPubKeyHash is an Address for a pay-to-pubkey-hash (P2PKH)
// transaction.
type AddressPubKeyHash struct {
	netID byte
	hash  [20]byte
}

// NewAddressPubKeyHash returns a new AddressPubKeyHash. pkHash must be 20
// bytes.
func NewAddressPubKeyHash(pkHash []byte, net *chaincfg.Params) (*AddressPubKeyHash, error) {
	return newAddressPubKeyHash(pkHash, net.PubKeyHashAddrID)
}

func newAddressPubKeyHash(pkHash []byte, netID byte) (*AddressPubKeyHash, error) {
	if len(pkHash) != 20 {
		return nil, errors.New("pkHash must be 20 bytes")
	}
	addr := &AddressPubKeyHash{netID: netID}
	copy(addr.hash[:], pkHash)
	return addr, nil
}

// EncodeAddress returns the string encoding of a pay-to-pubkey-hash
// address.
func (a *AddressPubKeyHash) EncodeAddress() string {
	return fmt.Sprintf("p2pkh:%02x:%s", a.netID, hex.EncodeToString(a.hash[:]))
}

// ScriptAddress returns the bytes to be included in a txout script to pay
// to this address.
func (a *AddressPubKeyHash) ScriptAddress() []byte {
	return a.hash[:]
}

// IsForNet returns whether the pay-to-pubkey-hash address is associated
// with the passed network.
func (a *AddressPubKeyHash) IsForNet(net *chaincfg.Params) bool {
	return a.netID == net.PubKeyHashAddrID
}

// String returns a human-readable string for the pay-to-pubkey-hash
// address.
func (a *AddressPubKeyHash) String() string {
	return a.EncodeAddress()
}

// Hash160 returns the underlying array of the pubkey hash.
func (a *AddressPubKeyHash) Hash160() *[20]byte {
	return &a.hash
}

// AddressScriptHash is an Address for a pay-to-script-hash (P2SH)
// transaction.
type AddressScriptHash struct {
	netID byte
	hash  [20]byte
}

// NewAddressScriptHash returns a new AddressScriptHash computed from the
// hash160 of the given serialized redeem script.
func NewAddressScriptHash(serializedScript []byte, net *chaincfg.Params) (*AddressScriptHash, error) {
	scriptHash := Hash160(serializedScript)
	return newAddressScriptHashFromHash(scriptHash, net.ScriptHashAddrID)
}

// NewAddressScriptHashFromHash returns a new AddressScriptHash. scriptHash
// must be the 20-byte hash160 of the redeem script.
func NewAddressScriptHashFromHash(scriptHash []byte, net *chaincfg.Params) (*AddressScriptHash, error) {
	return newAddressScriptHashFromHash(scriptHash, net.ScriptHashAddrID)
}

func newAddressScriptHashFromHash(scriptHash []byte, netID byte) (*AddressScriptHash, error) {
	if len(scriptHash) != 20 {
		return nil, errors.New("scriptHash must be 20 bytes")
	}
	addr := &AddressScriptHash{netID: netID}
	copy(addr.hash[:], scriptHash)
	return addr, nil
}

// EncodeAddress returns the string encoding of a pay-to-script-hash
// address.
func (a *AddressScriptHash) EncodeAddress() string {
	return fmt.Sprintf("p2sh:%02x:%s", a.netID, hex.EncodeToString(a.hash[:]))
}

// ScriptAddress returns the bytes to be included in a txout script to pay
// to this address.
func (a *AddressScriptHash) ScriptAddress() []byte {
	return a.hash[:]
}

// IsForNet returns whether the pay-to-script-hash address is associated
// with the passed network.
func (a *AddressScriptHash) IsForNet(net *chaincfg.Params) bool {
	return a.netID == net.ScriptHashAddrID
}

// String returns a human-readable string for the pay-to-script-hash
// address.
func (a *AddressScriptHash) String() string {
	return a.EncodeAddress()
}

// Hash160 returns the underlying array of the script hash.
func (a *AddressScriptHash) Hash160() *[20]byte {
	return &a.hash
}

// PubKeyFormat describes what format to use for a pay-to-pubkey address.
type PubKeyFormat int

const (
	// PKFUncompressed indicates the pay-to-pubkey address format is an
	// uncompressed public key.
	PKFUncompressed PubKeyFormat = iota

	// PKFCompressed indicates the pay-to-pubkey address format is a
	// compressed public key.
	PKFCompressed
)

// AddressPubKey is an Address for a pay-to-pubkey transaction.
type AddressPubKey struct {
	netID        byte
	pubKeyFormat PubKeyFormat
	pubKey       *thtec.PublicKey
}

// NewAddressPubKey returns a new AddressPubKey which represents a
// pay-to-pubkey address, parsed from the given serialized public key.
func NewAddressPubKey(serializedPubKey []byte, net *chaincfg.Params) (*AddressPubKey, error) {
	pubKey, err := thtec.ParsePubKey(serializedPubKey)
	if err != nil {
		return nil, err
	}

	pkFormat := PKFUncompressed
	if len(serializedPubKey) == 33 {
		pkFormat = PKFCompressed
	}

	return &AddressPubKey{
		netID:        net.PubKeyHashAddrID,
		pubKeyFormat: pkFormat,
		pubKey:       pubKey,
	}, nil
}

// serialize returns the serialization of the public key according to the
// format associated with the address.
func (a *AddressPubKey) serialize() []byte {
	switch a.pubKeyFormat {
	case PKFUncompressed:
		return a.pubKey.SerializeUncompressed()
	default:
		return a.pubKey.SerializeCompressed()
	}
}

// EncodeAddress returns the string encoding of the public key as a
// pay-to-pubkey-hash address since that's the standard way to encode a
// public-key-based address.
func (a *AddressPubKey) EncodeAddress() string {
	addr, err := newAddressPubKeyHash(Hash160(a.serialize()), a.netID)
	if err != nil {
		return ""
	}
	return addr.EncodeAddress()
}

// ScriptAddress returns the bytes to be included in a txout script to pay
// to this address, which for AddressPubKey is simply the serialized public
// key.
func (a *AddressPubKey) ScriptAddress() []byte {
	return a.serialize()
}

// IsForNet returns whether the pay-to-pubkey address is associated with
// the passed network.
func (a *AddressPubKey) IsForNet(net *chaincfg.Params) bool {
	return a.netID == net.PubKeyHashAddrID
}

// String returns the hex-encoded serialized public key.
func (a *AddressPubKey) String() string {
	return hex.EncodeToString(a.serialize())
}

// PubKey returns the underlying public key for the address.
func (a *AddressPubKey) PubKey() *thtec.PublicKey {
	return a.pubKey
}

// AddressPubKeyHash returns the pay-to-pubkey-hash address converted from
// the pay-to-pubkey address.
func (a *AddressPubKey) AddressPubKeyHash() *AddressPubKeyHash {
	addr, _ := newAddressPubKeyHash(Hash160(a.serialize()), a.netID)
	return addr
}
