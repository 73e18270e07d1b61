// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

import (
	"errors"
)

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type ConcurrencyError GenericError
type ConsistencyError GenericError
type ExistsError GenericError
type ExternalError GenericError
type FatalError GenericError
type InvalidError GenericError
type NotFoundError GenericError
type ProcessError GenericError

// common errors - keep in alphabetic order
var (
	AlreadyInitialised           = ProcessError("already initialised")
	AnonymousPrincipal           = InvalidError("anonymous principal cannot join the pool")
	BlockCyclesNotAligned        = InvalidError("block cycles are not a multiple of 1000000")
	BlockCyclesTooSmall          = InvalidError("block cycles are too small")
	BurnMismatch                 = ConsistencyError("cycles burned by miner differ from committed cycles")
	CertificateFileAlreadyExists = ExistsError("certificate file already exists")
	CorruptRecord                = ProcessError("corrupt record")
	CyclesOverflow               = ProcessError("cycles overflow 128 bits")
	DatabaseIsNotSet             = ProcessError("database is not set")
	DatabaseVersionTooNew        = ProcessError("database version is newer than this program")
	DepositAlreadyUsed           = InvalidError("deposit block index already used")
	DivisionByZero               = ProcessError("division by zero")
	ExternalCallFailed           = ExternalError("external call failed")
	GuardAlreadyHeld             = ConcurrencyError("concurrency error: operation already in progress")
	InsufficientCycles           = InvalidError("insufficient cycles")
	InvalidAccountIdentifier     = InvalidError("invalid account identifier")
	InvalidChain                 = InvalidError("invalid chain")
	InvalidConfiguration         = InvalidError("configuration must return a table")
	InvalidCount                 = InvalidError("invalid count")
	InvalidCursor                = InvalidError("invalid cursor")
	InvalidCycles                = InvalidError("invalid cycles")
	InvalidIpAddress             = InvalidError("invalid IP address")
	InvalidJoinMemo              = InvalidError("invalid memo")
	InvalidJoinOperation         = InvalidError("deposit is not a transfer")
	InvalidJoinRecipient         = InvalidError("deposit recipient is not the pool top up account")
	InvalidJoinSender            = InvalidError("deposit sender is not the caller")
	InvalidPrincipal             = InvalidError("invalid principal")
	InvalidPrincipalChecksum     = InvalidError("invalid principal checksum")
	InvalidPrivateKeyFile        = InvalidError("invalid private key file")
	InvalidPublicKeyFile         = InvalidError("invalid public key file")
	InvalidReply                 = ExternalError("invalid reply from bridge")
	InvalidRunningState          = InvalidError("invalid running state")
	InvalidTask                  = InvalidError("invalid task type")
	JoinAmountTooSmall           = InvalidError("deposit amount is too small")
	KeyFileAlreadyExists         = ExistsError("key file already exists")
	LedgerBlockNotFound          = NotFoundError("ledger block not found")
	MinerAlreadySet              = ExistsError("miner already set")
	MinerNotSet                  = NotFoundError("miner not set")
	MissingParameters            = InvalidError("missing parameters")
	NotAController               = InvalidError("caller is not a pool controller")
	NotAMember                   = InvalidError("caller is no pool member")
	NotConnected                 = ProcessError("not connected")
	NothingToCommit              = InvalidError("no participants to commit")
	NotInitialised               = ProcessError("not initialised")
	PayoutAlreadyConfirmed       = ExistsError("payout already confirmed")
	PoolAlreadyRunning           = InvalidError("pool is already running")
	PoolBalanceTooLow            = FatalError("pool balance would fall below its floor")
	PoolNotReady                 = InvalidError("pool is not ready; please try again later")
	PoolNotRunning               = InvalidError("pool is not running")
	RateLimiting                 = InvalidError("rate limiting")
	RewardNotFound               = NotFoundError("reward not found")
	RoundMissed                  = ExternalError("mining round window missed")
	TransactionAlreadyClosed     = ProcessError("transaction already closed")
)

// the error interface methods
func (e GenericError) Error() string     { return string(e) }
func (e ConcurrencyError) Error() string { return string(e) }
func (e ConsistencyError) Error() string { return string(e) }
func (e ExistsError) Error() string      { return string(e) }
func (e ExternalError) Error() string    { return string(e) }
func (e FatalError) Error() string       { return string(e) }
func (e InvalidError) Error() string     { return string(e) }
func (e NotFoundError) Error() string    { return string(e) }
func (e ProcessError) Error() string     { return string(e) }

// determine the class of an error
func IsErrConcurrency(e error) bool { var t ConcurrencyError; return errors.As(e, &t) }
func IsErrConsistency(e error) bool { var t ConsistencyError; return errors.As(e, &t) }
func IsErrExists(e error) bool      { var t ExistsError; return errors.As(e, &t) }
func IsErrExternal(e error) bool    { var t ExternalError; return errors.As(e, &t) }
func IsErrFatal(e error) bool       { var t FatalError; return errors.As(e, &t) }
func IsErrInvalid(e error) bool     { var t InvalidError; return errors.As(e, &t) }
func IsErrNotFound(e error) bool    { var t NotFoundError; return errors.As(e, &t) }
func IsErrProcess(e error) bool     { var t ProcessError; return errors.As(e, &t) }

// classified - an underlying cause tagged with one of the classes above
type classified struct {
	class   error
	context string
	cause   error
}

func (e *classified) Error() string {
	if nil == e.cause {
		return e.context + ": " + e.class.Error()
	}
	return e.context + ": " + e.cause.Error()
}

func (e *classified) Unwrap() []error {
	if nil == e.cause {
		return []error{e.class}
	}
	return []error{e.class, e.cause}
}

// External - tag a collaborator failure as transient
//
// errors that already carry a class keep it
func External(context string, err error) error {
	if nil == err {
		return nil
	}
	if hasClass(err) {
		return &classified{class: err, context: context}
	}
	return &classified{class: ExternalCallFailed, context: context, cause: err}
}

// Wrap - attach a context string to a classed error
func Wrap(class error, context string) error {
	return &classified{class: class, context: context}
}

func hasClass(err error) bool {
	return IsErrConcurrency(err) ||
		IsErrConsistency(err) ||
		IsErrExists(err) ||
		IsErrExternal(err) ||
		IsErrFatal(err) ||
		IsErrInvalid(err) ||
		IsErrNotFound(err) ||
		IsErrProcess(err)
}
