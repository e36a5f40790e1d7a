package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrArithmetic is returned on division by zero or when a token amount would go negative or overflow
	ErrArithmetic = errors.New("arithmetic error")

	// ErrValidation is returned when input parameters are inconsistent
	ErrValidation = errors.New("validation error")

	// ErrState is returned when an operation is not allowed in the current proposal or grant state
	ErrState = errors.New("invalid state")

	// ErrNotFound is returned when an allocation, proposal or grant is unknown
	ErrNotFound = errors.New("not found")

	// ErrAlreadyVoted is returned when a voter casts a second vote on the same proposal.
	// It matches ErrState with errors.Is.
	ErrAlreadyVoted = fmt.Errorf("%w: voter already voted", ErrState)
)
