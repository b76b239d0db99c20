package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates that the operation conflicts with the current state of the resource.
var ErrConflict = errors.New("operation conflicts with current state")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// ErrImmutableState indicates a mutation was attempted on an instrument in a terminal status.
var ErrImmutableState = errors.New("instrument is in a terminal status and cannot be modified")

// ErrInvalidTransition indicates a requested action is not permitted from the current status.
var ErrInvalidTransition = errors.New("transition not permitted from current status")

// ErrImmutableEntry indicates an edit was attempted on a reversed payment entry.
var ErrImmutableEntry = errors.New("payment entry is reversed and cannot be edited")

// ErrOverpayment indicates a payment would drive the pending balance negative.
var ErrOverpayment = errors.New("payment exceeds pending balance")

// ErrAlreadyReversed indicates a reversal was attempted on an entry that is already reversed.
var ErrAlreadyReversed = errors.New("payment entry is already reversed")
