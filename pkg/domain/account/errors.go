package account

import "errors"

var (
	// ErrAccountNotFound is returned when an account cannot be found.
	ErrAccountNotFound = errors.New("account not found")

	// ErrAccountInactive is returned when a mutating operation targets a
	// deactivated account.
	ErrAccountInactive = errors.New("account is deactivated")

	// ErrDuplicateActiveAccount is returned when the owner already holds an
	// active account of the same kind.
	ErrDuplicateActiveAccount = errors.New("owner already has an active account of this kind")

	// ErrAlreadyInactive is returned when deactivating an account that is
	// already inactive.
	ErrAlreadyInactive = errors.New("account is already deactivated")

	// ErrInsufficientBalance is returned when a withdrawal exceeds the current
	// balance.
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrDailyLimitExceeded is returned when a withdrawal would push the sum of
	// today's withdrawals past the account's daily limit.
	ErrDailyLimitExceeded = errors.New("daily withdrawal limit exceeded")

	// ErrAmountMustBePositive is returned when an operation amount is zero or
	// negative.
	ErrAmountMustBePositive = errors.New("operation amount must be positive")

	// ErrAmountTooLarge is returned when an operation amount exceeds the
	// configured per-operation maximum.
	ErrAmountTooLarge = errors.New("operation amount exceeds the maximum allowed")

	// ErrUnavailable is returned when the atomic commit kept failing on
	// transient storage conflicts after the bounded retries were exhausted.
	ErrUnavailable = errors.New("operation temporarily unavailable, try again")
)
