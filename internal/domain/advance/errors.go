package advance

import "errors"

var (
	ErrAdvanceNotFound         = errors.New("advance not found")
	ErrDeductionExceedsBalance = errors.New("deduction amount exceeds the remaining advance balance")
	ErrAdvanceAlreadySettled   = errors.New("advance has no remaining balance to deduct from")
)
