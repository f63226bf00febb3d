package errs

import "errors"

// Sentinel errors shared across command/query layers
var (
	// Lot errors
	ErrLotNotFound     = errors.New("lot not found")
	ErrLotNotOwned     = errors.New("lot does not belong to actor")
	ErrInvalidSchedule = errors.New("invalid opening-hours schedule")
	ErrLotNotActive    = errors.New("lot is not active")

	// Space / space-type errors
	ErrSpaceNotFound       = errors.New("space not found")
	ErrSpaceOccupied       = errors.New("space has an open occupation")
	ErrSpaceSubscribed     = errors.New("space has an active subscription")
	ErrSpaceTypeNotFound   = errors.New("space type not found")
	ErrSpaceTypeInUse      = errors.New("space type referenced by rates or spaces")
	ErrDuplicateSpaceLabel = errors.New("duplicate space label")

	// Rate errors
	ErrRateNotFound  = errors.New("rate not found")
	ErrDuplicateRate = errors.New("rate combination already exists")

	// Subscription errors
	ErrSubscriptionNotFound = errors.New("subscription not found")
	ErrAlreadyFinalized     = errors.New("subscription already finalized")
	ErrUnpaidBills          = errors.New("subscription has unpaid bills")
	ErrBillNotFound         = errors.New("bill not found")
	ErrBillAlreadyPaid      = errors.New("bill already paid")

	// Shift errors
	ErrNoActiveShift    = errors.New("no active shift for attendant")
	ErrShiftWrongLot    = errors.New("active shift belongs to a different lot")
	ErrShiftAlreadyOpen = errors.New("attendant already has an open shift")
	ErrShiftNotFound    = errors.New("shift not found")

	// Occupation errors
	ErrOccupationNotFound = errors.New("occupation not found")
	ErrOccupationClosed   = errors.New("occupation already closed")

	// User / invitation errors
	ErrUserNotFound       = errors.New("user not found")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvitationNotFound = errors.New("invitation not found")

	// Validation / operation errors
	ErrDomainValidation        = errors.New("domain validation error")
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
