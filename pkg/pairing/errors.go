package pairing

import (
	"errors"

	"github.com/streampair/streampair-go/pkg/otp"
)

// Rejection errors, returned synchronously by StartPairing.
var (
	ErrNoHost            = errors.New("no target host")
	ErrUnknownHost       = errors.New("unknown host")
	ErrOTPUnsupported    = errors.New("host does not support OTP pairing")
	ErrInvalidPIN        = otp.ErrInvalidPIN
	ErrAlreadyInProgress = errors.New("pairing already in progress")
	ErrClosed            = errors.New("session closed")
	ErrNoIdentity        = errors.New("local identity unavailable")
)

// Failure errors, carried by EventFailed.
var (
	ErrWrongSecret      = errors.New("incorrect PIN or passphrase")
	ErrOTPUnavailable   = errors.New("OTP not active or expired")
	ErrMalformedRequest = errors.New("host rejected request")
	ErrNoResponse       = errors.New("no response from host")
	ErrParse            = errors.New("unexpected response from host")
	ErrTimeout          = errors.New("pairing timed out")
	ErrTransport        = errors.New("transport failure")
	ErrProtocol         = errors.New("host returned error status")
	ErrPersist          = errors.New("failed to record paired host")
)

// ErrNotInProgress is returned by Cancel when no attempt is active.
var ErrNotInProgress = errors.New("no pairing in progress")
