package dnp3

import (
	"errors"
	"fmt"
)

var (
	// ErrReadOverflow reports that fewer bytes remain in the fragment than
	// the object header's count and item size require.
	ErrReadOverflow = errors.New("read overflow: insufficient bytes remaining in fragment")

	// ErrZeroLengthOctetData reports an octet-string object that used
	// variation 0 where real payload is required. Variation 0 means
	// "unspecified length" and has no data encoding.
	ErrZeroLengthOctetData = errors.New("octet-string object with variation 0 cannot carry data")

	// ErrInvalidRange reports a start/stop pair with stop preceding start.
	ErrInvalidRange = errors.New("invalid range: stop precedes start")
)

// InvalidQualifierError reports a group/variation that cannot be decoded
// under start/stop range addressing, including combinations absent from the
// object library altogether.
type InvalidQualifierError struct {
	Group     uint8
	Variation uint8
}

func (e *InvalidQualifierError) Error() string {
	return fmt.Sprintf("invalid qualifier for g%dv%d", e.Group, e.Variation)
}

func IsInvalidQualifier(err error) bool {
	var iq *InvalidQualifierError
	return errors.As(err, &iq)
}

// UnknownQualifierError reports a qualifier code the object-header walk does
// not support.
type UnknownQualifierError struct {
	Code uint8
}

func (e *UnknownQualifierError) Error() string {
	return fmt.Sprintf("unknown or unsupported qualifier code 0x%02X", e.Code)
}

func IsUnknownQualifier(err error) bool {
	var uq *UnknownQualifierError
	return errors.As(err, &uq)
}

func IsReadOverflow(err error) bool {
	return errors.Is(err, ErrReadOverflow)
}
