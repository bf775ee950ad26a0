package wire

import (
	"encoding/binary"

	"github.com/cborstream/cborstream/cborerr"
)

// HeaderLen returns the total byte length (initial byte + argument) of a
// header whose additional info is addInfo, or an error if addInfo names
// a form this subset does not support (reserved 28-30, or indefinite
// length 31).
func HeaderLen(addInfo uint8) (int, error) {
	switch {
	case addInfo <= AddInfoDirect:
		return 1, nil
	case addInfo == AddInfoUint8:
		return 2, nil
	case addInfo == AddInfoUint16:
		return 3, nil
	case addInfo == AddInfoUint32:
		return 5, nil
	case addInfo == AddInfoUint64:
		return 9, nil
	case addInfo == AddInfoIndefinite:
		return 0, cborerr.UnsupportedFeatureError{Feature: "indefinite-length item"}
	default:
		return 0, cborerr.ErrMalformedArgument
	}
}

// DecodeArgument reads the initial byte and its argument from hdr, which
// must already contain at least as many bytes as HeaderLen reports for
// its additional info (callers are expected to have peeked enough from
// the chunk rope first). It returns the major type, the argument value,
// and the total header length consumed.
func DecodeArgument(hdr []byte) (major uint8, addInfo uint8, arg uint64, headerLen int, err error) {
	if len(hdr) < 1 {
		return 0, 0, 0, 0, cborerr.ErrPrematureEnd
	}
	major = MajorType(hdr[0])
	addInfo = AddInfo(hdr[0])
	n, err := HeaderLen(addInfo)
	if err != nil {
		return major, addInfo, 0, 0, err
	}
	if len(hdr) < n {
		return major, addInfo, 0, 0, cborerr.ErrPrematureEnd
	}
	switch {
	case addInfo <= AddInfoDirect:
		arg = uint64(addInfo)
	case addInfo == AddInfoUint8:
		arg = uint64(hdr[1])
	case addInfo == AddInfoUint16:
		arg = uint64(binary.BigEndian.Uint16(hdr[1:]))
	case addInfo == AddInfoUint32:
		arg = uint64(binary.BigEndian.Uint32(hdr[1:]))
	case addInfo == AddInfoUint64:
		arg = binary.BigEndian.Uint64(hdr[1:])
	}
	return major, addInfo, arg, n, nil
}

// MaxHeaderLen is the largest possible header (initial byte + 8-byte
// argument); callers peeking ahead to determine an item's header never
// need more than this many bytes up front.
const MaxHeaderLen = 9
