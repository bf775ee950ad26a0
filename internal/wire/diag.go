package wire

import (
	"encoding/hex"
	"math"
	"strconv"
	"strings"

	"github.com/cborstream/cborstream/cborerr"
)

// Diag renders the next item in b as RFC 8949 diagnostic notation,
// restricted to the major types this module supports, and returns the
// unconsumed remainder. It exists for error messages and test failure
// output, never on a decode hot path, the same role the teacher
// runtime package's DiagBytes plays for its generated marshalers.
func Diag(b []byte) (string, []byte, error) {
	var sb strings.Builder
	rest, err := diagOne(&sb, b)
	if err != nil {
		return "", b, err
	}
	return sb.String(), rest, nil
}

func diagOne(sb *strings.Builder, b []byte) ([]byte, error) {
	if len(b) < 1 {
		return b, cborerr.ErrPrematureEnd
	}
	major, addInfo, arg, hdrLen, err := DecodeArgument(b)
	if err != nil {
		return b, err
	}
	rest := b[hdrLen:]

	switch major {
	case MajorUint:
		sb.WriteString(strconv.FormatUint(arg, 10))
		return rest, nil
	case MajorNegInt:
		sb.WriteString(strconv.FormatInt(-1-int64(arg), 10))
		return rest, nil
	case MajorBytes:
		if uint64(len(rest)) < arg {
			return b, cborerr.ErrPrematureEnd
		}
		sb.WriteString("h'")
		sb.WriteString(hex.EncodeToString(rest[:arg]))
		sb.WriteString("'")
		return rest[arg:], nil
	case MajorText:
		if uint64(len(rest)) < arg {
			return b, cborerr.ErrPrematureEnd
		}
		s := rest[:arg]
		if !ValidUTF8(s) {
			return b, cborerr.ErrInvalidUTF8
		}
		sb.WriteString(strconv.Quote(string(s)))
		return rest[arg:], nil
	case MajorArray:
		sb.WriteString("[")
		p := rest
		for i := uint64(0); i < arg; i++ {
			if i > 0 {
				sb.WriteString(", ")
			}
			var err error
			p, err = diagOne(sb, p)
			if err != nil {
				return b, err
			}
		}
		sb.WriteString("]")
		return p, nil
	case MajorMap:
		sb.WriteString("{")
		p := rest
		for i := uint64(0); i < arg; i++ {
			if i > 0 {
				sb.WriteString(", ")
			}
			var err error
			p, err = diagOne(sb, p)
			if err != nil {
				return b, err
			}
			sb.WriteString(": ")
			p, err = diagOne(sb, p)
			if err != nil {
				return b, err
			}
		}
		sb.WriteString("}")
		return p, nil
	case MajorTag:
		return b, cborerr.UnsupportedFeatureError{Feature: "tagged item"}
	case MajorSimple:
		switch addInfo {
		case SimpleFalse:
			sb.WriteString("false")
			return rest, nil
		case SimpleTrue:
			sb.WriteString("true")
			return rest, nil
		case SimpleNull:
			sb.WriteString("null")
			return rest, nil
		case SimpleUndefined:
			sb.WriteString("undefined")
			return rest, nil
		case SimpleFloat16:
			sb.WriteString(formatFloat64Diag(float64(Float16ToFloat32(uint16(arg)))))
			return rest, nil
		case SimpleFloat32:
			sb.WriteString(formatFloat64Diag(float64(math.Float32frombits(uint32(arg)))))
			return rest, nil
		case SimpleFloat64:
			sb.WriteString(formatFloat64Diag(math.Float64frombits(arg)))
			return rest, nil
		default:
			return b, cborerr.UnsupportedFeatureError{Feature: "unassigned simple value"}
		}
	}
	return b, cborerr.ErrMalformedArgument
}

func formatFloat64Diag(f float64) string {
	switch {
	case math.IsInf(f, +1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case math.IsNaN(f):
		return "NaN"
	}
	af := math.Abs(f)
	if af == 0 || af < 1e15 {
		return trimTrailingZerosDot(strconv.FormatFloat(f, 'f', -1, 64))
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func trimTrailingZerosDot(s string) string {
	i := len(s)
	for i > 0 && s[i-1] == '0' {
		i--
	}
	if i > 0 && s[i-1] == '.' {
		i--
	}
	return s[:i]
}
