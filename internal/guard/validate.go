package guard

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// ValidateID coerces raw to a positive integer id. label names the resource
// in the error message.
func ValidateID(raw any, label string) (uint, error) {
	invalid := NewValidationError(fmt.Sprintf("Invalid %s id.", label))

	var n int64
	switch v := raw.(type) {
	case nil, bool:
		return 0, invalid
	case float32:
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) || f > math.MaxInt64 {
			return 0, invalid
		}
		n = int64(f)
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) || v != math.Trunc(v) || v > math.MaxInt64 {
			return 0, invalid
		}
		n = int64(v)
	case string:
		parsed, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return 0, invalid
		}
		n = parsed
	case []byte:
		return ValidateID(string(v), label)
	case json.Number:
		return ValidateID(string(v), label)
	default:
		parsed, err := cast.ToInt64E(v)
		if err != nil {
			return 0, invalid
		}
		n = parsed
	}

	if n <= 0 {
		return 0, invalid
	}
	return uint(n), nil
}
