package mixer

import (
	"fmt"
	"strconv"
	"strings"
)

// CanonicalKey converts a row or channel identifier to its zero-padded two-digit form.
// Integers and numeric strings are accepted, so 5, "5" and "05" all yield "05".
func CanonicalKey(raw any) (string, error) {
	var n int
	switch v := raw.(type) {
	case int:
		n = v
	case int64:
		n = int(v)
	case uint:
		n = int(v)
	case uint64:
		n = int(v)
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return "", fmt.Errorf("key %q is not numeric", v)
		}
		n = parsed
	default:
		return "", fmt.Errorf("unsupported key type %T", raw)
	}
	if n < 0 {
		return "", fmt.Errorf("key %d is negative", n)
	}
	return fmt.Sprintf("%02d", n), nil
}
