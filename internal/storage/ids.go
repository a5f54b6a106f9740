package storage

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// NormalizeID returns the comparable string form of an identity value.
// Numeric ids of any Go type and their decimal string form normalize to the
// same value.
func NormalizeID(id any) string {
	switch v := id.(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return strconv.FormatInt(n, 10)
		}
		return v.String()
	case int:
		return strconv.Itoa(v)
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint:
		return strconv.FormatUint(uint64(v), 10)
	case uint32:
		return strconv.FormatUint(uint64(v), 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float32:
		return formatFloat(float64(v))
	case float64:
		return formatFloat(v)
	default:
		return fmt.Sprint(v)
	}
}

func formatFloat(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1<<53 {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// numericID returns the integer value of an identity, if it has one.
func numericID(id any) (int64, bool) {
	n, err := strconv.ParseInt(NormalizeID(id), 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// nextID returns max(existing numeric ids) + 1, or 1 for an empty set.
// Non-numeric ids do not take part. The scan is linear in the collection size.
func nextID(records []Record) int64 {
	var maxID int64
	for _, r := range records {
		if n, ok := numericID(r.ID()); ok && n > maxID {
			maxID = n
		}
	}
	return maxID + 1
}
