package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FlexInt decodes from a JSON number or a numeric string. Browser forms post
// stock as a string, so both shapes are accepted. null and "" decode to 0.
type FlexInt int

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*f = 0
		return nil
	}

	raw := string(data)
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		raw = strings.TrimSpace(s)
		if raw == "" {
			*f = 0
			return nil
		}
	}

	n, err := ParseInt(raw)
	if err != nil {
		return err
	}
	*f = FlexInt(n)
	return nil
}

// ParseInt accepts integers and integral floats such as "5.0".
func ParseInt(raw string) (int, error) {
	if n, err := strconv.Atoi(raw); err == nil {
		return n, nil
	}
	fl, err := strconv.ParseFloat(raw, 64)
	if err != nil || fl != math.Trunc(fl) || math.IsInf(fl, 0) {
		return 0, fmt.Errorf("%q is not an integer", raw)
	}
	if fl > math.MaxInt32 || fl < math.MinInt32 {
		return 0, fmt.Errorf("%q is out of range", raw)
	}
	return int(fl), nil
}
