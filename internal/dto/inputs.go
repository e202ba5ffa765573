package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the calendar date format accepted and produced by the API.
const DateLayout = "2006-01-02"

// Quantity is a stock count that also accepts numeric strings from form posts.
// null, "" and absent all mean 0.
type Quantity int

func (q *Quantity) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*q = 0
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*q = 0
			return nil
		}
		data = []byte(s)
	}
	f, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return fmt.Errorf("quantity %q is not a number", string(data))
	}
	if f != float64(int64(f)) {
		return fmt.Errorf("quantity %q is not a whole number", string(data))
	}
	*q = Quantity(int64(f))
	return nil
}

// Int returns the plain integer value.
func (q Quantity) Int() int {
	return int(q)
}

// DateInput accepts either a calendar date (YYYY-MM-DD, taken as midnight UTC)
// or a full RFC3339 timestamp.
type DateInput struct {
	time.Time
}

func (d *DateInput) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	if strings.TrimSpace(s) == "" {
		d.Time = time.Time{}
		return nil
	}
	t, err := ParseDateInput(s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

func (d DateInput) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Time.Format(time.RFC3339))
}

// ParseDateInput parses the API date formats.
func ParseDateInput(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, use YYYY-MM-DD or RFC3339", s)
	}
	return t, nil
}

// TimePtr returns the wrapped time of an optional input.
func (d *DateInput) TimePtr() *time.Time {
	if d == nil || d.Time.IsZero() {
		return nil
	}
	t := d.Time
	return &t
}
