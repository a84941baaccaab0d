package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// dateLayout is the calendar-date form the server emits for date_joined.
const dateLayout = "2006-01-02"

// dateLayouts are tried in order when decoding a Date.
//
//nolint:gochecknoglobals // Read-only lookup table.
var dateLayouts = []string{
	dateLayout,
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
}

// Date is a join date. The server sends calendar dates; full timestamps are accepted too.
type Date struct {
	time.Time
}

// NewDate returns the Date for the given calendar day in UTC.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// UnmarshalJSON accepts "YYYY-MM-DD", RFC 3339 timestamps, and null.
func (d *Date) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		d.Time = time.Time{}
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			d.Time = t
			return nil
		}
	}
	return fmt.Errorf("unrecognized date %q", s)
}

// MarshalJSON writes the calendar date, or null for the zero value.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Format(dateLayout))
}

// String returns the calendar date, or "" for the zero value.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(dateLayout)
}

// User is one user record. Records are owned by the server and never modified here.
type User struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	Department string `json:"department"`
	DateJoined Date   `json:"date_joined"`
}

// ResultPage is one server response: the items of a page plus pagination metadata.
type ResultPage struct {
	Items      []User `json:"users"`
	TotalItems int    `json:"total"`
	Page       int    `json:"page"`
	PageSize   int    `json:"limit"`
	TotalPages int    `json:"total_pages"`
}

// userListResponse mirrors GET /users/. Users is a pointer so a missing field is detectable.
type userListResponse struct {
	Users      *[]User `json:"users"`
	Total      int     `json:"total"`
	Page       int     `json:"page"`
	Limit      int     `json:"limit"`
	TotalPages int     `json:"total_pages"`
}

type departmentItem struct {
	Department string `json:"department"`
}

type roleItem struct {
	Role string `json:"role"`
}

type healthResponse struct {
	Status string `json:"status"`
}

// messageResponse is returned by the seed and cache endpoints.
type messageResponse struct {
	Message string `json:"message"`
}

// errorResponse is the server's structured error body. Detail is either a string
// or a list of validation errors.
type errorResponse struct {
	Detail json.RawMessage `json:"detail"`
}

type validationDetail struct {
	Msg string `json:"msg"`
	Loc []any  `json:"loc"`
}
