package booking

import (
	"bytes"
	"encoding/json"
	"strings"
)

// BookingFields is the contact form as the guest typed it.
type BookingFields struct {
	Name     string
	Email    string
	Phone    string
	CheckIn  string
	CheckOut string
	Guests   string
	Message  string
}

func (f BookingFields) trimmed() BookingFields {
	return BookingFields{
		Name:     strings.TrimSpace(f.Name),
		Email:    strings.TrimSpace(f.Email),
		Phone:    strings.TrimSpace(f.Phone),
		CheckIn:  strings.TrimSpace(f.CheckIn),
		CheckOut: strings.TrimSpace(f.CheckOut),
		Guests:   strings.TrimSpace(f.Guests),
		Message:  strings.TrimSpace(f.Message),
	}
}

func (f BookingFields) missing() []string {
	var out []string
	for _, field := range []struct {
		name, value string
	}{
		{"name", f.Name},
		{"email", f.Email},
		{"phone", f.Phone},
		{"check_in", f.CheckIn},
		{"check_out", f.CheckOut},
		{"guests", f.Guests},
	} {
		if field.value == "" {
			out = append(out, field.name)
		}
	}
	return out
}

type CreateBookingRequest struct {
	Name     string     `json:"name"`
	Email    string     `json:"email" validate:"omitempty,guest_email"`
	Phone    string     `json:"phone" validate:"omitempty,za_phone"`
	CheckIn  string     `json:"check_in"`
	CheckOut string     `json:"check_out"`
	Guests   FlexString `json:"guests"`
	Message  string     `json:"message"`
}

func (r CreateBookingRequest) fields() BookingFields {
	return BookingFields{
		Name:     r.Name,
		Email:    r.Email,
		Phone:    r.Phone,
		CheckIn:  r.CheckIn,
		CheckOut: r.CheckOut,
		Guests:   string(r.Guests),
		Message:  r.Message,
	}.trimmed()
}

// FlexString accepts a JSON string or number, since form clients send the
// guest count either way.
type FlexString string

func (s *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = FlexString(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*s = FlexString(n.String())
	return nil
}

type CreateBookingResponse struct {
	Booking   BookingSummary `json:"booking"`
	EmailSent bool           `json:"email_sent"`
}

type BookingSummary struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}
