package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	maxNameLength  = 120
	maxBioLength   = 4000
	maxPhoneLength = 32
	maxGoalLength  = 200
)

// flexString accepts a JSON string or number; form inputs send either.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", data)
	}
	*f = flexString(n.String())
	return nil
}

// optionalNumber is a measurement that may arrive as a number, a numeric
// string, or blank.
type optionalNumber struct {
	Value *float64
	Raw   string
}

func (o *optionalNumber) UnmarshalJSON(data []byte) error {
	var raw flexString
	if err := raw.UnmarshalJSON(data); err != nil {
		return err
	}
	o.Raw = strings.TrimSpace(string(raw))
	if o.Raw == "" {
		o.Value = nil
		return nil
	}
	value, err := strconv.ParseFloat(o.Raw, 64)
	if err != nil {
		return fmt.Errorf("invalid number %q", o.Raw)
	}
	o.Value = &value
	return nil
}

func validateTraineeProfileRequest(req traineeProfileRequest) string {
	if err := validateLength("full_name", req.FullName, maxNameLength); err != "" {
		return err
	}
	if err := validateLength("phone", req.Phone, maxPhoneLength); err != "" {
		return err
	}
	if req.Phone != nil && strings.TrimSpace(*req.Phone) != "" && !isPhoneNumber(*req.Phone) {
		return "phone must contain only digits, spaces, dashes, parentheses and a leading +"
	}
	if err := validateLength("goal", req.Goal, maxGoalLength); err != "" {
		return err
	}
	if err := validateLength("activity_level", req.ActivityLevel, maxGoalLength); err != "" {
		return err
	}
	if req.Email != nil && strings.TrimSpace(*req.Email) != "" && !strings.Contains(*req.Email, "@") {
		return "email must be a valid address"
	}
	return ""
}

func validateTrainerProfileRequest(req trainerProfileRequest) string {
	if strings.TrimSpace(req.FullName) == "" {
		return "full_name is required"
	}
	if err := validateLength("full_name", &req.FullName, maxNameLength); err != "" {
		return err
	}
	if err := validateLength("bio", req.Bio, maxBioLength); err != "" {
		return err
	}
	for _, certificate := range req.Certificates {
		if err := validateLength("certificate name", &certificate.Name, maxNameLength); err != "" {
			return err
		}
	}
	return ""
}

func validateLength(field string, value *string, limit int) string {
	if value == nil {
		return ""
	}
	if utf8.RuneCountInString(strings.TrimSpace(*value)) > limit {
		return fmt.Sprintf("%s must be at most %d characters", field, limit)
	}
	return ""
}

func isPhoneNumber(value string) bool {
	value = strings.TrimSpace(value)
	for i, r := range value {
		switch {
		case r >= '0' && r <= '9', r == ' ', r == '-', r == '(', r == ')':
		case r == '+' && i == 0:
		default:
			return false
		}
	}
	return true
}
