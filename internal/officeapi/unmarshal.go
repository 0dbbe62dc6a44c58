package officeapi

import (
	"encoding/json"
	"fmt"
)

func UnmarshalAttendees(data []byte) ([]Attendee, error) {

	// The backend has been seen returning a literal null for an
	// empty office, which decodes into a nil slice just fine
	var attendees []Attendee
	if err := json.Unmarshal(data, &attendees); err != nil {
		return nil, fmt.Errorf("attendee data is not correctly formatted: %w", err)
	}

	return attendees, nil
}

func UnmarshalVisits(data []byte) ([]VisitSession, error) {

	var visits []VisitSession
	if err := json.Unmarshal(data, &visits); err != nil {
		return nil, fmt.Errorf("visit data is not correctly formatted: %w", err)
	}

	return visits, nil
}

func UnmarshalCount(data []byte) (int, error) {

	var raw struct {
		Count int `json:"count"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return 0, fmt.Errorf("count data is not correctly formatted: %w", err)
	}

	return raw.Count, nil
}

func UnmarshalMessage(data []byte) (string, error) {

	var raw struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return "", err
	}
	if raw.Message == "" {
		return "", fmt.Errorf("no message found among received data")
	}

	return raw.Message, nil
}
