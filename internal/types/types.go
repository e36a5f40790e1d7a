package types

import "time"

// StringPtr converts a string to a pointer to a string
func StringPtr(s string) *string {
	return &s
}

// SafeString returns a safe string from a pointer to a string
func SafeString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// BoolPtr converts a bool to a pointer to a bool
func BoolPtr(b bool) *bool {
	return &b
}

// TimePtr converts a time to a pointer to a UTC time
func TimePtr(t time.Time) *time.Time {
	t = t.UTC()
	return &t
}
