package utils

// NewNullString maps an empty string to nil so optional fields land as NULL
// in the database instead of an empty value.
func NewNullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
