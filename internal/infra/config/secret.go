package config

const redactedPlaceholder = "***REDACTED***"

// SecretString keeps credentials out of logs and JSON dumps.
// Use Unmask when the raw value is genuinely needed.
type SecretString string

// String returns a redacted placeholder instead of the raw value.
func (s SecretString) String() string {
	return redactedPlaceholder
}

// MarshalJSON returns the redacted placeholder as a JSON string.
func (s SecretString) MarshalJSON() ([]byte, error) {
	return []byte(`"` + redactedPlaceholder + `"`), nil
}

// Unmask returns the raw value.
func (s SecretString) Unmask() string {
	return string(s)
}
