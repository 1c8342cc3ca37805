package common

// UnknownStr is the display name for enum values outside their declared range.
const UnknownStr = "unknown"
