package constant

// GOOS values that change install hints and process handling.
const (
	Windows = "windows"
	Darwin  = "darwin"
	Linux   = "linux"
)
