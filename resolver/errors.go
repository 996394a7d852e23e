package resolver

import "fmt"

// ErrorKind categorizes provider failures.
type ErrorKind int

const (
	// NoSuitableFormat means the content has no representation for the requested format.
	NoSuitableFormat ErrorKind = iota
	// NetworkOrAPIFailure means the remote call failed or returned a non-success status.
	NetworkOrAPIFailure
)

func (k ErrorKind) String() string {
	if k == NoSuitableFormat {
		return "no suitable format"
	}
	return "network or api failure"
}

// ProviderError is returned by Resolve. It is never retried automatically.
type ProviderError struct {
	Kind   ErrorKind
	Format string
	Detail string
	Err    error
}

func (e *ProviderError) Error() string {
	switch e.Kind {
	case NoSuitableFormat:
		return fmt.Sprintf("%s: %s, try a different format", e.Format, e.Detail)
	default:
		return fmt.Sprintf("failed to get download links: %s", e.Detail)
	}
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Is matches any *ProviderError of the same kind, so errors.Is(err, &ProviderError{Kind: NoSuitableFormat}) works.
func (e *ProviderError) Is(target error) bool {
	t, ok := target.(*ProviderError)
	return ok && t.Kind == e.Kind
}

func noSuitableFormat(format string, detail string, args ...any) *ProviderError {
	return &ProviderError{Kind: NoSuitableFormat, Format: format, Detail: fmt.Sprintf(detail, args...)}
}

func apiFailure(format string, err error) *ProviderError {
	return &ProviderError{Kind: NetworkOrAPIFailure, Format: format, Detail: err.Error(), Err: err}
}
