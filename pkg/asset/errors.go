package asset

import "fmt"

// NoSuitableAssetError is returned when no asset can be selected
type NoSuitableAssetError struct {
	Pattern   string // asset pattern that filtered everything out, if any
	Available []string
}

func (e *NoSuitableAssetError) Error() string {
	if e.Pattern != "" {
		return fmt.Sprintf("no release asset matches %q (available: %v)", e.Pattern, e.Available)
	}
	return "no suitable release asset found"
}
