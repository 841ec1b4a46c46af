package assets

import (
	"fmt"
	"strings"
)

// ValidateAssetName checks a theme or transport name before it is turned
// into a file name. Dots are refused too, so "dark.css" or "../x" never
// reach the loader, which appends the extension itself.
func ValidateAssetName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	case strings.ContainsAny(name, `/\.`):
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}
