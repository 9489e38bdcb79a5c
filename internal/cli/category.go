package cli

import (
	"strings"

	"github.com/folio/internal/category"
	"golang.org/x/text/cases"
)

var categoryFolder = cases.Fold()

// resolveCategory maps typed input onto a known category ignoring case.
// Unknown input is returned trimmed so validation can report it.
func resolveCategory(input string) string {
	trimmed := strings.TrimSpace(input)
	folded := categoryFolder.String(trimmed)
	for _, name := range category.All {
		if categoryFolder.String(name) == folded {
			return name
		}
	}
	return trimmed
}
