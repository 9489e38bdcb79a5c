// Package category holds the fixed set of post categories shared by the
// server, the clients and the seeding tools.
package category

import "slices"

// All lists the categories in display order.
var All = []string{
	"Lifestyle",
	"Digital Marketing",
	"Creativity",
	"Campaign Strategy",
	"Personal Branding",
	"Content",
}

// Default is used when a caller does not pick one.
const Default = "Lifestyle"

// Valid reports whether name is one of All. Matching is case-sensitive.
func Valid(name string) bool {
	return slices.Contains(All, name)
}
