package types

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// AllAssemblies is the sentinel used by clients to request data for every assembly.
const AllAssemblies = "ALL"

// AssemblyName returns the canonical form of an assembly name: surrounding
// whitespace removed, inner whitespace collapsed, upper case.
//
// Names are normalized once at the API boundary so that every query can
// match them exactly.
func AssemblyName(s string) string {
	return cases.Upper(language.Und).String(strings.Join(strings.Fields(s), " "))
}

// IsAllAssemblies reports if the name is empty or the "all" sentinel.
func IsAllAssemblies(s string) bool {
	name := AssemblyName(s)
	return name == "" || name == AllAssemblies
}
