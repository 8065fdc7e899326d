package types

import "golang.org/x/text/cases"

// FoldName returns the case-folded form used to compare member and group
// names. Names that fold to the same string refer to the same record.
func FoldName(name string) string {
	return cases.Fold().String(name)
}

// SameName reports whether two names differ only in case.
func SameName(a, b string) bool {
	return FoldName(a) == FoldName(b)
}
