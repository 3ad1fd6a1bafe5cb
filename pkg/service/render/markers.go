package render

import (
	"strings"
	"text/template"
)

// Sentinel markup placed in cells whose value is missing or conflicting
const (
	TodoMarker     = `<span style="color:red"><b><TODO></b></span>`
	ConflictMarker = `<span style="color:red"><b><TODO-CONFLICT></b></span>`
)

// OneLine collapses all whitespace runs, including newlines, into single
// spaces and trims the result
func OneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// EscapeCell flattens s to one line and escapes the table delimiter
func EscapeCell(s string) string {
	return strings.ReplaceAll(OneLine(s), "|", `\|`)
}

// Cell returns the escaped value, or the TODO marker when it is blank
func Cell(s string) string {
	if v := EscapeCell(s); v != "" {
		return v
	}
	return TodoMarker
}

// JoinCell joins values with ", " and escapes the result, or returns the
// TODO marker when there are none
func JoinCell(values []string) string {
	return Cell(strings.Join(values, ", "))
}

// Conflict appends the conflict marker to s
func Conflict(s string) string {
	return EscapeCell(s) + " " + ConflictMarker
}

// FuncMap returns the helper functions available to templates
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"todo":     func() string { return TodoMarker },
		"conflict": func() string { return ConflictMarker },
		"oneLine":  OneLine,
		"esc":      EscapeCell,
		"cell":     Cell,
		"join":     JoinCell,
	}
}
