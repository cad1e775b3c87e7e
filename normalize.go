package main

import (
	"regexp"
	"strings"
)

// drivePrefix matches a drive letter prefix such as `C:\`.
var drivePrefix = regexp.MustCompile(`(?i)([a-z])+:\\`)

// Normalize rewrites Windows paths in rendered descriptor text to the form the
// editor expects: `C:\Foo\Bar` becomes `/C/Foo/Bar`. Text for the forward-slash
// platform is returned unchanged.
func Normalize(text string, style SeparatorStyle) string {
	if style != SeparatorBackslash {
		return text
	}
	out := drivePrefix.ReplaceAllString(text, "/${1}/")
	return strings.ReplaceAll(out, `\`, "/")
}
