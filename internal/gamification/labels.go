package gamification

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// CategoryLabel turns a badge category id into display text ("milestone" -> "Milestone")
func CategoryLabel(category string) string {
	// a Caser is stateful and cannot be shared between goroutines
	return cases.Title(language.English).String(strings.ReplaceAll(category, "_", " "))
}

// BadgeLabel renders a badge as "icon name"
func BadgeLabel(r BadgeRule) string {
	if r.Icon == "" {
		return r.Name
	}
	return r.Icon + " " + r.Name
}
