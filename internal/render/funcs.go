package render

import (
	"fmt"
	"strings"
	"text/template"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/KirkDiggler/nightfall/internal/domain/catalog"
)

var texReplacer = strings.NewReplacer(
	`\`, `\textbackslash{}`,
	`{`, `\{`,
	`}`, `\}`,
	`&`, `\&`,
	`%`, `\%`,
	`$`, `\$`,
	`#`, `\#`,
	`_`, `\_`,
	`~`, `\textasciitilde{}`,
	`^`, `\textasciicircum{}`,
)

// Escape makes catalog and player text safe to place in LaTeX source
func Escape(s string) string {
	return texReplacer.Replace(s)
}

// Label turns an enum value such as MIDNIGHT_CHOICE into "Midnight Choice"
func Label(v any) string {
	s := strings.ReplaceAll(strings.ToLower(fmt.Sprint(v)), "_", " ")
	// Casers are stateful, so each call gets its own
	return cases.Title(language.English).String(s)
}

// AlignmentColor is the xcolor name defined by the templates for a
func AlignmentColor(a catalog.Alignment) string {
	switch a {
	case catalog.AlignmentGood:
		return "GoodGreen"
	case catalog.AlignmentEvil:
		return "EvilRed"
	}
	return "NeutralGray"
}

func funcs() template.FuncMap {
	return template.FuncMap{
		"tex":   Escape,
		"label": Label,
		"color": AlignmentColor,
		"join": func(items []string) string {
			return strings.Join(items, ", ")
		},
	}
}
