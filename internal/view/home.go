package view

import (
	"fmt"
	"strings"

	"github.com/i474232898/weather-search/internal/weather"
)

// NoMatchesHint is the non-interactive row shown when there are no suggestions.
const NoMatchesHint = "Begin typing a valid Cities name to populate suggestions."

// SearchBox is the render input for the search area.
type SearchBox struct {
	Text           string
	Open           bool
	Options        []string
	SubmitDisabled bool
	Units          []UnitEntry
}

// UnitEntry is one unit toggle item.
type UnitEntry struct {
	Label  string
	Active bool
}

// ErrorBox is the render input for the single error slot.
type ErrorBox struct {
	Code    int
	Message string
}

// Page is the render input for the whole screen.
type Page struct {
	Search   SearchBox
	Fetching bool
	Err      *ErrorBox
	Payload  *weather.Payload
	Map      *MapView
}

// RenderSearch draws the input, the dropdown, the unit toggle and the
// submit button.
func RenderSearch(s SearchBox) []string {
	lines := []string{"Search: " + s.Text}

	if s.Open {
		if len(s.Options) == 0 {
			lines = append(lines, "  - "+NoMatchesHint)
		} else {
			for i, o := range s.Options {
				lines = append(lines, fmt.Sprintf("  %d) %s", i+1, o))
			}
		}
	}

	var units []string
	for _, u := range s.Units {
		if u.Active {
			units = append(units, "["+u.Label+"]")
		} else {
			units = append(units, " "+u.Label+" ")
		}
	}
	lines = append(lines, "Units: "+strings.Join(units, " | "))

	button := "[Search]"
	if s.SubmitDisabled {
		button = "[Search] (select a suggestion first)"
	}
	return append(lines, button)
}

// RenderPage draws the screen: a spinner while fetching, otherwise either
// the error line or the results and map, never both.
func RenderPage(p Page) []string {
	lines := RenderSearch(p.Search)
	lines = append(lines, "")

	switch {
	case p.Fetching:
		lines = append(lines, "Loading...")
	case p.Err != nil:
		lines = append(lines, fmt.Sprintf("Error: %d, Message: %s", p.Err.Code, p.Err.Message))
	case p.Payload != nil:
		lines = append(lines, RenderResults(p.Payload.Name, p.Payload)...)
		lines = append(lines, "")
		lines = append(lines, p.Map.Lines()...)
	}
	return lines
}
