package render

import "github.com/charmbracelet/lipgloss"

// Theme styles the terminal report. Valid and Invalid mark the outcome of
// each input; the Level styles color SARIF issue counts by level.
type Theme struct {
	Name string

	Valid   lipgloss.Style
	Invalid lipgloss.Style

	LevelError   lipgloss.Style
	LevelWarning lipgloss.Style
	LevelNote    lipgloss.Style

	Path    lipgloss.Style
	Dim     lipgloss.Style
	Heading lipgloss.Style

	Marks Marks
}

// Marks are the glyphs printed before outcomes, level counts and schema
// error lines.
type Marks struct {
	Valid   string
	Invalid string
	Error   string
	Warning string
	Note    string
	Detail  string
}

func color(c string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(c))
}

// DefaultTheme uses saturated colors: green for valid inputs, red for
// schema violations.
func DefaultTheme() Theme {
	return Theme{
		Name:         "default",
		Valid:        color("42"),
		Invalid:      color("160").Bold(true),
		LevelError:   color("203"),
		LevelWarning: color("178"),
		LevelNote:    color("110"),
		Path:         color("81"),
		Dim:          color("244"),
		Heading:      lipgloss.NewStyle().Bold(true),
		Marks: Marks{
			Valid:   "✔",
			Invalid: "✘",
			Error:   "◆",
			Warning: "▲",
			Note:    "○",
			Detail:  "›",
		},
	}
}

// OrcaTheme is a low-contrast palette for dark terminals.
func OrcaTheme() Theme {
	return Theme{
		Name:         "orca",
		Valid:        color("114"),
		Invalid:      color("174"),
		LevelError:   color("168"),
		LevelWarning: color("186"),
		LevelNote:    color("146"),
		Path:         color("153"),
		Dim:          color("246"),
		Heading:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252")),
		Marks: Marks{
			Valid:   "✓",
			Invalid: "✗",
			Error:   "●",
			Warning: "▴",
			Note:    "·",
			Detail:  "-",
		},
	}
}

// MonoTheme prints ASCII marks without color. It is chosen when NO_COLOR is
// set.
func MonoTheme() Theme {
	plain := lipgloss.NewStyle()
	return Theme{
		Name:         "mono",
		Valid:        plain,
		Invalid:      plain,
		LevelError:   plain,
		LevelWarning: plain,
		LevelNote:    plain,
		Path:         plain,
		Dim:          plain,
		Heading:      plain.Bold(true),
		Marks: Marks{
			Valid:   "+",
			Invalid: "x",
			Error:   "E",
			Warning: "W",
			Note:    "N",
			Detail:  "-",
		},
	}
}

// ThemeByName returns the named theme, falling back to DefaultTheme.
func ThemeByName(name string) Theme {
	switch name {
	case "orca":
		return OrcaTheme()
	case "mono":
		return MonoTheme()
	default:
		return DefaultTheme()
	}
}
