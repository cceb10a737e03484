// ABOUTME: Icon system with Nerd Font detection and Unicode fallback
// ABOUTME: One glyph per portfolio section plus status and action icons

package icons

import (
	"os"
	"strings"
	"sync"
)

var (
	useNerdFonts     bool
	nerdFontDetected sync.Once
)

var nerdFontTerminals = []string{"iTerm.app", "alacritty", "WezTerm", "kitty", "ghostty"}

func detectNerdFonts() bool {
	if env := os.Getenv("PORTFOLIO_NERD_FONTS"); env != "" {
		return env == "1" || strings.ToLower(env) == "true"
	}

	term := os.Getenv("TERM")
	termProgram := os.Getenv("TERM_PROGRAM")
	for _, t := range nerdFontTerminals {
		if strings.Contains(termProgram, t) || strings.Contains(term, strings.ToLower(t)) {
			return true
		}
	}
	return os.Getenv("NERD_FONTS") == "1"
}

// HasNerdFonts returns true if Nerd Fonts are available
func HasNerdFonts() bool {
	nerdFontDetected.Do(func() {
		useNerdFonts = detectNerdFonts()
	})
	return useNerdFonts
}

// Icon represents an icon with Nerd Font and Unicode fallback variants
type Icon struct {
	NerdFont string
	Fallback string
}

// String returns the appropriate icon based on font availability
func (i Icon) String() string {
	if HasNerdFonts() {
		return i.NerdFont
	}
	return i.Fallback
}

var (
	// Sections
	Project  = Icon{"\U000F024B", "▣"} // nf-md-folder
	Blog     = Icon{"\U000F082E", "✎"} // nf-md-notebook
	Skill    = Icon{"\U000F04CE", "★"} // nf-md-star
	Language = Icon{"\U000F05CA", "◍"} // nf-md-translate
	User     = Icon{"\U000F0004", "☺"} // nf-md-account
	Stats    = Icon{"\U000F0128", "▤"} // nf-md-chart_bar
	Views    = Icon{"\U000F0208", "◉"} // nf-md-eye
	Featured = Icon{"\U000F04CF", "✦"} // nf-md-star_circle

	// Status
	CheckOK  = Icon{"\uf058", "✓"}
	Warning  = Icon{"\uf071", "⚠"}
	Critical = Icon{"\uf057", "✗"}

	// Actions
	Refresh = Icon{"\U000F0453", "↻"}
	Back    = Icon{"\U000F004D", "←"}
	Quit    = Icon{"\U000F05FC", "×"}
	Login   = Icon{"\U000F0342", "→"}
	Logout  = Icon{"\U000F0343", "⇥"}

	App = Icon{"\U000F01BC", "◈"}
)
