package layout

import (
	"golang.org/x/text/language"

	"storynav/common"
)

// previousTapZone is part of the screen width which navigates backward.
const previousTapZone = 0.25

// TapDirection maps tap position to navigation direction: leading quarter of
// the screen goes back, the rest goes forward. Leading edge is on the right
// for right-to-left stories.
func TapDirection(x, width int, rtl bool) common.Direction {
	if width <= 0 {
		return common.DirectionNext
	}
	pos := float64(x) / float64(width)
	if rtl {
		pos = 1 - pos
	}
	if pos <= previousTapZone {
		return common.DirectionPrevious
	}
	return common.DirectionNext
}

var rtlScripts = []language.Script{
	language.MustParseScript("Arab"),
	language.MustParseScript("Hebr"),
	language.MustParseScript("Syrc"),
	language.MustParseScript("Thaa"),
	language.MustParseScript("Nkoo"),
	language.MustParseScript("Adlm"),
	language.MustParseScript("Rohg"),
}

// IsRTL reports whether language is written right to left. Unknown and empty
// languages are left to right.
func IsRTL(lang string) bool {
	if lang == "" {
		return false
	}
	tag, err := language.Parse(lang)
	if err != nil {
		return false
	}
	script, conf := tag.Script()
	if conf == language.No {
		return false
	}
	for _, s := range rtlScripts {
		if s == script {
			return true
		}
	}
	return false
}
