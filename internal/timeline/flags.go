package timeline

var countryFlags = map[string]string{
	"USA":            "🇺🇸",
	"Germany":        "🇩🇪",
	"Israel":         "🇮🇱",
	"China":          "🇨🇳",
	"Russia":         "🇷🇺",
	"Denmark":        "🇩🇰",
	"United Kingdom": "🇬🇧",
	"France":         "🇫🇷",
	"Canada":         "🇨🇦",
	"Japan":          "🇯🇵",
	"India":          "🇮🇳",
	"Global":         "🌐",
}

// Flag returns the emoji flag for a country, or "" when none is known.
func Flag(country string) string {
	return countryFlags[country]
}

var categoryPatterns = map[string]string{
	"Politics": "-",
	"Science":  "+",
	"Culture":  "x",
	"War":      `\`,
}

// Pattern returns the bar fill pattern shape for a category, or "" for solid.
func Pattern(category string) string {
	return categoryPatterns[category]
}

// palette is the qualitative color sequence assigned to categories in order of
// first appearance.
var palette = []string{
	"#636EFA", "#EF553B", "#00CC96", "#AB63FA", "#FFA15A",
	"#19D3F3", "#FF6692", "#B6E880", "#FF97FF", "#FECB52",
}
