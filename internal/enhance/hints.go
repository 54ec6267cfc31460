package enhance

import "strings"

// HintFlags records which corrections free-text hints asked for.
type HintFlags struct {
	Brightness   bool `json:"brightness"`
	Contrast     bool `json:"contrast"`
	Sharpness    bool `json:"sharpness"`
	Saturation   bool `json:"saturation"`
	Noise        bool `json:"noise"`
	WhiteBalance bool `json:"white_balance"`
}

// HintMapper turns free-text improvement hints into correction flags.
//
// Mapping is best-effort: hints come from people or upstream suggestion
// services and are matched heuristically, never parsed.
type HintMapper func(hints []string) HintFlags

// KeywordTable lists lower-case substrings that trigger each correction.
type KeywordTable struct {
	Brightness   []string
	Contrast     []string
	Sharpness    []string
	Saturation   []string
	Noise        []string
	WhiteBalance []string
}

// DefaultKeywords covers the English and French wording used by the
// suggestion prompts.
var DefaultKeywords = KeywordTable{
	Brightness:   []string{"bright", "dark", "exposure", "expos", "lumin", "sombre", "clair"},
	Contrast:     []string{"contrast"},
	Sharpness:    []string{"sharp", "blur", "flou", "nett", "focus"},
	Saturation:   []string{"saturat", "color", "colour", "couleur", "vivid", "dull", "terne"},
	Noise:        []string{"noise", "grain", "bruit"},
	WhiteBalance: []string{"white balance", "white-balance", "balance", "blanc", "cast", "tint"},
}

// KeywordMapper returns a HintMapper that flags a correction when any hint
// contains one of its keywords, ignoring case.
func KeywordMapper(table KeywordTable) HintMapper {
	return func(hints []string) HintFlags {
		var f HintFlags
		for _, h := range hints {
			h = strings.ToLower(h)
			f.Brightness = f.Brightness || containsAny(h, table.Brightness)
			f.Contrast = f.Contrast || containsAny(h, table.Contrast)
			f.Sharpness = f.Sharpness || containsAny(h, table.Sharpness)
			f.Saturation = f.Saturation || containsAny(h, table.Saturation)
			f.Noise = f.Noise || containsAny(h, table.Noise)
			f.WhiteBalance = f.WhiteBalance || containsAny(h, table.WhiteBalance)
		}
		return f
	}
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if k != "" && strings.Contains(s, k) {
			return true
		}
	}
	return false
}
