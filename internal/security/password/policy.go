package password

import "unicode/utf8"

const (
	MinLen    = 8
	MaxScore  = 5
	widthStep = 100 / MaxScore
)

// Assessment is the live strength feedback for one password value.
type Assessment struct {
	Score        int  `json:"score"`         // 0..5
	Tier         Tier `json:"tier"`          // EMPTY when the value is empty
	WidthPercent int  `json:"width_percent"` // 0, 20, .. 100
}

// Assess scores pwd against five independent criteria, one point each:
// length >= MinLen, a lowercase letter, an uppercase letter, a digit and a symbol.
// It never fails; any string (including invalid UTF-8) yields an Assessment.
func Assess(pwd string) Assessment {
	var hasL, hasU, hasD, hasS bool
	for _, r := range pwd {
		switch {
		case r >= 'a' && r <= 'z':
			hasL = true
		case r >= 'A' && r <= 'Z':
			hasU = true
		case r >= '0' && r <= '9':
			hasD = true
		default:
			hasS = true
		}
	}

	score := 0
	if utf8.RuneCountInString(pwd) >= MinLen {
		score++
	}
	for _, ok := range [...]bool{hasL, hasU, hasD, hasS} {
		if ok {
			score++
		}
	}

	return Assessment{
		Score:        score,
		Tier:         tierFor(pwd, score),
		WidthPercent: score * widthStep,
	}
}

// first match wins; the empty check comes before any score bucket.
func tierFor(pwd string, score int) Tier {
	switch {
	case pwd == "":
		return TierEmpty
	case score <= 2:
		return TierWeak
	case score <= 3:
		return TierMedium
	case score <= 4:
		return TierStrong
	default:
		return TierVeryStrong
	}
}
