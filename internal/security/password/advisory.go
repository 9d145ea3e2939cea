package password

import (
	"strings"

	zxcvbn "github.com/ccojocar/zxcvbn-go"
)

// EstimateMaxLen is the longest input, in bytes, callers should hand to
// Estimate. zxcvbn's matching grows quickly with length.
const EstimateMaxLen = 256

// Advisory is a second opinion from zxcvbn. It is informational only and never
// feeds back into Assess.
type Advisory struct {
	Score     int     `json:"score"` // 0..4
	Entropy   float64 `json:"entropy"`
	CrackTime string  `json:"crack_time"`
}

// Estimate runs zxcvbn over pwd. Hints (email, name, ...) are matched as
// dictionary words so a password built from them scores lower.
func Estimate(pwd string, hints ...string) Advisory {
	if pwd == "" {
		return Advisory{}
	}
	inputs := make([]string, 0, len(hints))
	for _, h := range hints {
		h = strings.ToLower(strings.TrimSpace(h))
		if h != "" {
			inputs = append(inputs, h)
		}
	}
	res := zxcvbn.PasswordStrength(pwd, inputs)
	return Advisory{
		Score:     res.Score,
		Entropy:   res.Entropy,
		CrackTime: res.CrackTimeDisplay,
	}
}
