package validate_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/5w1tchy/vitallife-forms/internal/validate"
)

func TestCoerceString(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{`"abc"`, "abc"},
		{`""`, ""},
		{`null`, ""},
		{`42`, ""},
		{`true`, ""},
		{`["a"]`, ""},
		{`{"a":1}`, ""},
		{``, ""},
		{`"ñandú"`, "ñandú"},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, validate.CoerceString(json.RawMessage(tt.raw)))
		})
	}
}

func TestParseFlag(t *testing.T) {
	for _, s := range []string{"1", "true", "TRUE", " yes ", "on"} {
		assert.True(t, validate.ParseFlag(s), s)
	}
	for _, s := range []string{"", "0", "false", "nope"} {
		assert.False(t, validate.ParseFlag(s), s)
	}
}

func TestClampLen(t *testing.T) {
	assert.Equal(t, "abc", validate.ClampLen("abc", 10))
	assert.Equal(t, "ab", validate.ClampLen("abc", 2))
	assert.Equal(t, "abc", validate.ClampLen("abc", 0))
	// "ñ" is two bytes; cutting in the middle backs off to the rune start
	assert.Equal(t, "a", validate.ClampLen("añ", 2))
}

func TestGrouping(t *testing.T) {
	assert.NoError(t, validate.Grouping(".", 3))
	assert.NoError(t, validate.Grouping("", 4))
	assert.NoError(t, validate.Grouping(" ", 1))

	assert.Error(t, validate.Grouping(".", 0))
	assert.Error(t, validate.Grouping("7", 3))
	assert.Error(t, validate.Grouping("K", 3))
	assert.Error(t, validate.Grouping("--", 3))
}
