package formcheck

import (
	"bytes"
	"encoding/json"
	"flag"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/5w1tchy/vitallife-forms/internal/config"
	"github.com/5w1tchy/vitallife-forms/internal/rut"
	"github.com/5w1tchy/vitallife-forms/internal/security/password"
)

var defaults = config.FormsConfig{PasswordHelp: "ayuda", GroupSeparator: ".", GroupSize: 3}

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("formcheck", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"rut", "12345678k"}, defaults)
	require.NoError(t, err)

	assert.Equal(t, ModeRut, cfg.Mode)
	assert.Equal(t, rut.Chilean, cfg.Grouping)
	assert.Equal(t, "ayuda", cfg.Help)
	assert.Equal(t, []string{"12345678k"}, cfg.Values)
	assert.False(t, cfg.JSON)
}

func TestParseConfigOverride(t *testing.T) {
	fs := flag.NewFlagSet("formcheck", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"strength", "-json", "-advisory", "-sep", ",", "-group", "4"}, defaults)
	require.NoError(t, err)

	assert.Equal(t, ModeStrength, cfg.Mode)
	assert.True(t, cfg.JSON)
	assert.True(t, cfg.Advisory)
	assert.Equal(t, rut.Grouping{Separator: ",", Size: 4}, cfg.Grouping)
	assert.Empty(t, cfg.Values)
}

func TestParseConfigErrors(t *testing.T) {
	for _, args := range [][]string{
		nil,
		{"email"},
		{"rut", "-nope"},
		{"rut", "-sep", "1"},
		{"rut", "-sep", "k"},
		{"rut", "-sep", " - "},
		{"rut", "-group", "0"},
		{"strength", "-group", "-3"},
	} {
		fs := flag.NewFlagSet("formcheck", flag.ContinueOnError)
		fs.SetOutput(&bytes.Buffer{})
		_, err := ParseConfig(fs, args, defaults)
		assert.Error(t, err, args)
	}
}

func TestRunRut(t *testing.T) {
	buf := &bytes.Buffer{}
	cfg := Config{Mode: ModeRut, Grouping: rut.Chilean, Values: []string{"12345678k", "1", "abc123!!!4k"}}
	require.NoError(t, Run(cfg, nil, buf))

	assert.Equal(t, "12.345.678-K\n1\n1.234-K\n", buf.String())
}

func TestRunRutFromStdinJSON(t *testing.T) {
	buf := &bytes.Buffer{}
	cfg := Config{Mode: ModeRut, JSON: true, Grouping: rut.Chilean}
	require.NoError(t, Run(cfg, strings.NewReader("123456785\r\n0012345\n"), buf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var got rutLine
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &got))
	assert.Equal(t, rutLine{Input: "123456785", Formatted: "12.345.678-5"}, got)
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &got))
	assert.Equal(t, "1.234-5", got.Formatted)
}

func TestRunStrength(t *testing.T) {
	buf := &bytes.Buffer{}
	cfg := Config{Mode: ModeStrength, Help: "ayuda", Values: []string{"", "abc", "Abcdef1!"}}
	require.NoError(t, Run(cfg, nil, buf))

	assert.Equal(t,
		"0\tEMPTY\t0%\tayuda\n"+
			"1\tWEAK\t20%\tFortaleza: Débil\n"+
			"5\tVERY_STRONG\t100%\tFortaleza: Muy Fuerte\n",
		buf.String())
}

func TestRunStrengthJSONAdvisory(t *testing.T) {
	buf := &bytes.Buffer{}
	cfg := Config{Mode: ModeStrength, JSON: true, Advisory: true, Values: []string{"Abcdef1!"}}
	require.NoError(t, Run(cfg, nil, buf))

	var got struct {
		Score    int    `json:"score"`
		Tier     string `json:"tier"`
		Text     string `json:"text"`
		Advisory *struct {
			Score int `json:"score"`
		} `json:"advisory"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, 5, got.Score)
	assert.Equal(t, "VERY_STRONG", got.Tier)
	assert.Equal(t, "Fortaleza: Muy Fuerte", got.Text)
	require.NotNil(t, got.Advisory)
}

func TestRunStrengthAdvisoryLongInput(t *testing.T) {
	long := strings.Repeat("Ab1!", 2500)
	buf := &bytes.Buffer{}
	cfg := Config{Mode: ModeStrength, JSON: true, Advisory: true, Values: []string{long}}
	require.NoError(t, Run(cfg, nil, buf))

	var got struct {
		Score    int                `json:"score"`
		Advisory *password.Advisory `json:"advisory"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, 5, got.Score)
	require.NotNil(t, got.Advisory)
	assert.Equal(t, password.Estimate(long[:password.EstimateMaxLen]), *got.Advisory)
}

func TestRunNilOutput(t *testing.T) {
	assert.Error(t, Run(Config{Mode: ModeRut, Values: []string{"1"}}, nil, nil))
}

func TestRunNoInput(t *testing.T) {
	assert.Error(t, Run(Config{Mode: ModeRut}, nil, &bytes.Buffer{}))
}
