// Package formcheck runs the form helpers over command-line values or stdin,
// one value per line, so support staff can check what the page will show.
package formcheck

import (
	"bufio"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/5w1tchy/vitallife-forms/internal/config"
	"github.com/5w1tchy/vitallife-forms/internal/forms"
	"github.com/5w1tchy/vitallife-forms/internal/rut"
	"github.com/5w1tchy/vitallife-forms/internal/security/password"
	"github.com/5w1tchy/vitallife-forms/internal/validate"
)

const (
	ModeStrength = "strength"
	ModeRut      = "rut"
)

// Config holds configuration for a formcheck run.
type Config struct {
	Mode     string
	JSON     bool
	Advisory bool
	Help     string
	Grouping rut.Grouping
	Values   []string
}

// ParseConfig parses "<mode> [flags] [values...]". Defaults come from the
// environment-backed forms config.
func ParseConfig(fs *flag.FlagSet, args []string, defaults config.FormsConfig) (Config, error) {
	cfg := Config{
		Help:     defaults.PasswordHelp,
		Grouping: defaults.Grouping(),
	}
	if len(args) == 0 {
		return Config{}, errors.New("mode is required: strength or rut")
	}
	cfg.Mode, args = args[0], args[1:]

	fs.BoolVar(&cfg.JSON, "json", false, "print one JSON object per value")
	fs.BoolVar(&cfg.Advisory, "advisory", false, "add the zxcvbn estimate (strength only)")
	fs.StringVar(&cfg.Grouping.Separator, "sep", cfg.Grouping.Separator, "RUT group separator")
	fs.IntVar(&cfg.Grouping.Size, "group", cfg.Grouping.Size, "RUT group size")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	cfg.Values = fs.Args()
	if err := validate.Grouping(cfg.Grouping.Separator, cfg.Grouping.Size); err != nil {
		return Config{}, fmt.Errorf("-sep/-group: %w", err)
	}

	switch cfg.Mode {
	case ModeStrength, ModeRut:
	default:
		return Config{}, fmt.Errorf("unknown mode %q", cfg.Mode)
	}
	return cfg, nil
}

type strengthLine struct {
	password.Assessment
	Text     string             `json:"text"`
	Advisory *password.Advisory `json:"advisory,omitempty"`
}

type rutLine struct {
	Input     string `json:"input"`
	Formatted string `json:"formatted"`
}

// Run processes cfg.Values, or every line of in when there are none.
func Run(cfg Config, in io.Reader, out io.Writer) error {
	if out == nil {
		return errors.New("output is required")
	}

	values := cfg.Values
	if len(values) == 0 {
		if in == nil {
			return errors.New("no values and no input")
		}
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			values = append(values, strings.TrimRight(sc.Text(), "\r"))
		}
		if err := sc.Err(); err != nil {
			return fmt.Errorf("read input: %w", err)
		}
	}

	f := rut.Formatter{Grouping: cfg.Grouping}
	enc := json.NewEncoder(out)
	for _, v := range values {
		var err error
		switch cfg.Mode {
		case ModeRut:
			line := rutLine{Input: v, Formatted: f.Format(v)}
			if cfg.JSON {
				err = enc.Encode(line)
			} else {
				_, err = fmt.Fprintln(out, line.Formatted)
			}
		default:
			a := password.Assess(v)
			line := strengthLine{Assessment: a, Text: forms.ViewFor(a, cfg.Help).Text}
			if cfg.Advisory {
				adv := password.Estimate(validate.ClampLen(v, password.EstimateMaxLen))
				line.Advisory = &adv
			}
			if cfg.JSON {
				err = enc.Encode(line)
			} else {
				err = writeStrength(out, line)
			}
		}
		if err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	}
	return nil
}

func writeStrength(out io.Writer, l strengthLine) error {
	text := l.Text
	if text == "" {
		text = "-"
	}
	if l.Advisory == nil {
		_, err := fmt.Fprintf(out, "%d\t%s\t%d%%\t%s\n", l.Score, l.Tier, l.WidthPercent, text)
		return err
	}
	_, err := fmt.Fprintf(out, "%d\t%s\t%d%%\t%s\tzxcvbn=%d (%s)\n",
		l.Score, l.Tier, l.WidthPercent, text, l.Advisory.Score, l.Advisory.CrackTime)
	return err
}
