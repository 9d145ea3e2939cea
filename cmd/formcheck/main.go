package main

import (
	"flag"
	"os"

	"github.com/5w1tchy/vitallife-forms/internal/config"
	"github.com/5w1tchy/vitallife-forms/internal/tools/formcheck"
)

func main() {
	env, err := config.Parse()
	if err != nil {
		config.Exitf("%v", err)
	}
	cfg, err := formcheck.ParseConfig(flag.CommandLine, os.Args[1:], env.Forms)
	if err != nil {
		config.Exitf("parse flags: %v", err)
	}
	if err := formcheck.Run(cfg, os.Stdin, os.Stdout); err != nil {
		config.Exitf("formcheck: %v", err)
	}
}
