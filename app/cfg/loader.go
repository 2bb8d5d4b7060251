package cfg

import (
	"cmp"
	"fmt"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	ConfigFile      string `long:"config" env:"POCKETCOMB_CONFIG" default:"_pocketcomb.yml" description:"Path to the pocket-comb configuration file"`
	Timeout         int    `long:"timeout" env:"POCKETCOMB_TIMEOUT" default:"30" description:"HTTP timeout in seconds for API and article requests"`
	SummaryLanguage string `long:"summary-language" env:"SUMMARY_LANGUAGE" default:"en" description:"Language for generated excerpt summaries (BCP 47 tag)"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"Pocket Comb/1.0" description:"User agent string for HTTP requests"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`

	Args struct {
		Command string `positional-arg-name:"command" description:"Command to run: init, auth or sync"`
	} `positional-args:"yes" required:"yes"`
}

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	switch raw.Args.Command {
	case "init", "auth", "sync":
	default:
		return nil, fmt.Errorf("unknown command %q, expected init, auth or sync", raw.Args.Command)
	}

	cfg := &Cfg{
		Command:         raw.Args.Command,
		ConfigFile:      raw.ConfigFile,
		Timeout:         raw.Timeout,
		SummaryLanguage: raw.SummaryLanguage,
		UserAgent:       raw.UserAgent,
		Debug:           raw.Debug,
		Version:         GetVersion(),
	}

	return cfg, nil
}
