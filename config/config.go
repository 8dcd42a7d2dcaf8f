// Package config provides the TOML configuration of the xr30 command line
// tool.
package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/BurntSushi/toml"

	"github.com/BackendStack21/xr30256-go/log"
	"github.com/BackendStack21/xr30256-go/utils"
)

const (
	defaultLogLevel = "NOTICE"
	defaultFormat   = "json"
	defaultOn       = "#"
	defaultOff      = " "
)

// Logging is the logging configuration.
type Logging struct {
	// Disable disables logging entirely.
	Disable bool

	// File specifies the log file; if omitted, standard error is used.
	File string

	// Level specifies the log level.
	Level string
}

func (lCfg *Logging) validate() error {
	if _, err := log.LevelFromString(lCfg.Level); err != nil {
		return fmt.Errorf("config: Logging: %v", err)
	}
	return nil
}

// Batch is the bulk encryption configuration.
type Batch struct {
	// Workers is the number of goroutines used; 0 uses GOMAXPROCS.
	Workers int

	// MaxBlocks is the largest number of blocks processed in one call.
	MaxBlocks int
}

func (bCfg *Batch) validate() error {
	if bCfg.Workers < 0 {
		return errors.New("config: Batch: Workers must not be negative")
	}
	if err := utils.CheckPositive(bCfg.MaxBlocks, "MaxBlocks"); err != nil {
		return fmt.Errorf("config: Batch: %v", err)
	}
	return nil
}

// Output is the configuration of written files and CA renderings.
type Output struct {
	// KeyFormat is the default key file format, "json" or "cbor".
	KeyFormat string

	// On and Off are the characters used for live and dead cells.
	On  string
	Off string
}

func (oCfg *Output) validate() error {
	switch oCfg.KeyFormat {
	case "json", "cbor":
	default:
		return fmt.Errorf("config: Output: invalid KeyFormat '%v'", oCfg.KeyFormat)
	}
	if len([]rune(oCfg.On)) != 1 || len([]rune(oCfg.Off)) != 1 {
		return errors.New("config: Output: On and Off must be single characters")
	}
	return nil
}

// Config is the top level configuration.
type Config struct {
	Logging *Logging
	Batch   *Batch
	Output  *Output
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := new(Config)
	if err := cfg.FixupAndValidate(); err != nil {
		panic("config: invalid defaults: " + err.Error())
	}
	return cfg
}

// FixupAndValidate applies defaults to config entries and validates the
// configuration.
func (cfg *Config) FixupAndValidate() error {
	if cfg.Logging == nil {
		cfg.Logging = &Logging{}
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = defaultLogLevel
	}
	if cfg.Batch == nil {
		cfg.Batch = &Batch{}
	}
	if cfg.Batch.MaxBlocks == 0 {
		cfg.Batch.MaxBlocks = utils.MaxBatchBlocks
	}
	if cfg.Output == nil {
		cfg.Output = &Output{}
	}
	if cfg.Output.KeyFormat == "" {
		cfg.Output.KeyFormat = defaultFormat
	}
	if cfg.Output.On == "" {
		cfg.Output.On = defaultOn
	}
	if cfg.Output.Off == "" {
		cfg.Output.Off = defaultOff
	}

	if err := cfg.Logging.validate(); err != nil {
		return err
	}
	if err := cfg.Batch.validate(); err != nil {
		return err
	}
	return cfg.Output.validate()
}

// Workers returns the effective worker count of the batch engine.
func (cfg *Config) Workers() int {
	if cfg.Batch.Workers == 0 {
		return runtime.GOMAXPROCS(0)
	}
	return cfg.Batch.Workers
}

// Load parses and validates the provided buffer b as a config file body and
// returns the Config.
func Load(b []byte) (*Config, error) {
	cfg := new(Config)
	md, err := toml.Decode(string(b), cfg)
	if err != nil {
		return nil, err
	}
	if undecoded := md.Undecoded(); len(undecoded) != 0 {
		return nil, fmt.Errorf("config: Undecoded keys in config file: %v", undecoded)
	}
	if err := cfg.FixupAndValidate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile loads, parses and validates the provided file and returns the
// Config.
func LoadFile(f string) (*Config, error) {
	b, err := os.ReadFile(f)
	if err != nil {
		return nil, err
	}
	return Load(b)
}
