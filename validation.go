package scopelog

import (
	"path/filepath"
	"strings"
	"sync"

	"github.com/Station-Manager/errors"
	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate
var once sync.Once

func validateConfig(cfg *Config) error {
	const op errors.Op = "scopelog.validateConfig"
	if cfg == nil {
		return errors.New(op).Msg(errMsgNilConfig)
	}

	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})

	normalizeConfig(cfg)

	if err := validate.Struct(cfg); err != nil {
		return errors.New(op).Err(err).Msg(errMsgConfigInvalid)
	}

	if cfg.File.Enabled && filepath.IsAbs(cfg.File.RelLogFileDir) {
		return errors.New(op).Msg(errMsgAbsLogDir)
	}
	if cfg.JSON.Enabled && cfg.JSON.RelPath != emptyString && filepath.IsAbs(cfg.JSON.RelPath) {
		return errors.New(op).Msg(errMsgAbsLogDir)
	}

	return nil
}

// normalizeConfig lowercases the enumerated settings, which are matched
// case-insensitively.
func normalizeConfig(cfg *Config) {
	lower := func(s string) string { return strings.ToLower(strings.TrimSpace(s)) }
	cfg.Style = lower(cfg.Style)
	cfg.MinType = lower(cfg.MinType)
	cfg.DiagnosticsLevel = lower(cfg.DiagnosticsLevel)
	cfg.NATS.Format = lower(cfg.NATS.Format)
	cfg.Syslog.Network = lower(cfg.Syslog.Network)
	for i, o := range cfg.Options {
		cfg.Options[i] = lower(o)
	}
	for i, o := range cfg.IntervalOptions {
		cfg.IntervalOptions[i] = lower(o)
	}
}
