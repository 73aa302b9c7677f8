package scopelog

import (
	"os"

	"github.com/Station-Manager/errors"
	"github.com/pelletier/go-toml/v2"
)

// Config holds the settings Service.Initialize builds its pipeline from.
type Config struct {
	Category         string   `toml:"category" validate:"required"`
	Style            string   `toml:"style" validate:"omitempty,oneof=plain emoji colored"`
	Options          []string `toml:"options" validate:"dive,oneof=sign time level category padding type location metadata compact regular all"`
	IntervalOptions  []string `toml:"interval_options" validate:"dive,oneof=duration count total min max average compact regular all"`
	MinType          string   `toml:"min_type" validate:"omitempty,oneof=log trace debug info warning error assert fault"`
	Categories       []string `toml:"categories" validate:"dive,required"`
	DiagnosticsLevel string   `toml:"diagnostics_level" validate:"omitempty,oneof=trace debug info warn error fatal panic disabled"`

	ShutdownTimeoutMS      int  `toml:"shutdown_timeout_ms" validate:"gte=0"`
	ShutdownTimeoutWarning bool `toml:"shutdown_timeout_warning"`

	Console ConsoleConfig `toml:"console"`
	File    FileConfig    `toml:"file"`
	JSON    JSONConfig    `toml:"json"`
	NATS    NATSConfig    `toml:"nats"`
	Syslog  SyslogConfig  `toml:"syslog"`
	Buffer  BufferConfig  `toml:"buffer"`
}

type ConsoleConfig struct {
	Enabled bool `toml:"enabled"`
	Stderr  bool `toml:"stderr"`
}

type FileConfig struct {
	Enabled       bool   `toml:"enabled"`
	RelLogFileDir string `toml:"rel_log_file_dir" validate:"required_if=Enabled true"`
	FileName      string `toml:"file_name"`
	MaxSizeMB     int    `toml:"max_size_mb" validate:"gte=0"`
	MaxBackups    int    `toml:"max_backups" validate:"gte=0"`
	MaxAgeDays    int    `toml:"max_age_days" validate:"gte=0"`
	Compress      bool   `toml:"compress"`
	Lock          bool   `toml:"lock"`
}

type JSONConfig struct {
	Enabled bool `toml:"enabled"`
	// RelPath is the output file relative to the working directory. Empty
	// writes to stdout.
	RelPath string `toml:"rel_path"`
	Console bool   `toml:"console"`
	NoColor bool   `toml:"no_color"`
}

type NATSConfig struct {
	Enabled       bool   `toml:"enabled"`
	URL           string `toml:"url" validate:"required_if=Enabled true"`
	Subject       string `toml:"subject"`
	Format        string `toml:"format" validate:"omitempty,oneof=text msgpack"`
	Name          string `toml:"name"`
	BufferSize    int    `toml:"buffer_size" validate:"gte=0"`
	MaxReconnects int    `toml:"max_reconnects"`
	ReconnectWait int    `toml:"reconnect_wait_ms" validate:"gte=0"`
}

type SyslogConfig struct {
	Enabled bool   `toml:"enabled"`
	Network string `toml:"network" validate:"omitempty,oneof=udp tcp unix unixgram"`
	Address string `toml:"address" validate:"required_with=Network"`
	Tag     string `toml:"tag"`
}

type BufferConfig struct {
	Enabled bool `toml:"enabled"`
	Size    int  `toml:"size" validate:"gte=0"`
}

// DefaultConfig returns a console-only configuration.
func DefaultConfig() *Config {
	return &Config{
		Category:          defaultCategory,
		Style:             "plain",
		MinType:           "log",
		DiagnosticsLevel:  "warn",
		ShutdownTimeoutMS: defaultShutdownTimeoutMS,
		Console:           ConsoleConfig{Enabled: true},
		File: FileConfig{
			RelLogFileDir: "logs",
			FileName:      defaultLogFileName,
			MaxSizeMB:     10,
			MaxBackups:    3,
			MaxAgeDays:    28,
		},
		NATS: NATSConfig{
			Subject:    defaultNATSSubject,
			Format:     "msgpack",
			BufferSize: defaultNATSBuffer,
		},
		Syslog: SyslogConfig{Tag: defaultSyslogTag},
		Buffer: BufferConfig{Size: defaultBufferSize},
	}
}

// LoadConfig reads a TOML file on top of DefaultConfig and validates it.
func LoadConfig(path string) (*Config, error) {
	const op errors.Op = "scopelog.LoadConfig"
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New(op).Err(err).Msg(errMsgConfigRead)
	}
	cfg := DefaultConfig()
	if err = toml.Unmarshal(data, cfg); err != nil {
		return nil, errors.New(op).Err(err).Msg(errMsgConfigParse)
	}
	if err = validateConfig(cfg); err != nil {
		return nil, errors.New(op).Err(err).Msg(errMsgConfigInvalid)
	}
	return cfg, nil
}
