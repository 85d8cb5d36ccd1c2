package logger

// Console configures logging to stdout and stderr.
type Console struct {
	Enabled bool `toml:"enabled"`
	// Pretty switches from JSON lines to zerolog's human readable console format.
	Pretty bool `toml:"pretty"`
}

// Rotation configures one lumberjack rolled file.
type Rotation struct {
	Name       string `toml:"name"`
	MaxSize    int    `toml:"maxSize"` // megabytes
	MaxBackups int    `toml:"maxBackups"`
	MaxAge     int    `toml:"maxAge"` // days
}

// LogFile configures file logging, one file per level group.
type LogFile struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`

	Access Rotation `toml:"access"`
	Error  Rotation `toml:"error"`
	Info   Rotation `toml:"info"`
	Trace  Rotation `toml:"trace"`
	Warn   Rotation `toml:"warn"`
}

// Log is the logger configuration.
type Log struct {
	Level       string `toml:"level"` // trace, debug, info, warn, error
	AppName     string `toml:"appName"`
	ServiceName string `toml:"serviceName"`

	// AccessLogToConsole also writes access lines to stdout when Console is enabled.
	AccessLogToConsole bool `toml:"accessLogToConsole"`
	ReportCaller       bool `toml:"reportCaller"`
	// SkipCheckAlive drops access lines of the health check URI.
	SkipCheckAlive bool `toml:"skipCheckAlive"`

	Console Console `toml:"console"`
	File    LogFile `toml:"file"`
}
