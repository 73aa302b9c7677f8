package scopelog

const (
	// ServiceName is the DI/service locator name for the logging service.
	ServiceName = "scopelog"
	emptyString = ""

	defaultCategory          = "APP"
	defaultShutdownTimeoutMS = 1000
	defaultNATSSubject       = "scopelog"
	defaultNATSBuffer        = 1000
	defaultBufferSize        = 256
	defaultLogFileName       = "scopelog.log"
	defaultSyslogTag         = "scopelog"
)

const (
	errMsgNilConfig       = "Logging config is nil."
	errMsgNilService      = "Logger service is nil."
	errMsgConfigInvalid   = "Logging configuration is invalid."
	errMsgAbsLogDir       = "Log file directory must be relative to the working directory."
	errMsgConfigRead      = "Logging config file could not be read."
	errMsgConfigParse     = "Logging config file could not be parsed."
	errMsgLogDir          = "Failed to create logs directory."
	errMsgLockFile        = "Failed to create log file lock."
	errMsgNATSConnect     = "Failed to connect to the NATS server."
	errMsgSyslogDial      = "Failed to connect to syslog."
	errMsgSyslogUnavail   = "Syslog is not available on this platform."
	errMsgJSONFile        = "Failed to open JSON log file."
	errMsgEventEncode     = "Failed to encode event."
	errMsgEventDecode     = "Failed to decode event."
	errMsgSinkWrite       = "Sink failed to write event."
	errMsgSinkDropped     = "Sink dropped buffered event."
	errMsgShutdownTimeout = "Timed out waiting for in-flight log events."
)
