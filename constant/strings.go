package constant

import "time"

// Request context keys
type contextKey string

const (
	RequestIDKey contextKey = "request_id"
	SessionIDKey contextKey = "session_id"
)

// HTTP header and cookie names
const (
	HeaderRequestID   = "X-Request-ID"
	SessionCookieName = "qrgen_session"
)

// Fixed rendering parameters for every generation request
const (
	PixelDimension    = 400
	MarginModules     = 2
	BackgroundColor   = "#ffffff"
	DefaultForeground = "#000000"
	ArtifactFileName  = "qrcode.png"
	CaptionPrefix     = "QR for: "
	NotificationTTL   = 2000 * time.Millisecond
	NotificationText  = "Link copied to clipboard!"
	DataURIPrefixPNG  = "data:image/png;base64,"
	ContentTypePNG    = "image/png"
	ContentTypeJSON   = "application/json"
	ContentTypeHTML   = "text/html; charset=utf-8"
)

// Function/Context names
const (
	// Domain context names
	CtxDomain          = "domain"
	CtxSetSourceText   = "SetSourceText"
	CtxSetForeground   = "SetForegroundColor"
	CtxGenerate        = "Generate"
	CtxDownload        = "Download"
	CtxCopyLink        = "CopyLink"
	CtxToggleTheme     = "ToggleTheme"
	CtxHideNotice      = "HideNotification"
	CtxEncode          = "Encode"
	CtxDecode          = "Decode"
	CtxClipboard       = "clipboard"
	CtxExport          = "export"
	CtxSessions        = "sessions"
	CtxAPI             = "api"
	CtxRouter          = "Router"
	CtxMain            = "Main"
	CtxConfig          = "config"
	CtxHandleState     = "GetState"
	CtxHandleText      = "UpdateText"
	CtxHandleColor     = "UpdateColor"
	CtxHandleGenerate  = "GenerateCode"
	CtxHandleDownload  = "DownloadCode"
	CtxHandleCopy      = "CopyLink"
	CtxHandleTheme     = "ToggleTheme"
	CtxHandleIndex     = "Index"
	CtxCommandGenerate = "GenerateCommand"
	CtxCommandDecode   = "DecodeCommand"
)

// Data field keys
const (
	DataService     = "service"
	DataTextLength  = "text_length"
	DataForeground  = "foreground"
	DataBackground  = "background"
	DataDimension   = "dimension"
	DataMargin      = "margin"
	DataModules     = "modules"
	DataSeq         = "seq"
	DataLatestSeq   = "latest_seq"
	DataSize        = "size"
	DataFileName    = "file_name"
	DataPath        = "path"
	DataTheme       = "theme"
	DataCapacity    = "capacity"
	DataSessions    = "sessions"
	DataMethod      = "method"
	DataStatus      = "status"
	DataLatency     = "latency"
	DataRemoteAddr  = "remote_addr"
	DataUserAgent   = "user_agent"
	DataPort        = "port"
	DataEnvironment = "environment"
	DataConfigPath  = "config_path"
)

// Error message constants
const (
	ErrEmptySourceText = "source text cannot be empty"
	ErrEmptyEncodeText = "text to encode cannot be empty"
	ErrInvalidColor    = "invalid hex colour"
	ErrNoArtifact      = "no QR code has been generated yet"
	ErrNoQRFound       = "no QR code found in image"
)

// Error codes
const (
	ErrCodeAPIDecodeRequest  = "API001"
	ErrCodeAPIServiceError   = "API002"
	ErrCodeAPIRender         = "API003"
	ErrCodeAppConfig         = "APP001"
	ErrCodeAppServerStart    = "APP002"
	ErrCodeAppServerShutdown = "APP003"
)

// Error types
const (
	ErrTypeAPI = "api"
	ErrTypeApp = "application"
)

// API routes
const (
	RouteIndex       = "/"
	RouteState       = "/api/state"
	RouteText        = "/api/text"
	RouteColor       = "/api/color"
	RouteGenerate    = "/api/generate"
	RouteDownload    = "/api/download"
	RouteCopy        = "/api/copy"
	RouteTheme       = "/api/theme"
	RouteHealthcheck = "/health"
)

// Log keys
const (
	LogTimeKey         = "time"
	LogLevelKey        = "level"
	LogNameKey         = "logger"
	LogCallerKey       = "caller"
	LogMessageKey      = "msg"
	LogStacktraceKey   = "stacktrace"
	LogRequestIDKey    = "request_id"
	LogSessionIDKey    = "session_id"
	LogFunctionKey     = "function"
	LogErrorCodeKey    = "error_code"
	LogErrorTypeKey    = "error_type"
	LogErrorMessageKey = "error_message"
	LogEncodingJSON    = "json"
	LogEncodingConsole = "console"
	LogOutputStderr    = "stderr"
)

// Environment constants
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Message constants for application
const (
	MsgApplicationStarting   = "Application starting"
	MsgFailedToLoadConfig    = "Failed to load configuration"
	MsgServerStarting        = "Server starting"
	MsgServerFailedToStart   = "Server failed to start"
	MsgServerShuttingDown    = "Server shutting down"
	MsgServerShutdownError   = "Error during server shutdown"
	MsgServerStopped         = "Server stopped"
	MsgRequestReceived       = "Request received"
	MsgRequestCompleted      = "Request completed"
	MsgSettingUpRoutes       = "Setting up API routes"
	MsgHealthcheckRequest    = "Handling healthcheck request"
	MsgHealthy               = "Healthy"
	MsgPlaceholder           = "Enter a link and click Generate to see your QR code"
	MsgGenerateIgnoredEmpty  = "Generate ignored, source text is empty"
	MsgDownloadIgnoredNoCode = "Download ignored, nothing generated yet"
	MsgCopyIgnoredEmpty      = "Copy ignored, source text is empty"
)
