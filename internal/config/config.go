package config

import (
	"io/fs"
	"time"
)

// -----------------------------------------------------------------------------
// Build Information
// -----------------------------------------------------------------------------

// Build variables are injected via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// UserAgent identifies the HTTP client used to fetch remote pattern lists.
var UserAgent = "Calendar-Round/" + Version

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName           = "Calendar Round"
	AppID             = "com.github.tartampluch.go-calendar-round"
	CmdName           = "calendar-round"
	LocalhostBindAddr = "127.0.0.1"
	LogFileName       = "app.log"
)

// -----------------------------------------------------------------------------
// Exit Codes
// -----------------------------------------------------------------------------

const (
	ExitCodeSuccess = 0
	ExitCodeError   = 1
)

// -----------------------------------------------------------------------------
// System & File Permissions
// -----------------------------------------------------------------------------

const (
	// FilePermUserRW represents -rw------- (Read/Write for owner only).
	FilePermUserRW fs.FileMode = 0600

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	DirPermUserRWX fs.FileMode = 0700

	// ChannelBufferSize defines the standard buffer size for internal signaling channels.
	ChannelBufferSize = 1
)

// -----------------------------------------------------------------------------
// CLI Commands & Descriptions
// -----------------------------------------------------------------------------

const (
	CmdNext     = "next"
	CmdShift    = "shift"
	CmdMatch    = "match"
	CmdSearch   = "search"
	CmdValidate = "validate"
	CmdResolve  = "resolve"
	CmdServe    = "serve"
	CmdVersion  = "version"

	CmdDescRoot     = "arithmetic and matching over the Mesoamerican Calendar Round"
	CmdDescNext     = "print the Calendar Round date that follows the given date"
	CmdDescShift    = "shift a Calendar Round date by a signed number of days"
	CmdDescMatch    = "compare two Calendar Round dates for equality and wildcard match"
	CmdDescSearch   = "list full dates matching a partial Calendar Round pattern"
	CmdDescValidate = "check coefficient ranges and Calendar Round reachability"
	CmdDescResolve  = "resolve a list of Calendar Round patterns from a file or URL"
	CmdDescServe    = "serve the Calendar Round JSON API over HTTP"
	CmdDescVersion  = "show application version and exit"

	ArgDate    = "<date>"
	ArgDays    = "<days>"
	ArgPattern = "<pattern>"

	MsgVersionOutput = "%s version %s (commit %s, built %s, %s/%s)\n"
)

// -----------------------------------------------------------------------------
// Notation
// -----------------------------------------------------------------------------

const (
	// WildcardToken marks an unknown coefficient or name in the display form.
	WildcardToken = "*"

	// DateFieldCount is the number of whitespace separated tokens in a date.
	DateFieldCount = 4

	// EpochDate is the Calendar Round date used as day 0 of the cycle.
	EpochDate = "4 Ajaw 8 Kumk'u"
)

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

const (
	TKeyLblEqual       = "lbl_equal"
	TKeyLblMatch       = "lbl_match"
	TKeyLblPartial     = "lbl_partial"
	TKeyLblValid       = "lbl_valid"
	TKeyLblInvalid     = "lbl_invalid"
	TKeyLblMatches     = "lbl_matches"
	TKeyLblNoMatches   = "lbl_no_matches"
	TKeyLblYes         = "lbl_yes"
	TKeyLblNo          = "lbl_no"
	TKeyLblDaysUntil   = "lbl_days_until"
	TKeyReportLine     = "report_line"    // Requires Pattern, Count
	TKeyReportSkipped  = "report_skipped" // Requires Count
	TKeyPrefixDay      = "day_"
	TKeyPrefixMonth    = "month_"
	TKeyFormatTzolkin  = "format_tzolkin" // Requires Coeff, Name
	TKeyFormatHaab     = "format_haab"    // Requires Coeff, Name
	TKeyFormatCalRound = "format_calendar_round"
)

// -----------------------------------------------------------------------------
// Default Values & Business Logic
// -----------------------------------------------------------------------------

const (
	SourceModeWeb      = "web"
	SourceModeLocal    = "local"
	DefaultPort        = "18980"
	DefaultLanguage    = "en"
	DefaultSearchLimit = 20
	MaxSearchLimit     = 18980
	CommentPrefix      = "#"
)

// SupportedLanguages defines the list of bundled locales (ISO 639-1).
var SupportedLanguages = []string{"en", "es"}

// -----------------------------------------------------------------------------
// Network & Timeouts
// -----------------------------------------------------------------------------

const (
	HTTPTimeout         = 30 * time.Second
	ShutdownTimeout     = 5 * time.Second
	ServerReadTimeout   = 10 * time.Second
	ServerWriteTimeout  = 30 * time.Second
	ServerIdleTimeout   = 60 * time.Second
	AllowedMethods      = "GET, HEAD"
	MaxHTTPResponseSize = 4 * 1024 * 1024 // 4MB of patterns is plenty
	SchemeHTTP          = "http"
	SchemeHTTPS         = "https"
	AddrSeparator       = ":"
)

// -----------------------------------------------------------------------------
// HTTP Routes & Query Parameters
// -----------------------------------------------------------------------------

const (
	RouteNext     = "/next"
	RouteShift    = "/shift"
	RouteMatch    = "/match"
	RouteSearch   = "/search"
	RouteValidate = "/validate"

	ParamDate    = "date"
	ParamDays    = "days"
	ParamA       = "a"
	ParamB       = "b"
	ParamPattern = "pattern"
	ParamFrom    = "from"
	ParamLimit   = "limit"
	ParamLang    = "lang"
)

// -----------------------------------------------------------------------------
// HTTP Headers & MIME Types
// -----------------------------------------------------------------------------

const (
	HeaderContentType  = "Content-Type"
	HeaderCacheControl = "Cache-Control"
	HeaderETag         = "ETag"
	HeaderAllow        = "Allow"
	HeaderXContentType = "X-Content-Type-Options"
	HeaderUserAgent    = "User-Agent"
	HeaderIfNoneMatch  = "If-None-Match"
	HeaderAccept       = "Accept"

	MimeJSON           = "application/json; charset=utf-8"
	MimeNoSniff        = "nosniff"
	MimeTextPlain      = "text/plain"
	MimeOctetStream    = "application/octet-stream"
	CacheControlPublic = "public, max-age=86400"

	// FormatETag expects a string argument.
	FormatETag = `"%s"`
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrLocalPathEmpty = "configuration error: local path is empty"
	ErrWebURLEmpty    = "configuration error: web URL is empty"
	ErrFetcherMissing = "internal error: network fetcher is not initialized"
	ErrModeUnsupport  = "configuration error: unsupported source mode"
	ErrServerStartup  = "server startup failed"
	ErrServerShutdown = "server shutdown failed"
	ErrPortRequired   = "server port is required"
	ErrInvalidURL     = "invalid URL structure"
	ErrProtocol       = "unsupported protocol scheme (http/https only)"
	ErrPatternSource  = "failed to read pattern source"
	ErrPatternLine    = "invalid pattern"
	ErrDateParse      = "unable to parse calendar round date"
	ErrDaysParse      = "unable to parse day offset"
	ErrLimitParse     = "unable to parse search limit"
	ErrLogFile        = "failed to open log file"
	ErrCacheDir       = "could not determine user cache dir"
	ErrCreateDir      = "could not create app cache dir"
	ErrAppFailed      = "application failed unexpectedly"
	ErrWriteResp      = "failed to write response body"
	ErrEncodeResp     = "failed to encode response"
	ErrLocalesAccess  = "failed to access embedded locales"
	ErrLocaleLoad     = "failed to load locale file"
	ErrLangUnknown    = "unsupported language"
	ErrFetchStatus    = "server returned unexpected status"
	ErrContentType    = "pattern list must be served as text/plain"
	ErrTooLarge       = "pattern list exceeds the size limit"
)

// -----------------------------------------------------------------------------
// HTTP Server Responses
// -----------------------------------------------------------------------------

const (
	HTTPMsgMethodNotAll = "Method Not Allowed"
	HTTPMsgInternalErr  = "Internal Server Error"
)

// -----------------------------------------------------------------------------
// Log Messages
// -----------------------------------------------------------------------------

const (
	MsgAppStarting   = "Starting application"
	MsgAppStop       = "Application stopped gracefully"
	MsgResolveStart  = "Pattern resolution started"
	MsgResolveDone   = "Pattern resolution finished"
	MsgSkippedLine   = "Skipping malformed pattern"
	MsgServerListen  = "HTTP server listening"
	MsgServerStop    = "Shutting down HTTP server..."
	MsgLangSwitched  = "Default language switched"
	MsgLocaleSkip    = "Skipping non-locale file"
	MsgLocaleBadName = "Skipping malformed locale filename"
	MsgLocaleLoaded  = "Locale loaded successfully"
	MsgTransMissing  = "Missing translation key"
	MsgLogWarning    = "Warning: %s at %s: %v\n"
	MsgFetchStart    = "Initiating pattern download"
	MsgFetchStatus   = "Server returned error status"
	MsgFetching      = "Patterns downloading"
	MsgBadRequest    = "Rejected request"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyURL       = "url"
	LogKeyStatus    = "status_code"
	LogKeyFile      = "file"
	LogKeyLang      = "lang"
	LogKeyKey       = "key"
	LogKeyPort      = "port"
	LogKeyMode      = "mode"
	LogKeyLine      = "line"
	LogKeyValue     = "value"
	LogKeyStats     = "stats"
	LogKeyTotal     = "total_lines"
	LogKeyResolved  = "resolved"
	LogKeySkipped   = "skipped"
	LogKeyRoute     = "route"
	LogKeyCommand   = "command"
	LogKeySizeBytes = "content_length"
	LogKeyDuration  = "duration_ms"

	// Startup Info Keys
	LogKeyBuild   = "build"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
	LogKeyGoVer   = "go_version"
	LogKeyEnv     = "env"
	LogKeyOS      = "os"
	LogKeyArch    = "arch"
	LogKeyPID     = "pid"
)

// -----------------------------------------------------------------------------
// Log Components
// -----------------------------------------------------------------------------

const (
	CompEngine  = "engine"
	CompServer  = "server"
	CompFetcher = "fetcher"
	CompMain    = "main"
	CompI18n    = "i18n"
)
