// Package constants provides shared constants for the mortgage-calculator application.
package constants

// DateTimeLayout is the month format used for amortization schedule dates.
const DateTimeLayout = "2006-01"

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// DecimalPlaces is the number of fraction digits kept for currency values
	DecimalPlaces = 2

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01
)

// Loan bounds accepted by the calculator
const (
	// MaxLoanAmount is the largest mortgage amount accepted
	MaxLoanAmount = 1e12

	// MaxTermYears is the longest mortgage term accepted, in years
	MaxTermYears = 100

	// MaxAnnualRatePercent is the highest annual interest rate accepted
	MaxAnnualRatePercent = 100.0
)

// Repayment type identifiers as submitted by the form and the JSON API.
const (
	RepaymentTypeRepayment    = "repayment"
	RepaymentTypeInterestOnly = "interestOnly"
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatJSON is the JSON output format
	OutputFormatJSON = "json"

	// OutputFormatYAML is the YAML output format
	OutputFormatYAML = "yaml"
)

// Display defaults
const (
	// DefaultLocale drives digit grouping of rendered amounts
	DefaultLocale = "en-GB"

	// DefaultCurrencySymbol is prefixed to every rendered amount
	DefaultCurrencySymbol = "£"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// EnvPrefix is the prefix for environment variable overrides
	EnvPrefix = "MORTGAGE"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the web UI
	DefaultServerAddress = ":8080"

	// DefaultMaxBodySizeBytes is the default maximum request body size (64 KB)
	DefaultMaxBodySizeBytes int64 = 64 * 1024

	// DefaultRequestsPerSecond is the default sustained request rate
	DefaultRequestsPerSecond = 10.0

	// DefaultRateBurst is the default burst size of the rate limiter
	DefaultRateBurst = 30
)

// Session defaults
const (
	// SessionBackendMemory keeps results in process memory
	SessionBackendMemory = "memory"

	// SessionBackendRedis keeps results in redis
	SessionBackendRedis = "redis"

	// DefaultSessionCookieName is the cookie carrying the session id
	DefaultSessionCookieName = "mortgage_session"

	// DefaultSessionTTL is the default lifetime of a stored result
	DefaultSessionTTL = "30m"

	// DefaultRedisAddress is the default redis endpoint
	DefaultRedisAddress = "localhost:6379"
)
