package jsonassert

// Severity expresses the severity level for input issues.
type Severity int

const (
	Ignore Severity = iota
	Warn
	Error
)

// Strictness configures enforcement for duplicate object keys.
type Strictness struct {
	OnDuplicateKey Severity // Ignore keeps the last value; Warn logs; Error rejects the input.
}

// TimestampUnit selects how a JSON number is read as an instant.
type TimestampUnit int

const (
	TimestampSeconds      TimestampUnit = iota // Epoch seconds; fractional digits are sub-second.
	TimestampMilliseconds                      // Epoch milliseconds.
	TimestampNanoseconds                       // Epoch nanoseconds.
)

func (u TimestampUnit) String() string {
	switch u {
	case TimestampMilliseconds:
		return "milliseconds"
	case TimestampNanoseconds:
		return "nanoseconds"
	default:
		return "seconds"
	}
}

// Config bundles parser and reporting options for an assertion session.
// Nested sessions inherit the configuration of their parent.
type Config struct {
	Strictness Strictness
	MaxDepth   int   // 0 disables the check.
	MaxBytes   int64 // 0 disables the check.
	Timestamps TimestampUnit
	// FailFast calls FailNow on the TestingT after reporting a failure, the way
	// testify's require package does.
	FailFast bool
	// Driver overrides the global JSON driver for text input; nil uses CurrentJSONDriver.
	Driver JSONDriver
}

// DefaultConfig returns the configuration used when no options are given.
func DefaultConfig() Config {
	return Config{Strictness: Strictness{OnDuplicateKey: Error}}
}

// Option mutates a Config.
type Option func(*Config)

// WithConfig replaces the whole configuration.
func WithConfig(c Config) Option { return func(dst *Config) { *dst = c } }

// WithDuplicateKeys sets the duplicate key policy.
func WithDuplicateKeys(s Severity) Option {
	return func(c *Config) { c.Strictness.OnDuplicateKey = s }
}

// WithMaxDepth limits container nesting of parsed input.
func WithMaxDepth(n int) Option { return func(c *Config) { c.MaxDepth = n } }

// WithMaxBytes limits the consumed input size (drivers reporting offsets only).
func WithMaxBytes(n int64) Option { return func(c *Config) { c.MaxBytes = n } }

// WithTimestampUnit selects how numeric timestamps are read by Instant checks.
func WithTimestampUnit(u TimestampUnit) Option { return func(c *Config) { c.Timestamps = u } }

// WithFailFast stops the test at the first failure.
func WithFailFast(enabled bool) Option { return func(c *Config) { c.FailFast = enabled } }

// WithDriver selects the JSON driver used to tokenize text input.
func WithDriver(d JSONDriver) Option { return func(c *Config) { c.Driver = d } }

func buildConfig(opts []Option) Config {
	c := DefaultConfig()
	for _, o := range opts {
		if o != nil {
			o(&c)
		}
	}
	return c
}

func (c Config) driver() JSONDriver {
	if c.Driver != nil {
		return c.Driver
	}
	return CurrentJSONDriver()
}
