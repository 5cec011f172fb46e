package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	jsonassert "github.com/reoring/jsonassert"
	drvgojson "github.com/reoring/jsonassert/source/gojson"
	yamlsrc "github.com/reoring/jsonassert/source/yaml"
)

// inputFlags are the parsing options shared by kinds and check.
type inputFlags struct {
	driver     string
	yaml       bool
	duplicates string
	maxDepth   int
	timestamps string
}

func (f *inputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.driver, "driver", "std", "JSON tokenizer: std or gojson")
	cmd.Flags().BoolVar(&f.yaml, "yaml", false, "read the input as a YAML document")
	cmd.Flags().StringVar(&f.duplicates, "duplicates", "error", "duplicate key policy: error, warn or ignore")
	cmd.Flags().IntVar(&f.maxDepth, "max-depth", 0, "maximum nesting depth (0 = unlimited)")
	cmd.Flags().StringVar(&f.timestamps, "timestamps", "seconds", "unit of numeric timestamps: seconds, milliseconds or nanoseconds")
}

func (f *inputFlags) options() ([]jsonassert.Option, error) {
	opts := []jsonassert.Option{jsonassert.WithMaxDepth(f.maxDepth)}
	switch f.driver {
	case "std":
		opts = append(opts, jsonassert.WithDriver(jsonassert.DefaultJSONDriver()))
	case "gojson":
		opts = append(opts, jsonassert.WithDriver(drvgojson.Driver()))
	default:
		return nil, fmt.Errorf("unknown driver %q (want std or gojson)", f.driver)
	}
	switch f.duplicates {
	case "error":
		opts = append(opts, jsonassert.WithDuplicateKeys(jsonassert.Error))
	case "warn":
		opts = append(opts, jsonassert.WithDuplicateKeys(jsonassert.Warn))
	case "ignore":
		opts = append(opts, jsonassert.WithDuplicateKeys(jsonassert.Ignore))
	default:
		return nil, fmt.Errorf("unknown duplicate key policy %q", f.duplicates)
	}
	unit, ok := timestampUnits[f.timestamps]
	if !ok {
		return nil, fmt.Errorf("unknown timestamp unit %q", f.timestamps)
	}
	return append(opts, jsonassert.WithTimestampUnit(unit)), nil
}

var timestampUnits = map[string]jsonassert.TimestampUnit{
	jsonassert.TimestampSeconds.String():      jsonassert.TimestampSeconds,
	jsonassert.TimestampMilliseconds.String(): jsonassert.TimestampMilliseconds,
	jsonassert.TimestampNanoseconds.String():  jsonassert.TimestampNanoseconds,
}

// read loads path, or stdin for "-".
func read(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(path)
}

// session starts an assertion session over the input document.
func (f *inputFlags) session(t jsonassert.TestingT, b []byte, opts []jsonassert.Option) *jsonassert.ValueAssert {
	if f.yaml {
		return jsonassert.ThatSource(t, yamlsrc.NewBytes(b), opts...)
	}
	return jsonassert.That(t, b, opts...)
}

// collector is the TestingT the CLI reports through.
type collector struct {
	failures []string
	warnings []string
}

func (c *collector) Errorf(format string, args ...any) {
	c.failures = append(c.failures, fmt.Sprintf(format, args...))
}

func (c *collector) Logf(format string, args ...any) {
	c.warnings = append(c.warnings, fmt.Sprintf(format, args...))
}

func (c *collector) Helper() {}
