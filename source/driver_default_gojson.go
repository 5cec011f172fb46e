// Package source switches the process-wide JSON driver to goccy/go-json when
// imported for side effects:
//
//	import _ "github.com/reoring/jsonassert/source"
package source

import (
	jsonassert "github.com/reoring/jsonassert"
	drvgojson "github.com/reoring/jsonassert/source/gojson"
)

// init in a separate package to avoid an import cycle in root.
func init() { jsonassert.SetJSONDriver(drvgojson.Driver()) }
