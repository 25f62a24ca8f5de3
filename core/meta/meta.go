/*
Package meta loads the project metadata file.

The file is a JSON object at the project root:

	{ "fontVersion": "1.4.0", "fontDescription": "Icons for the shop floor" }

fontVersion is required, fontDescription is optional.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

*/
package meta

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/MfgOpen/industricons/core"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces to tracing key 'industricons.meta'.
func tracer() tracing.Trace {
	return tracing.Select("industricons.meta")
}

// Metadata describes the font to be generated.
type Metadata struct {
	FontVersion     string `json:"fontVersion"`
	FontDescription string `json:"fontDescription,omitempty"`
}

// Load reads and validates the metadata file at path.
func Load(path string) (*Metadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, core.IOError(err, "cannot load metadata file %s", path)
	}
	md := &Metadata{}
	if err = json.Unmarshal(data, md); err != nil {
		return nil, core.WrapError(err, core.EINVALID, "metadata file %s is not valid JSON", path)
	}
	if err = md.Validate(); err != nil {
		return nil, err
	}
	tracer().Debugf("font version %s", md.FontVersion)
	return md, nil
}

// Validate checks that required fields are present.
func (md *Metadata) Validate() error {
	if strings.TrimSpace(md.FontVersion) == "" {
		return core.Error(core.EINVALID, "metadata: fontVersion is missing")
	}
	return nil
}
