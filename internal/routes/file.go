package routes

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/narvanalabs/greetd/internal/wire"
	"github.com/narvanalabs/greetd/util"
	"github.com/xeipuuv/gojsonschema"
)

//go:embed routes-schema.json
var routesSchemaJSON json.RawMessage

var routesSchema = util.Must(gojsonschema.NewSchema(gojsonschema.NewBytesLoader(routesSchemaJSON)))

type routesFile struct {
	Routes []routeSpec `json:"routes"`
}

type routeSpec struct {
	Path   string          `json:"path"`
	Status int             `json:"status"`
	Body   json.RawMessage `json:"body,omitempty"`
}

// Load reads a routes file, validates it against the embedded schema
// and builds a table from it. The body of each route is kept verbatim,
// so the file author controls the exact JSON serialization.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read routes file: %w", err)
	}

	result, err := routesSchema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to validate routes file: %w", err)
	}
	if !result.Valid() {
		return nil, fmt.Errorf("invalid routes file: %s", result.Errors()[0])
	}

	var file routesFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to decode routes file: %w", err)
	}

	rules := make([]Rule, 0, len(file.Routes))
	for _, spec := range file.Routes {
		rules = append(rules, newRule(spec))
	}

	return New(rules...), nil
}

func newRule(spec routeSpec) Rule {
	status := wire.Status(spec.Status)

	if len(spec.Body) == 0 {
		return Rule{
			Path: spec.Path,
			Produce: func() wire.Response {
				return wire.NewStatus(status)
			},
		}
	}

	body := []byte(spec.Body)
	return Rule{
		Path: spec.Path,
		Produce: func() wire.Response {
			return wire.NewJSON(status, body)
		},
	}
}
