// Package openapi embeds the OpenAPI 3.0 document for the snipdeck HTTP API.
package openapi

import (
	_ "embed"
	"sync"

	"github.com/goccy/go-yaml"
)

// SpecYAML contains the OpenAPI document in YAML format.
// Served at: GET /api/v1/openapi.yaml
//
//go:embed openapi.yaml
var SpecYAML []byte

var (
	specJSON     []byte
	specJSONErr  error
	specJSONOnce sync.Once
)

// SpecJSON returns the OpenAPI document converted to JSON.
// Served at: GET /api/v1/openapi.json
func SpecJSON() ([]byte, error) {
	specJSONOnce.Do(func() {
		specJSON, specJSONErr = yaml.YAMLToJSON(SpecYAML)
	})
	return specJSON, specJSONErr
}
