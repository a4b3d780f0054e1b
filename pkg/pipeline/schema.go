package pipeline

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// documentSchema validates the shape of a pipeline document before any
// chain is wired. Semantic checks (name references, callable lookups)
// happen afterwards in the parser and builder, where better error
// messages are possible.
const documentSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "title": "Pipeline document",
  "type": "object",
  "required": ["pipelines", "result"],
  "additionalProperties": false,
  "properties": {
    "pipelines": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["name", "source"],
        "additionalProperties": false,
        "properties": {
          "name": {"type": "string", "minLength": 1},
          "source": {
            "type": "object",
            "additionalProperties": false,
            "properties": {
              "input": {"type": "string", "minLength": 1},
              "pipeline": {"type": "string", "minLength": 1}
            },
            "oneOf": [
              {"required": ["input"]},
              {"required": ["pipeline"]}
            ]
          },
          "operations": {
            "type": "array",
            "items": {
              "type": "object",
              "required": ["type"],
              "additionalProperties": false,
              "properties": {
                "type": {"enum": ["map", "fold", "sort", "reduce", "join"]},
                "mapper": {"type": "string", "minLength": 1},
                "folder": {"type": "string", "minLength": 1},
                "reducer": {"type": "string", "minLength": 1},
                "initial": {"type": "object"},
                "keys": {
                  "type": "array",
                  "minItems": 1,
                  "items": {"type": "string", "minLength": 1}
                },
                "on": {"type": "string", "minLength": 1},
                "strategy": {"enum": ["outer", "left", "right"]},
                "key": {
                  "type": "array",
                  "maxItems": 2,
                  "items": {"type": "string", "minLength": 1}
                }
              }
            }
          }
        }
      }
    },
    "result": {"type": "string", "minLength": 1}
  }
}`

// validateDocument checks raw JSON against the document schema and
// aggregates every violation into one error.
func validateDocument(data []byte) error {
	schemaLoader := gojsonschema.NewStringLoader(documentSchema)
	documentLoader := gojsonschema.NewBytesLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSchemaValidation, err)
	}
	if result.Valid() {
		return nil
	}

	messages := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		messages = append(messages, desc.String())
	}
	return fmt.Errorf("%w: %s", ErrSchemaValidation, strings.Join(messages, "; "))
}
