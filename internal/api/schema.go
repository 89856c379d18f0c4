package api

import (
	"bytes"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const submissionSchemaURL = "kinship://schemas/submission.json"

// submissionSchema is the wire shape of POST /api/assessment/submit. Range
// checks against the question bank happen later; this only pins the shape.
const submissionSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["answers"],
  "properties": {
    "session_id": {"type": ["string", "null"]},
    "answers": {
      "type": "array",
      "maxItems": 500,
      "items": {
        "type": "object",
        "required": ["question_id", "value"],
        "properties": {
          "question_id": {"type": "string", "minLength": 1, "maxLength": 64},
          "value": {"type": "integer"}
        }
      }
    }
  }
}`

func compileSubmissionSchema() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader([]byte(submissionSchema)))
	if err != nil {
		return nil, fmt.Errorf("parse submission schema: %w", err)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource(submissionSchemaURL, doc); err != nil {
		return nil, fmt.Errorf("add submission schema: %w", err)
	}
	schema, err := c.Compile(submissionSchemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile submission schema: %w", err)
	}
	return schema, nil
}
