package llm

import (
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Model output is untrusted. Payloads are validated against a schema
// before anything reaches the database.

const goalSchemaJSON = `{
	"type": "object",
	"required": ["title", "todos"],
	"properties": {
		"title": {"type": "string", "minLength": 1},
		"description": {"type": "string"},
		"target_date": {"type": "string"},
		"status": {"type": "string"},
		"priority": {"type": "string"},
		"progress": {"type": "number"},
		"todos": {
			"type": "array",
			"minItems": 1,
			"items": {
				"type": "object",
				"required": ["title"],
				"properties": {
					"title": {"type": "string", "minLength": 1},
					"status": {"type": "string"},
					"priority": {"type": "string"},
					"checklists": {
						"type": "array",
						"items": {
							"type": "object",
							"required": ["item"],
							"properties": {
								"item": {"type": "string"},
								"is_done": {"type": "boolean"}
							}
						}
					}
				}
			}
		}
	}
}`

const bookSchemaJSON = `{
	"anyOf": [
		{
			"type": "object",
			"required": ["error"],
			"properties": {
				"error": {"type": "string"}
			}
		},
		{
			"type": "object",
			"required": ["topic", "recommended_books"],
			"properties": {
				"topic": {"type": "string"},
				"recommended_books": {
					"type": "array",
					"minItems": 1,
					"items": {
						"type": "object",
						"required": ["category", "books"],
						"properties": {
							"category": {"type": "string"},
							"books": {
								"type": "array",
								"minItems": 3,
								"maxItems": 3,
								"items": {
									"type": "object",
									"required": ["Book_name"],
									"properties": {
										"Book_name": {"type": "string"},
										"Year_of_publication": {"type": "string"},
										"source": {"type": "string"},
										"Publisher": {"type": "string"},
										"Authors": {"type": "string"},
										"ISBN": {"type": "string"}
									}
								}
							}
						}
					}
				}
			}
		}
	]
}`

var (
	goalSchema = mustCompileSchema("goal.json", goalSchemaJSON)
	bookSchema = mustCompileSchema("book.json", bookSchemaJSON)
)

func mustCompileSchema(name, src string) *jsonschema.Schema {
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(src))
	if err != nil {
		panic(fmt.Sprintf("invalid schema %s: %v", name, err))
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name, doc); err != nil {
		panic(fmt.Sprintf("add schema %s: %v", name, err))
	}
	return compiler.MustCompile(name)
}

func validatePayload(schema *jsonschema.Schema, raw string) (map[string]any, error) {
	value, err := jsonschema.UnmarshalJSON(strings.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("output is not valid JSON: %w", err)
	}
	if err := schema.Validate(value); err != nil {
		return nil, err
	}
	obj, ok := value.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("output is not a JSON object")
	}
	return obj, nil
}

// ValidateGoalPayload checks a generated study plan.
func ValidateGoalPayload(raw string) (map[string]any, error) {
	return validatePayload(goalSchema, raw)
}

// ValidateBookPayload checks a generated book recommendation. A bare
// error object is valid output and is returned to the caller as-is.
func ValidateBookPayload(raw string) (map[string]any, error) {
	return validatePayload(bookSchema, raw)
}
