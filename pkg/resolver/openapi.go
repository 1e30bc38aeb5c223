package resolver

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// The OpenAPI document model below is deliberately thin: only the path
// down to one operation's parameters and response schema is typed.
// Everything else in the document is ignored by the decoder.

type openAPIDocument struct {
	Paths map[string]openAPIPathItem `yaml:"paths"`
}

type openAPIPathItem struct {
	Get    *openAPIOperation `yaml:"get"`
	Post   *openAPIOperation `yaml:"post"`
	Put    *openAPIOperation `yaml:"put"`
	Delete *openAPIOperation `yaml:"delete"`
	Patch  *openAPIOperation `yaml:"patch"`
}

type openAPIOperation struct {
	Parameters []openAPIParameter         `yaml:"parameters"`
	Responses  map[string]openAPIResponse `yaml:"responses"`
}

type openAPIParameter struct {
	Name string `yaml:"name"`
}

type openAPIResponse struct {
	Content map[string]openAPIMediaType `yaml:"content"`
}

type openAPIMediaType struct {
	Schema *openAPISchema `yaml:"schema"`
}

type openAPISchema struct {
	Type string `yaml:"type"`
	// Properties stays a raw node so the declared key order survives
	// the decode; a map would shuffle it.
	Properties yaml.Node `yaml:"properties"`
}

// ResolveOpenAPI reads an OpenAPI file and extracts the facts for one
// operation response: its top-level field names and the operation's
// parameter names.
func ResolveOpenAPI(filePath, path, method, status string) (*OperationFacts, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, &IOError{Path: filePath, Err: err}
	}
	return ExtractOperation(string(data), filePath, path, method, status)
}

// ExtractOperation pulls one operation response out of OpenAPI
// content. Each missing element along the way (path, method, status)
// is a distinct NotFoundError naming what was absent.
func ExtractOperation(content, source, path, method, status string) (*OperationFacts, error) {
	var doc openAPIDocument
	if err := yaml.Unmarshal([]byte(content), &doc); err != nil {
		return nil, &OpenAPIParseError{Source: source, Detail: err.Error()}
	}

	if doc.Paths == nil {
		return nil, &NotFoundError{What: "no paths defined in OpenAPI document"}
	}
	item, ok := doc.Paths[path]
	if !ok {
		return nil, &NotFoundError{What: fmt.Sprintf("path %s", path)}
	}

	var op *openAPIOperation
	switch method {
	case "get":
		op = item.Get
	case "post":
		op = item.Post
	case "put":
		op = item.Put
	case "delete":
		op = item.Delete
	case "patch":
		op = item.Patch
	default:
		return nil, &NotFoundError{What: fmt.Sprintf("unsupported method %s", method)}
	}
	if op == nil {
		return nil, &NotFoundError{What: fmt.Sprintf("method %s on path %s", method, path)}
	}

	var parameters []string
	for _, p := range op.Parameters {
		if p.Name != "" {
			parameters = append(parameters, p.Name)
		}
	}

	if op.Responses == nil {
		return nil, &NotFoundError{What: fmt.Sprintf("no responses on %s %s", method, path)}
	}
	resp, ok := op.Responses[status]
	if !ok {
		return nil, &NotFoundError{What: fmt.Sprintf("response %s on %s %s", status, method, path)}
	}

	return &OperationFacts{
		Fields:     responseFields(resp),
		Parameters: parameters,
	}, nil
}

// responseFields lists the top-level property names of the JSON
// response schema. Non-object schemas and non-JSON content yield an
// empty list, not an error.
func responseFields(resp openAPIResponse) []string {
	media, ok := resp.Content["application/json"]
	if !ok || media.Schema == nil {
		return nil
	}
	schema := media.Schema
	if schema.Type != "object" || schema.Properties.Kind != yaml.MappingNode {
		return nil
	}
	var fields []string
	for i := 0; i+1 < len(schema.Properties.Content); i += 2 {
		fields = append(fields, schema.Properties.Content[i].Value)
	}
	return fields
}
