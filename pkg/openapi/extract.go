package openapi

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formstate/internal/labels"
	"github.com/goliatone/go-formstate/pkg/model"
	"github.com/goliatone/go-formstate/pkg/validation"
)

// TypeExtension overrides the field type derived from a property's format.
const TypeExtension = "x-formstate-type"

var (
	// ErrOperationNotFound is returned when no operation matches the id.
	ErrOperationNotFound = errors.New("openapi: operation not found")
	// ErrNoRequestBody is returned when the operation has no usable
	// request-body schema.
	ErrNoRequestBody = errors.New("openapi: operation has no request body schema")
)

// Extraction is the descriptor list derived from one operation.
type Extraction struct {
	OperationID string
	Fields      []model.Field
	// Skipped lists properties that are not string-typed.
	Skipped []string
}

// Extract loads data as an OpenAPI document and maps the request body of
// operationID into field descriptors.
func Extract(ctx context.Context, data []byte, operationID string) (Extraction, error) {
	spec, err := load(ctx, data)
	if err != nil {
		return Extraction{}, err
	}

	operation := findOperation(spec, operationID)
	if operation == nil {
		return Extraction{}, fmt.Errorf("%w: %q", ErrOperationNotFound, operationID)
	}
	schema := requestSchema(operation.RequestBody)
	if schema == nil {
		return Extraction{}, fmt.Errorf("%w: %q", ErrNoRequestBody, operationID)
	}

	out := Extraction{OperationID: operationID}
	required := make(map[string]struct{}, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = struct{}{}
	}

	names := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		ref := schema.Properties[name]
		if ref == nil || ref.Value == nil {
			out.Skipped = append(out.Skipped, name)
			continue
		}
		field, ok, err := convertProperty(name, ref.Value)
		if err != nil {
			return Extraction{}, err
		}
		if !ok {
			out.Skipped = append(out.Skipped, name)
			continue
		}
		_, field.Required = required[name]
		out.Fields = append(out.Fields, field)
	}

	if _, err := validation.BuildRules(out.Fields); err != nil {
		return Extraction{}, fmt.Errorf("openapi: operation %q: %w", operationID, err)
	}
	return out, nil
}

// ExtractFile reads an OpenAPI document from disk and calls Extract.
func ExtractFile(ctx context.Context, path, operationID string) (Extraction, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Extraction{}, fmt.Errorf("openapi: read %s: %w", path, err)
	}
	return Extract(ctx, data, operationID)
}

// OperationIDs lists the sorted operation ids declared in data.
func OperationIDs(ctx context.Context, data []byte) ([]string, error) {
	spec, err := load(ctx, data)
	if err != nil {
		return nil, err
	}
	var ids []string
	if spec.Paths != nil {
		for _, item := range spec.Paths.Map() {
			if item == nil {
				continue
			}
			for _, op := range item.Operations() {
				if op != nil && op.OperationID != "" {
					ids = append(ids, op.OperationID)
				}
			}
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func load(ctx context.Context, data []byte) (*openapi3.T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, errors.New("openapi: document payload is empty")
	}
	loader := openapi3.NewLoader()
	loader.Context = ctx
	spec, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}
	return spec, nil
}

func findOperation(spec *openapi3.T, operationID string) *openapi3.Operation {
	if spec.Paths == nil {
		return nil
	}
	for _, item := range spec.Paths.Map() {
		if item == nil {
			continue
		}
		for _, op := range item.Operations() {
			if op != nil && op.OperationID == operationID {
				return op
			}
		}
	}
	return nil
}

func requestSchema(body *openapi3.RequestBodyRef) *openapi3.Schema {
	if body == nil || body.Value == nil {
		return nil
	}
	content := body.Value.Content
	for _, mediaType := range []string{"application/json", "application/x-www-form-urlencoded", "multipart/form-data"} {
		if mt, ok := content[mediaType]; ok && mt != nil && mt.Schema != nil {
			return mt.Schema.Value
		}
	}
	keys := make([]string, 0, len(content))
	for key := range content {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if mt := content[key]; mt != nil && mt.Schema != nil {
			return mt.Schema.Value
		}
	}
	return nil
}

func convertProperty(name string, schema *openapi3.Schema) (model.Field, bool, error) {
	if schema.Type != nil && len(schema.Type.Slice()) > 0 && !schema.Type.Is(openapi3.TypeString) {
		return model.Field{}, false, nil
	}

	field := model.Field{
		ID:    name,
		Type:  typeFromFormat(schema.Format),
		Label: strings.TrimSpace(schema.Title),
	}
	if override, ok := schema.Extensions[TypeExtension].(string); ok && override != "" {
		typ, err := model.ParseFieldType(override)
		if err != nil {
			return model.Field{}, false, &validation.ConfigurationError{
				FieldID: name,
				Type:    model.FieldType(override),
				Err:     validation.ErrUnknownFieldType,
			}
		}
		field.Type = typ
	}
	if field.Label == "" {
		field.Label = labels.FromID(name)
	}
	if def, ok := schema.Default.(string); ok {
		field.Default = def
	}
	return field, true, nil
}

func typeFromFormat(format string) model.FieldType {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "email", "idn-email":
		return model.FieldTypeEmail
	case "password":
		return model.FieldTypePassword
	default:
		return model.FieldTypeText
	}
}
