// Package openapi derives descriptor lists from OpenAPI 3 documents. The
// request-body schema of an operation supplies the fields: string properties
// become text, email or password fields depending on their format (or the
// x-formstate-type extension), the schema's required list sets the required
// flag, titles become labels and string defaults seed the default value.
// Properties of any other type cannot be expressed as form inputs and are
// reported as skipped.
package openapi
