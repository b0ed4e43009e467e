// Package model defines the field descriptors a form controller consumes. A
// descriptor is immutable once handed to a controller: the id is unique within
// one descriptor list, the type belongs to the closed FieldType set, and the
// label is display-only. Default values seed the controller state on mount;
// an empty Default means the field starts absent.
package model
