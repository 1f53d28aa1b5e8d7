package model

import "github.com/goliatone/go-formfield/internal/model"

type (
	FieldType      = model.FieldType
	ValidationRule = model.ValidationRule
	Choice         = model.Choice
	Endpoint       = model.Endpoint
	Field          = model.Field
	FormModel      = model.FormModel
)

const (
	FieldTypeString  = model.FieldTypeString
	FieldTypeInteger = model.FieldTypeInteger
	FieldTypeNumber  = model.FieldTypeNumber
	FieldTypeBoolean = model.FieldTypeBoolean
	FieldTypeArray   = model.FieldTypeArray
	FieldTypeObject  = model.FieldTypeObject

	ValidationRuleMin       = model.ValidationRuleMin
	ValidationRuleMax       = model.ValidationRuleMax
	ValidationRuleStep      = model.ValidationRuleStep
	ValidationRuleMinLength = model.ValidationRuleMinLength
	ValidationRuleMaxLength = model.ValidationRuleMaxLength
	ValidationRulePattern   = model.ValidationRulePattern
)

// Walk visits fields depth-first; returning false skips a field's children.
func Walk(fields []Field, fn func(Field) bool) { model.Walk(fields, fn) }

// ParseUIExtensions extracts metadata and UI hints from x-formfield
// extensions.
func ParseUIExtensions(ext map[string]any) (map[string]string, map[string]string) {
	return model.ParseUIExtensions(ext)
}
