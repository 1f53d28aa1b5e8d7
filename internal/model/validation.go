package model

import (
	"errors"
	"fmt"

	pkgopenapi "github.com/goliatone/go-formfield/pkg/openapi"
)

var errSchemaNameMissing = errors.New("model builder: schema name is required")

func validateSchema(path string, schema pkgopenapi.Schema) error {
	if schema.Type == "array" && schema.Items == nil {
		return fmt.Errorf("model builder: array field %q missing items", path)
	}
	for name, nested := range schema.Properties {
		if err := validateSchema(joinPath(path, name), nested); err != nil {
			return err
		}
	}
	if schema.Items != nil {
		return validateSchema(path+"[]", *schema.Items)
	}
	return nil
}

func joinPath(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}
