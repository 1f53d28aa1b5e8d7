package parser

import "strings"

const (
	extensionNamespace   = "x-formfield"
	endpointExtensionKey = "x-endpoint"
)

// extractExtensions keeps the x-formfield namespace (nested map or
// x-formfield-<key> form) and the x-endpoint payload.
func extractExtensions(raw map[string]any) map[string]any {
	if len(raw) == 0 {
		return nil
	}
	result := make(map[string]any)
	for key, value := range raw {
		switch {
		case key == extensionNamespace, key == endpointExtensionKey:
			if mapped, ok := cloneMap(value); ok && len(mapped) > 0 {
				result[key] = mapped
			}
		case strings.HasPrefix(key, extensionNamespace+"-"):
			result[key] = value
		}
	}
	if len(result) == 0 {
		return nil
	}
	return result
}

func cloneMap(value any) (map[string]any, bool) {
	mapped, ok := value.(map[string]any)
	if !ok {
		return nil, false
	}
	cloned := make(map[string]any, len(mapped))
	for k, v := range mapped {
		cloned[k] = v
	}
	return cloned, true
}
