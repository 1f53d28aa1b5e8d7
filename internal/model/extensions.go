package model

import (
	"fmt"
	"strings"
)

const (
	extensionNamespace   = "x-formfield"
	endpointExtensionKey = "x-endpoint"
)

// ParseUIExtensions extracts metadata and UI hints from the x-formfield
// extensions. It returns nil maps when nothing is recognised.
func ParseUIExtensions(ext map[string]any) (map[string]string, map[string]string) {
	metadata := metadataFromExtensions(ext)
	return metadata, filterUIHints(metadata)
}

func metadataFromExtensions(ext map[string]any) map[string]string {
	result := make(map[string]string)
	for key, value := range ext {
		switch {
		case key == extensionNamespace:
			nested, ok := value.(map[string]any)
			if !ok {
				continue
			}
			for nestedKey, nestedValue := range nested {
				if str, ok := CanonicalizeExtensionValue(nestedValue); ok {
					result[nestedKey] = str
				}
			}
		case strings.HasPrefix(key, extensionNamespace+"-"):
			if str, ok := CanonicalizeExtensionValue(value); ok {
				result[strings.TrimPrefix(key, extensionNamespace+"-")] = str
			}
		}
	}
	if len(result) == 0 {
		return nil
	}
	return result
}

// extensionValue reads key from the x-formfield namespace in either form.
func extensionValue(ext map[string]any, key string) (any, bool) {
	if nested, ok := ext[extensionNamespace].(map[string]any); ok {
		if v, ok := nested[key]; ok {
			return v, true
		}
	}
	v, ok := ext[extensionNamespace+"-"+key]
	return v, ok
}

// optionLabels reads the optionLabels map keyed by enum value.
func optionLabels(ext map[string]any) map[string]string {
	raw, ok := extensionValue(ext, "optionLabels")
	if !ok {
		return nil
	}
	mapped, ok := raw.(map[string]any)
	if !ok {
		return nil
	}
	out := make(map[string]string, len(mapped))
	for k, v := range mapped {
		if s, ok := v.(string); ok && s != "" {
			out[k] = s
		}
	}
	return out
}

func endpointFromExtensions(ext map[string]any) *Endpoint {
	raw, ok := ext[endpointExtensionKey].(map[string]any)
	if !ok {
		return nil
	}
	str := func(key string) string {
		s, _ := raw[key].(string)
		return strings.TrimSpace(s)
	}
	endpoint := &Endpoint{
		URL:         str("url"),
		Method:      strings.ToUpper(str("method")),
		TermParam:   str("termParam"),
		ResultsPath: str("resultsPath"),
		ValueField:  str("valueField"),
		LabelField:  str("labelField"),
	}
	if endpoint.URL == "" {
		return nil
	}
	if params, ok := raw["params"].(map[string]any); ok && len(params) > 0 {
		endpoint.Params = make(map[string]string, len(params))
		for k, v := range params {
			endpoint.Params[k] = fmt.Sprint(v)
		}
	}
	return endpoint
}
