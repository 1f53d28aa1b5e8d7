package model

import (
	"encoding/json"
	"slices"
	"strconv"
)

var (
	uiHintKeys = []string{
		"autoErase",
		"defaultDays",
		"defaultDuration",
		"defaultTime",
		"helpText",
		"interval",
		"label",
		"layouts",
		"location",
		"order",
		"placeholder",
		"step",
		"unit",
		"widget",
	}

	uiHintKeySet = func(keys []string) map[string]struct{} {
		result := make(map[string]struct{}, len(keys))
		for _, key := range keys {
			result[key] = struct{}{}
		}
		return result
	}(uiHintKeys)
)

// AllowedUIHintKeys returns a sorted copy of the recognised UI hint keys.
func AllowedUIHintKeys() []string {
	keys := slices.Clone(uiHintKeys)
	slices.Sort(keys)
	return keys
}

// IsAllowedUIHintKey reports whether key is a recognised UI hint.
func IsAllowedUIHintKey(key string) bool {
	_, ok := uiHintKeySet[key]
	return ok
}

// CanonicalizeExtensionValue turns an extension value into a deterministic
// string. Composite values become JSON.
func CanonicalizeExtensionValue(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, v != ""
	case bool:
		return strconv.FormatBool(v), true
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case uint64:
		return strconv.FormatUint(v, 10), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32), true
	case map[string]any, map[string]string, []any, []string:
		payload, err := json.Marshal(v)
		if err != nil || string(payload) == "{}" || string(payload) == "[]" {
			return "", false
		}
		return string(payload), true
	case interface{ String() string }:
		s := v.String()
		return s, s != ""
	default:
		return "", false
	}
}

func filterUIHints(metadata map[string]string) map[string]string {
	var out map[string]string
	for key, value := range metadata {
		if !IsAllowedUIHintKey(key) {
			continue
		}
		if out == nil {
			out = make(map[string]string)
		}
		out[key] = value
	}
	return out
}

func mergeInto(target map[string]string, updates map[string]string) map[string]string {
	if len(updates) == 0 {
		return target
	}
	if target == nil {
		target = make(map[string]string, len(updates))
	}
	for key, value := range updates {
		target[key] = value
	}
	return target
}
