package handlers

import (
	"fmt"

	"github.com/smate-hq/whatsapp-mcp/internal/models"
)

// Argument access helpers. MCP arguments arrive as map[string]interface{};
// these keep the type assertions and defaulting in one place instead of
// inlined at every use site.

func stringArg(args map[string]interface{}, key string) string {
	if v, ok := args[key].(string); ok {
		return v
	}
	return ""
}

func stringSliceArg(args map[string]interface{}, key string) []string {
	raw, ok := args[key].([]interface{})
	if !ok {
		return nil
	}

	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func buttonsArg(args map[string]interface{}) []models.TemplateButton {
	raw, ok := args["buttons"].([]interface{})
	if !ok {
		return nil
	}

	out := make([]models.TemplateButton, 0, len(raw))
	for _, v := range raw {
		btn, ok := v.(map[string]interface{})
		if !ok {
			continue
		}
		out = append(out, models.TemplateButton{
			Type: stringArg(btn, "type"),
			Text: stringArg(btn, "text"),
			URL:  stringArg(btn, "url"),
		})
	}
	return out
}

// requireArgs reports the first missing or empty required argument
func requireArgs(args map[string]interface{}, keys ...string) error {
	for _, key := range keys {
		v, ok := args[key]
		if !ok || v == nil {
			return fmt.Errorf("%s is required", key)
		}
		if s, isString := v.(string); isString && s == "" {
			return fmt.Errorf("%s is required", key)
		}
	}
	return nil
}
