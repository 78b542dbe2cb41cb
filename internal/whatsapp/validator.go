package whatsapp

import (
	"context"
	"fmt"
	"net/http"
)

// ValidateCredentials probes the business account node to distinguish a bad
// token from an unreachable API before the serve loop starts. Both outcomes
// are reported, not fatal: only missing configuration stops the process.
func ValidateCredentials(ctx context.Context, client *Client, wabaID string) error {
	result, err := client.Request(ctx, http.MethodGet, wabaID, map[string]interface{}{
		"fields": "id",
	})
	if err != nil {
		return fmt.Errorf("cannot reach Graph API: %w", err)
	}

	if _, ok := result["id"]; ok {
		return nil
	}

	if errDoc, ok := result["error"].(map[string]interface{}); ok {
		if msg, ok := errDoc["message"].(string); ok {
			return fmt.Errorf("credential check failed: %s", msg)
		}
	}

	return fmt.Errorf("credential check failed: unexpected response for account %s", wabaID)
}
