package handlers

import (
	"context"
	"net/http"

	"github.com/smate-hq/whatsapp-mcp/internal/config"
	"github.com/smate-hq/whatsapp-mcp/internal/whatsapp"
	"github.com/smate-hq/whatsapp-mcp/pkg/mcp"
)

// Resource URIs served by this adapter
const (
	ResourceTemplates = "whatsapp://templates"
	ResourceAccount   = "whatsapp://account"
)

// accountResourceFields is the shorter field list used for the account
// resource, versus the full set the get_account_info tool requests
const accountResourceFields = "id,name,currency,timezone_id,message_template_namespace"

// ResourceHandler serves the read-only JSON resources
type ResourceHandler struct {
	client *whatsapp.Client
	cfg    config.Config
}

// NewResourceHandler creates a new resource handler
func NewResourceHandler(client *whatsapp.Client, cfg config.Config) *ResourceHandler {
	return &ResourceHandler{
		client: client,
		cfg:    cfg,
	}
}

// ListResources returns the resource catalog
func (h *ResourceHandler) ListResources() []mcp.Resource {
	return []mcp.Resource{
		{
			URI:         ResourceTemplates,
			Name:        "WhatsApp Templates",
			Description: "All message templates in the account",
			MimeType:    "application/json",
		},
		{
			URI:         ResourceAccount,
			Name:        "Account Info",
			Description: "WhatsApp Business Account information",
			MimeType:    "application/json",
		},
	}
}

// ReadResource fetches a resource document. Unrecognized URIs yield an empty
// JSON object rather than an error.
func (h *ResourceHandler) ReadResource(uri string) (string, error) {
	ctx := context.Background()

	switch uri {
	case ResourceTemplates:
		result, err := h.client.Request(ctx, http.MethodGet, h.cfg.WABAID+"/message_templates", map[string]interface{}{
			"fields": templateListFields,
			"limit":  defaultListLimit,
		})
		if err != nil {
			return "", err
		}
		return prettyJSON(result), nil

	case ResourceAccount:
		result, err := h.client.Request(ctx, http.MethodGet, h.cfg.WABAID, map[string]interface{}{
			"fields": accountResourceFields,
		})
		if err != nil {
			return "", err
		}
		return prettyJSON(result), nil
	}

	return "{}", nil
}
