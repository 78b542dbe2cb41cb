package handlers

import (
	"github.com/smate-hq/whatsapp-mcp/internal/whatsapp"
	"github.com/smate-hq/whatsapp-mcp/pkg/mcp"
)

// toolCatalog declares the nine WhatsApp tools with their input schemas. The
// schemas are structural: clients use them for validation and UI; semantic
// rules (template name charset, header length) are enforced by the remote API.
func toolCatalog() []mcp.Tool {
	return []mcp.Tool{
		{
			Name:        "list_templates",
			Description: "List all WhatsApp message templates with their status and category",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"status": map[string]interface{}{
						"type":        "string",
						"description": "Filter by status: APPROVED, PENDING, REJECTED",
						"enum":        []string{"APPROVED", "PENDING", "REJECTED"},
					},
					"category": map[string]interface{}{
						"type":        "string",
						"description": "Filter by category: UTILITY, MARKETING, AUTHENTICATION",
						"enum":        []string{"UTILITY", "MARKETING", "AUTHENTICATION"},
					},
				},
			},
		},
		{
			Name:        "get_template",
			Description: "Get details of a specific template by ID or name",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"template_id": map[string]interface{}{
						"type":        "string",
						"description": "Template ID",
					},
					"template_name": map[string]interface{}{
						"type":        "string",
						"description": "Template name (alternative to ID)",
					},
				},
			},
		},
		{
			Name:        "create_template",
			Description: "Create a new WhatsApp message template",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"name": map[string]interface{}{
						"type":        "string",
						"description": "Template name (lowercase, underscores only)",
					},
					"category": map[string]interface{}{
						"type":        "string",
						"description": "Template category",
						"enum":        []string{"UTILITY", "MARKETING", "AUTHENTICATION"},
					},
					"language": map[string]interface{}{
						"type":        "string",
						"description": "Language code (e.g., es_CL, es, en_US)",
						"default":     whatsapp.DefaultLanguage,
					},
					"header_text": map[string]interface{}{
						"type":        "string",
						"description": "Optional header text (max 60 chars)",
					},
					"body_text": map[string]interface{}{
						"type":        "string",
						"description": "Body text with {{1}}, {{2}} placeholders",
					},
					"body_examples": map[string]interface{}{
						"type": "array",
						"items": map[string]interface{}{
							"type": "string",
						},
						"description": "Example values for body placeholders",
					},
					"footer_text": map[string]interface{}{
						"type":        "string",
						"description": "Optional footer text (max 60 chars)",
					},
					"buttons": map[string]interface{}{
						"type":        "array",
						"description": "Optional buttons (QUICK_REPLY or URL)",
						"items": map[string]interface{}{
							"type": "object",
							"properties": map[string]interface{}{
								"type": map[string]interface{}{
									"type": "string",
									"enum": []string{"QUICK_REPLY", "URL"},
								},
								"text": map[string]interface{}{"type": "string"},
								"url":  map[string]interface{}{"type": "string"},
							},
						},
					},
				},
				"required": []string{"name", "category", "body_text", "body_examples"},
			},
		},
		{
			Name:        "delete_template",
			Description: "Delete a WhatsApp message template by name",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"template_name": map[string]interface{}{
						"type":        "string",
						"description": "Template name to delete",
					},
				},
				"required": []string{"template_name"},
			},
		},
		{
			Name:        "get_account_info",
			Description: "Get WhatsApp Business Account information",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
		{
			Name:        "get_phone_numbers",
			Description: "Get phone numbers associated with the account",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
		{
			Name:        "send_template_message",
			Description: "Send a template message to a phone number",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"to": map[string]interface{}{
						"type":        "string",
						"description": "Recipient phone number (international format, e.g., 56912345678)",
					},
					"template_name": map[string]interface{}{
						"type":        "string",
						"description": "Name of approved template to use",
					},
					"language": map[string]interface{}{
						"type":        "string",
						"description": "Language code",
						"default":     whatsapp.DefaultLanguage,
					},
					"body_parameters": map[string]interface{}{
						"type": "array",
						"items": map[string]interface{}{
							"type": "string",
						},
						"description": "Values for template variables {{1}}, {{2}}, etc.",
					},
					"header_parameters": map[string]interface{}{
						"type": "array",
						"items": map[string]interface{}{
							"type": "string",
						},
						"description": "Values for header variables (if any)",
					},
				},
				"required": []string{"to", "template_name", "body_parameters"},
			},
		},
		{
			Name:        "send_text_message",
			Description: "Send a free-form text message to a phone number (only works within 24h customer service window)",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"to": map[string]interface{}{
						"type":        "string",
						"description": "Recipient phone number (international format, e.g., 56912345678)",
					},
					"message": map[string]interface{}{
						"type":        "string",
						"description": "Text message to send",
					},
				},
				"required": []string{"to", "message"},
			},
		},
		{
			Name:        "get_analytics",
			Description: "Get message analytics and conversation stats",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"start_date": map[string]interface{}{
						"type":        "string",
						"description": "Start date (UNIX timestamp)",
					},
					"end_date": map[string]interface{}{
						"type":        "string",
						"description": "End date (UNIX timestamp)",
					},
				},
			},
		},
	}
}
