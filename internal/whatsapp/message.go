package whatsapp

import (
	"github.com/smate-hq/whatsapp-mcp/internal/models"
)

// Fixed envelope fields for the /messages endpoint
const (
	messagingProduct = "whatsapp"
	recipientType    = "individual"
)

// BuildTemplateMessage builds the envelope for a template-typed message.
// Header parameters, when given, are emitted before body parameters. A
// template without variables yields an empty (not null) components list,
// which the API accepts.
func BuildTemplateMessage(to, templateName, language string, headerParams, bodyParams []string) models.MessagePayload {
	if language == "" {
		language = DefaultLanguage
	}

	components := []models.MessageComponent{}

	if len(headerParams) > 0 {
		components = append(components, models.MessageComponent{
			Type:       "header",
			Parameters: textParameters(headerParams),
		})
	}

	if len(bodyParams) > 0 {
		components = append(components, models.MessageComponent{
			Type:       "body",
			Parameters: textParameters(bodyParams),
		})
	}

	return models.MessagePayload{
		MessagingProduct: messagingProduct,
		RecipientType:    recipientType,
		To:               to,
		Type:             "template",
		Template: &models.TemplateRef{
			Name:       templateName,
			Language:   models.LanguageRef{Code: language},
			Components: components,
		},
	}
}

// BuildTextMessage builds the envelope for a free-form text message. The
// remote platform only delivers these inside an open 24h service window;
// that constraint is the caller's to honor, not checked here.
func BuildTextMessage(to, message string) models.MessagePayload {
	return models.MessagePayload{
		MessagingProduct: messagingProduct,
		RecipientType:    recipientType,
		To:               to,
		Type:             "text",
		Text:             &models.TextBody{Body: message},
	}
}

func textParameters(values []string) []models.MessageParameter {
	params := make([]models.MessageParameter, len(values))
	for i, v := range values {
		params[i] = models.MessageParameter{Type: "text", Text: v}
	}
	return params
}
