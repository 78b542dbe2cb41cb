package whatsapp

import (
	"github.com/smate-hq/whatsapp-mcp/internal/models"
)

// DefaultLanguage is applied when a template or message omits a language code
const DefaultLanguage = "es_CL"

// TemplateDefinition holds the flat arguments of a create_template call
// before they are assembled into the Graph API's nested component array.
type TemplateDefinition struct {
	Name         string
	Category     string
	Language     string
	HeaderText   string
	BodyText     string
	BodyExamples []string
	FooterText   string
	Buttons      []models.TemplateButton
}

// BuildComponents assembles the component array for a template definition.
// Output order is fixed: HEADER (if present), BODY, FOOTER (if present),
// BUTTONS (if present). The body example is wrapped as a single-element list
// holding the full example set, the doubly-nested shape the API requires.
// Buttons of unrecognized type are skipped rather than rejected, so template
// definitions written against a newer API surface still go through.
func BuildComponents(def TemplateDefinition) []models.TemplateComponent {
	var components []models.TemplateComponent

	if def.HeaderText != "" {
		components = append(components, models.TemplateComponent{
			Type:   models.ComponentHeader,
			Format: "TEXT",
			Text:   def.HeaderText,
		})
	}

	body := models.TemplateComponent{
		Type: models.ComponentBody,
		Text: def.BodyText,
		Example: &models.ComponentExample{
			BodyText: [][]string{def.BodyExamples},
		},
	}
	components = append(components, body)

	if def.FooterText != "" {
		components = append(components, models.TemplateComponent{
			Type: models.ComponentFooter,
			Text: def.FooterText,
		})
	}

	if len(def.Buttons) > 0 {
		var buttons []models.TemplateButton
		for _, btn := range def.Buttons {
			switch btn.Type {
			case models.ButtonQuickReply:
				buttons = append(buttons, models.TemplateButton{
					Type: models.ButtonQuickReply,
					Text: btn.Text,
				})
			case models.ButtonURL:
				buttons = append(buttons, models.TemplateButton{
					Type: models.ButtonURL,
					Text: btn.Text,
					URL:  btn.URL,
				})
			}
		}
		if len(buttons) > 0 {
			components = append(components, models.TemplateComponent{
				Type:    models.ComponentButtons,
				Buttons: buttons,
			})
		}
	}

	return components
}

// BuildCreateTemplateRequest builds the full POST body for a template
// definition, applying the default language when none is given.
func BuildCreateTemplateRequest(def TemplateDefinition) models.CreateTemplateRequest {
	language := def.Language
	if language == "" {
		language = DefaultLanguage
	}

	return models.CreateTemplateRequest{
		Name:       def.Name,
		Category:   def.Category,
		Language:   language,
		Components: BuildComponents(def),
	}
}
