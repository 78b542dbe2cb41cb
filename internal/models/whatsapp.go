package models

// Template component types accepted by the Graph API
const (
	ComponentHeader  = "HEADER"
	ComponentBody    = "BODY"
	ComponentFooter  = "FOOTER"
	ComponentButtons = "BUTTONS"
)

// Button types accepted inside a BUTTONS component
const (
	ButtonQuickReply = "QUICK_REPLY"
	ButtonURL        = "URL"
)

// TemplateComponent is one entry of a template definition's component array
type TemplateComponent struct {
	Type    string            `json:"type"`
	Format  string            `json:"format,omitempty"`
	Text    string            `json:"text,omitempty"`
	Example *ComponentExample `json:"example,omitempty"`
	Buttons []TemplateButton  `json:"buttons,omitempty"`
}

// ComponentExample carries sample values for body placeholders. The Graph API
// expects the example list doubly nested: one inner list per template variant.
type ComponentExample struct {
	BodyText [][]string `json:"body_text"`
}

// TemplateButton is a single button in a BUTTONS component
type TemplateButton struct {
	Type string `json:"type"`
	Text string `json:"text"`
	URL  string `json:"url,omitempty"`
}

// CreateTemplateRequest is the POST body for {waba_id}/message_templates
type CreateTemplateRequest struct {
	Name       string              `json:"name"`
	Category   string              `json:"category"`
	Language   string              `json:"language"`
	Components []TemplateComponent `json:"components"`
}

// MessagePayload is the POST body for {phone_number_id}/messages. Exactly one
// of Template or Text is set, matching the Type field.
type MessagePayload struct {
	MessagingProduct string       `json:"messaging_product"`
	RecipientType    string       `json:"recipient_type"`
	To               string       `json:"to"`
	Type             string       `json:"type"`
	Template         *TemplateRef `json:"template,omitempty"`
	Text             *TextBody    `json:"text,omitempty"`
}

// TemplateRef names an approved template and fills its variables
type TemplateRef struct {
	Name       string             `json:"name"`
	Language   LanguageRef        `json:"language"`
	Components []MessageComponent `json:"components"`
}

// LanguageRef wraps a language code
type LanguageRef struct {
	Code string `json:"code"`
}

// MessageComponent carries parameter values for one template section
type MessageComponent struct {
	Type       string             `json:"type"`
	Parameters []MessageParameter `json:"parameters"`
}

// MessageParameter is a single positional parameter value
type MessageParameter struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// TextBody is the body of a free-form text message
type TextBody struct {
	Body string `json:"body"`
}
