package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/smate-hq/whatsapp-mcp/internal/config"
	"github.com/smate-hq/whatsapp-mcp/internal/logging"
	"github.com/smate-hq/whatsapp-mcp/internal/whatsapp"
	"github.com/smate-hq/whatsapp-mcp/pkg/mcp"
)

// Field selections sent to the Graph API per operation
const (
	templateFields     = "name,status,category,language,components,quality_score"
	templateListFields = "name,status,category,language,components"
	accountFields      = "id,name,currency,timezone_id,message_template_namespace,account_review_status,business_verification_status"
	phoneNumberFields  = "id,display_phone_number,verified_name,quality_rating,messaging_limit_tier,status"
	analyticsFields    = "conversation_analytics.start(start_date).end(end_date).granularity(DAILY).dimensions(conversation_type,conversation_direction)"
)

// defaultListLimit caps how many templates a single list fetch requests
const defaultListLimit = 50

// toolFunc executes one tool against the Graph API and returns the rendered
// text. A returned error means the call itself failed (transport fault, bad
// payload); remote rejections come back as formatted text with a nil error.
type toolFunc func(ctx context.Context, args map[string]interface{}) (string, error)

// WhatsAppHandler routes MCP tool calls to the WhatsApp Business API
type WhatsAppHandler struct {
	client *whatsapp.Client
	cfg    config.Config
	tools  []mcp.Tool
	routes map[string]toolFunc
}

// NewWhatsAppHandler creates the handler with its full tool registry
func NewWhatsAppHandler(client *whatsapp.Client, cfg config.Config) *WhatsAppHandler {
	h := &WhatsAppHandler{
		client: client,
		cfg:    cfg,
		tools:  toolCatalog(),
	}

	// Dispatch is a data lookup: adding a tool means adding a catalog entry
	// and a route, nothing else.
	h.routes = map[string]toolFunc{
		"list_templates":        h.listTemplates,
		"get_template":          h.getTemplate,
		"create_template":       h.createTemplate,
		"delete_template":       h.deleteTemplate,
		"get_account_info":      h.getAccountInfo,
		"get_phone_numbers":     h.getPhoneNumbers,
		"send_template_message": h.sendTemplateMessage,
		"send_text_message":     h.sendTextMessage,
		"get_analytics":         h.getAnalytics,
	}

	return h
}

// ListTools returns the tool catalog in its declared order
func (h *WhatsAppHandler) ListTools() []mcp.Tool {
	return h.tools
}

// HandleTool executes a tool call. Every per-call failure is converted to a
// textual result here, uniformly for all tools: the transport never sees a
// Go-level fault from a tool invocation.
func (h *WhatsAppHandler) HandleTool(call mcp.ToolCall) (result mcp.ToolResult, err error) {
	callID := uuid.NewString()
	log := logging.WithCall(callID, call.Name)

	fn, ok := h.routes[call.Name]
	if !ok {
		log.Warnw("unknown tool requested")
		return mcp.TextResult(fmt.Sprintf("Unknown tool: %s", call.Name)), nil
	}

	defer func() {
		if r := recover(); r != nil {
			log.Errorw("tool handler panicked", "panic", r)
			result = mcp.ErrorResult(fmt.Sprintf("Exception running %s: %v", call.Name, r))
			err = nil
		}
	}()

	text, callErr := fn(context.Background(), call.Arguments)
	if callErr != nil {
		log.Errorw("tool call failed", "error", callErr)
		return mcp.ErrorResult(fmt.Sprintf("Exception running %s: %v", call.Name, callErr)), nil
	}

	log.Debugw("tool call completed")
	return mcp.TextResult(text), nil
}

func (h *WhatsAppHandler) listTemplates(ctx context.Context, args map[string]interface{}) (string, error) {
	result, err := h.client.Request(ctx, http.MethodGet, h.cfg.WABAID+"/message_templates", map[string]interface{}{
		"fields": templateFields,
		"limit":  defaultListLimit,
	})
	if err != nil {
		return "", err
	}

	return formatTemplateList(result, stringArg(args, "status"), stringArg(args, "category")), nil
}

func (h *WhatsAppHandler) getTemplate(ctx context.Context, args map[string]interface{}) (string, error) {
	// By id the node is fetched directly; by name we filter the account's
	// template list and take the first match. Ids are unique keys, names
	// are not.
	if templateID := stringArg(args, "template_id"); templateID != "" {
		result, err := h.client.Request(ctx, http.MethodGet, templateID, map[string]interface{}{
			"fields": templateFields,
		})
		if err != nil {
			return "", err
		}
		return prettyJSON(result), nil
	}

	result, err := h.client.Request(ctx, http.MethodGet, h.cfg.WABAID+"/message_templates", map[string]interface{}{
		"fields": templateListFields,
		"name":   stringArg(args, "template_name"),
	})
	if err != nil {
		return "", err
	}

	if data, ok := result["data"].([]interface{}); ok && len(data) > 0 {
		return prettyJSON(data[0]), nil
	}
	return prettyJSON(result), nil
}

func (h *WhatsAppHandler) createTemplate(ctx context.Context, args map[string]interface{}) (string, error) {
	if err := requireArgs(args, "name", "category", "body_text", "body_examples"); err != nil {
		return fmt.Sprintf("Error: %v", err), nil
	}

	def := whatsapp.TemplateDefinition{
		Name:         stringArg(args, "name"),
		Category:     stringArg(args, "category"),
		Language:     stringArg(args, "language"),
		HeaderText:   stringArg(args, "header_text"),
		BodyText:     stringArg(args, "body_text"),
		BodyExamples: stringSliceArg(args, "body_examples"),
		FooterText:   stringArg(args, "footer_text"),
		Buttons:      buttonsArg(args),
	}

	payload := whatsapp.BuildCreateTemplateRequest(def)

	result, err := h.client.Post(ctx, h.cfg.WABAID+"/message_templates", payload)
	if err != nil {
		return "", err
	}

	return formatCreateResult(result, def.Category), nil
}

func (h *WhatsAppHandler) deleteTemplate(ctx context.Context, args map[string]interface{}) (string, error) {
	if err := requireArgs(args, "template_name"); err != nil {
		return fmt.Sprintf("Error: %v", err), nil
	}
	templateName := stringArg(args, "template_name")

	result, err := h.client.Request(ctx, http.MethodDelete, h.cfg.WABAID+"/message_templates", map[string]interface{}{
		"name": templateName,
	})
	if err != nil {
		return "", err
	}

	return formatDeleteResult(result, templateName), nil
}

func (h *WhatsAppHandler) getAccountInfo(ctx context.Context, args map[string]interface{}) (string, error) {
	result, err := h.client.Request(ctx, http.MethodGet, h.cfg.WABAID, map[string]interface{}{
		"fields": accountFields,
	})
	if err != nil {
		return "", err
	}

	return formatAccountInfo(result), nil
}

func (h *WhatsAppHandler) getPhoneNumbers(ctx context.Context, args map[string]interface{}) (string, error) {
	result, err := h.client.Request(ctx, http.MethodGet, h.cfg.WABAID+"/phone_numbers", map[string]interface{}{
		"fields": phoneNumberFields,
	})
	if err != nil {
		return "", err
	}

	return formatPhoneNumbers(result), nil
}

func (h *WhatsAppHandler) sendTemplateMessage(ctx context.Context, args map[string]interface{}) (string, error) {
	if err := requireArgs(args, "to", "template_name", "body_parameters"); err != nil {
		return fmt.Sprintf("Error: %v", err), nil
	}
	if h.cfg.PhoneNumberID == "" {
		return "Error: META_PHONE_NUMBER_ID is not configured, cannot send messages", nil
	}

	to := stringArg(args, "to")
	payload := whatsapp.BuildTemplateMessage(
		to,
		stringArg(args, "template_name"),
		stringArg(args, "language"),
		stringSliceArg(args, "header_parameters"),
		stringSliceArg(args, "body_parameters"),
	)

	result, err := h.client.Post(ctx, h.cfg.PhoneNumberID+"/messages", payload)
	if err != nil {
		return "", err
	}

	return formatSendResult(result, to, "Message sent successfully!"), nil
}

func (h *WhatsAppHandler) sendTextMessage(ctx context.Context, args map[string]interface{}) (string, error) {
	if err := requireArgs(args, "to", "message"); err != nil {
		return fmt.Sprintf("Error: %v", err), nil
	}
	if h.cfg.PhoneNumberID == "" {
		return "Error: META_PHONE_NUMBER_ID is not configured, cannot send messages", nil
	}

	to := stringArg(args, "to")
	payload := whatsapp.BuildTextMessage(to, stringArg(args, "message"))

	result, err := h.client.Post(ctx, h.cfg.PhoneNumberID+"/messages", payload)
	if err != nil {
		return "", err
	}

	return formatSendResult(result, to, "Text message sent!"), nil
}

func (h *WhatsAppHandler) getAnalytics(ctx context.Context, args map[string]interface{}) (string, error) {
	params := map[string]interface{}{
		"fields": analyticsFields,
	}
	if start := stringArg(args, "start_date"); start != "" {
		params["start"] = start
	}
	if end := stringArg(args, "end_date"); end != "" {
		params["end"] = end
	}

	result, err := h.client.Request(ctx, http.MethodGet, h.cfg.WABAID, params)
	if err != nil {
		return "", err
	}

	return formatAnalytics(result), nil
}
