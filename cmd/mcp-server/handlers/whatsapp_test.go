package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/smate-hq/whatsapp-mcp/internal/config"
	"github.com/smate-hq/whatsapp-mcp/internal/whatsapp"
	"github.com/smate-hq/whatsapp-mcp/pkg/mcp"
)

func testHandler(t *testing.T, apiHandler http.HandlerFunc) *WhatsAppHandler {
	t.Helper()
	srv := httptest.NewServer(apiHandler)
	t.Cleanup(srv.Close)

	cfg := config.Config{
		AccessToken:   "test-token",
		WABAID:        "123456",
		PhoneNumberID: "111222",
		APIVersion:    config.DefaultAPIVersion,
		GraphHost:     srv.URL,
		Timeout:       config.DefaultTimeout,
	}
	return NewWhatsAppHandler(whatsapp.NewClient(cfg), cfg)
}

func resultText(t *testing.T, result mcp.ToolResult) string {
	t.Helper()
	if len(result.Content) != 1 {
		t.Fatalf("expected a single content block, got %d", len(result.Content))
	}
	if result.Content[0].Type != "text" {
		t.Fatalf("expected text content, got %s", result.Content[0].Type)
	}
	return result.Content[0].Text
}

func TestHandleToolUnknown(t *testing.T) {
	h := testHandler(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no API call should be made for an unknown tool")
	})

	result, err := h.HandleTool(mcp.ToolCall{Name: "foo"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.IsError {
		t.Error("unknown tool should be plain text, not an error result")
	}
	if got := resultText(t, result); got != "Unknown tool: foo" {
		t.Errorf("unexpected text: %q", got)
	}
}

func TestHandleToolTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	cfg := config.Config{
		AccessToken: "test-token",
		WABAID:      "123456",
		APIVersion:  config.DefaultAPIVersion,
		GraphHost:   srv.URL,
		Timeout:     config.DefaultTimeout,
	}
	h := NewWhatsAppHandler(whatsapp.NewClient(cfg), cfg)

	result, err := h.HandleTool(mcp.ToolCall{Name: "get_account_info"})
	if err != nil {
		t.Fatalf("faults must surface as results, got error: %v", err)
	}
	if !result.IsError {
		t.Error("expected an error-flagged result")
	}
	if got := resultText(t, result); !strings.HasPrefix(got, "Exception running get_account_info:") {
		t.Errorf("unexpected fault text: %q", got)
	}
}

func TestListTemplatesFilters(t *testing.T) {
	h := testHandler(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("limit") != "50" {
			t.Errorf("expected limit 50, got %q", r.URL.Query().Get("limit"))
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": []interface{}{
				map[string]interface{}{"name": "a", "status": "APPROVED", "category": "UTILITY", "language": "es_CL"},
				map[string]interface{}{"name": "b", "status": "PENDING", "category": "UTILITY", "language": "es_CL"},
			},
		})
	})

	result, err := h.HandleTool(mcp.ToolCall{
		Name:      "list_templates",
		Arguments: map[string]interface{}{"status": "APPROVED"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	text := resultText(t, result)
	if !strings.Contains(text, "| a | UTILITY | APPROVED | es_CL |") {
		t.Errorf("expected approved row, got:\n%s", text)
	}
	if strings.Contains(text, "| b |") {
		t.Errorf("pending template should be filtered out, got:\n%s", text)
	}
	if !strings.Contains(text, "**Total: 1 templates**") {
		t.Errorf("expected filtered total, got:\n%s", text)
	}
}

func TestGetTemplateByID(t *testing.T) {
	h := testHandler(t, func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/tpl-99") {
			t.Errorf("expected node fetch by id, got path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{"id": "tpl-99", "name": "welcome_msg"})
	})

	result, err := h.HandleTool(mcp.ToolCall{
		Name:      "get_template",
		Arguments: map[string]interface{}{"template_id": "tpl-99"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text := resultText(t, result); !strings.Contains(text, "\"name\": \"welcome_msg\"") {
		t.Errorf("expected pretty-printed template, got:\n%s", text)
	}
}

func TestGetTemplateByName(t *testing.T) {
	h := testHandler(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("name") != "welcome_msg" {
			t.Errorf("expected name filter, got %q", r.URL.Query().Get("name"))
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": []interface{}{
				map[string]interface{}{"name": "welcome_msg", "status": "APPROVED"},
				map[string]interface{}{"name": "welcome_msg", "status": "REJECTED"},
			},
		})
	})

	result, err := h.HandleTool(mcp.ToolCall{
		Name:      "get_template",
		Arguments: map[string]interface{}{"template_name": "welcome_msg"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	text := resultText(t, result)
	if !strings.Contains(text, "\"status\": \"APPROVED\"") {
		t.Errorf("expected first match, got:\n%s", text)
	}
	if strings.Contains(text, "REJECTED") {
		t.Errorf("only the first match should be rendered, got:\n%s", text)
	}
}

func TestCreateTemplate(t *testing.T) {
	var gotBody map[string]interface{}
	h := testHandler(t, func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		json.Unmarshal(raw, &gotBody)
		json.NewEncoder(w).Encode(map[string]interface{}{"id": "tpl-1", "status": "PENDING"})
	})

	result, err := h.HandleTool(mcp.ToolCall{
		Name: "create_template",
		Arguments: map[string]interface{}{
			"name":          "welcome_msg",
			"category":      "UTILITY",
			"body_text":     "Hello {{1}}",
			"body_examples": []interface{}{"Ana"},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotBody["language"] != whatsapp.DefaultLanguage {
		t.Errorf("expected default language in request, got %v", gotBody["language"])
	}
	components, ok := gotBody["components"].([]interface{})
	if !ok || len(components) != 1 {
		t.Fatalf("expected single BODY component, got %v", gotBody["components"])
	}
	body := components[0].(map[string]interface{})
	if body["type"] != "BODY" || body["text"] != "Hello {{1}}" {
		t.Errorf("unexpected body component: %v", body)
	}

	if text := resultText(t, result); !strings.Contains(text, "Template created successfully!") {
		t.Errorf("expected success text, got:\n%s", text)
	}
}

func TestCreateTemplateMissingArgs(t *testing.T) {
	h := testHandler(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no API call should be made with missing arguments")
	})

	result, err := h.HandleTool(mcp.ToolCall{
		Name: "create_template",
		Arguments: map[string]interface{}{
			"name":     "welcome_msg",
			"category": "UTILITY",
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := resultText(t, result); got != "Error: body_text is required" {
		t.Errorf("unexpected text: %q", got)
	}
}

func TestDeleteTemplate(t *testing.T) {
	h := testHandler(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("expected DELETE, got %s", r.Method)
		}
		if r.URL.Query().Get("name") != "old_template" {
			t.Errorf("expected name param, got %q", r.URL.Query().Get("name"))
		}
		json.NewEncoder(w).Encode(map[string]interface{}{"success": true})
	})

	result, err := h.HandleTool(mcp.ToolCall{
		Name:      "delete_template",
		Arguments: map[string]interface{}{"template_name": "old_template"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := resultText(t, result); got != "Template 'old_template' deleted successfully" {
		t.Errorf("unexpected text: %q", got)
	}
}

func TestSendTextMessage(t *testing.T) {
	var gotPath string
	var gotBody map[string]interface{}
	h := testHandler(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		raw, _ := io.ReadAll(r.Body)
		json.Unmarshal(raw, &gotBody)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"messages": []interface{}{map[string]interface{}{"id": "wamid.abc"}},
		})
	})

	result, err := h.HandleTool(mcp.ToolCall{
		Name: "send_text_message",
		Arguments: map[string]interface{}{
			"to":      "56912345678",
			"message": "Hi",
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.HasSuffix(gotPath, "/111222/messages") {
		t.Errorf("expected messages endpoint, got %s", gotPath)
	}
	if gotBody["type"] != "text" {
		t.Errorf("unexpected payload type: %v", gotBody["type"])
	}

	text := resultText(t, result)
	if !strings.Contains(text, "Text message sent!") {
		t.Errorf("expected send heading, got:\n%s", text)
	}
	if !strings.Contains(text, "wamid.abc") {
		t.Errorf("expected message id, got:\n%s", text)
	}
}

func TestSendTemplateMessage(t *testing.T) {
	var gotBody map[string]interface{}
	h := testHandler(t, func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		json.Unmarshal(raw, &gotBody)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"messages": []interface{}{map[string]interface{}{"id": "wamid.def"}},
		})
	})

	result, err := h.HandleTool(mcp.ToolCall{
		Name: "send_template_message",
		Arguments: map[string]interface{}{
			"to":              "56912345678",
			"template_name":   "welcome_msg",
			"body_parameters": []interface{}{"Ana"},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tpl, ok := gotBody["template"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected template payload, got %v", gotBody)
	}
	if tpl["name"] != "welcome_msg" {
		t.Errorf("unexpected template name: %v", tpl["name"])
	}
	lang := tpl["language"].(map[string]interface{})
	if lang["code"] != whatsapp.DefaultLanguage {
		t.Errorf("expected default language code, got %v", lang["code"])
	}

	if text := resultText(t, result); !strings.Contains(text, "Message sent successfully!") {
		t.Errorf("expected send heading, got:\n%s", text)
	}
}

func TestSendWithoutPhoneNumberID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no API call should be made without a phone number id")
	}))
	t.Cleanup(srv.Close)

	cfg := config.Config{
		AccessToken: "test-token",
		WABAID:      "123456",
		APIVersion:  config.DefaultAPIVersion,
		GraphHost:   srv.URL,
		Timeout:     config.DefaultTimeout,
	}
	h := NewWhatsAppHandler(whatsapp.NewClient(cfg), cfg)

	result, err := h.HandleTool(mcp.ToolCall{
		Name: "send_text_message",
		Arguments: map[string]interface{}{
			"to":      "56912345678",
			"message": "Hi",
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := resultText(t, result); got != "Error: META_PHONE_NUMBER_ID is not configured, cannot send messages" {
		t.Errorf("unexpected text: %q", got)
	}
}

func TestGetAnalyticsDateRange(t *testing.T) {
	h := testHandler(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if !strings.Contains(q.Get("fields"), "conversation_analytics") {
			t.Errorf("expected analytics fields, got %q", q.Get("fields"))
		}
		if q.Get("start") != "2026-08-01" || q.Get("end") != "2026-08-30" {
			t.Errorf("expected date range params, got start=%q end=%q", q.Get("start"), q.Get("end"))
		}
		json.NewEncoder(w).Encode(map[string]interface{}{"conversation_analytics": map[string]interface{}{}})
	})

	result, err := h.HandleTool(mcp.ToolCall{
		Name: "get_analytics",
		Arguments: map[string]interface{}{
			"start_date": "2026-08-01",
			"end_date":   "2026-08-30",
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text := resultText(t, result); !strings.HasPrefix(text, "## Analytics") {
		t.Errorf("expected analytics heading, got:\n%s", text)
	}
}

func TestToolCatalogMatchesRoutes(t *testing.T) {
	h := testHandler(t, func(w http.ResponseWriter, r *http.Request) {})

	tools := h.ListTools()
	if len(tools) != len(h.routes) {
		t.Fatalf("catalog has %d tools but %d routes", len(tools), len(h.routes))
	}
	for _, tool := range tools {
		if _, ok := h.routes[tool.Name]; !ok {
			t.Errorf("catalog tool %s has no route", tool.Name)
		}
		if tool.Description == "" {
			t.Errorf("tool %s has no description", tool.Name)
		}
		if tool.InputSchema["type"] != "object" {
			t.Errorf("tool %s schema is not an object", tool.Name)
		}
	}
}
