package handlers

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Formatters turn raw Graph API response documents into text. They never
// fail: a response missing its success marker is rendered through the error
// path with the full document embedded, so the caller always gets a valid
// result to return.

const (
	// notAvailable fills in for fields absent from a response
	notAvailable = "N/A"
	// defaultCreateStatus is assumed when a create response omits status;
	// new templates start in review
	defaultCreateStatus = "PENDING"
)

func prettyJSON(v interface{}) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(data)
}

func compactJSON(v interface{}) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(data)
}

func stringField(m map[string]interface{}, key, fallback string) string {
	if v, ok := m[key].(string); ok && v != "" {
		return v
	}
	return fallback
}

func formatErrorDocument(prefix string, result map[string]interface{}) string {
	return fmt.Sprintf("%s: %s", prefix, compactJSON(result))
}

// filterTemplates keeps the entries matching both the status and category
// filters. An empty filter matches everything, so no filters returns the
// input unchanged.
func filterTemplates(data []interface{}, status, category string) []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(data))
	for _, item := range data {
		tpl, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		if status != "" && stringField(tpl, "status", "") != status {
			continue
		}
		if category != "" && stringField(tpl, "category", "") != category {
			continue
		}
		out = append(out, tpl)
	}
	return out
}

func formatTemplateList(result map[string]interface{}, status, category string) string {
	data, ok := result["data"].([]interface{})
	if !ok {
		return formatErrorDocument("Error", result)
	}

	templates := filterTemplates(data, status, category)

	var b strings.Builder
	b.WriteString("## WhatsApp Templates\n\n")
	b.WriteString("| Name | Category | Status | Language |\n")
	b.WriteString("|------|----------|--------|----------|\n")
	for _, tpl := range templates {
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
			stringField(tpl, "name", notAvailable),
			stringField(tpl, "category", notAvailable),
			stringField(tpl, "status", notAvailable),
			stringField(tpl, "language", notAvailable))
	}
	fmt.Fprintf(&b, "\n**Total: %d templates**", len(templates))
	return b.String()
}

// formatCreateResult reports a created template. Presence of an id is the
// success marker; anything else is the API explaining a rejection.
func formatCreateResult(result map[string]interface{}, requestedCategory string) string {
	id, ok := result["id"].(string)
	if !ok {
		return fmt.Sprintf("Error creating template: %s", prettyJSON(result))
	}

	return fmt.Sprintf("Template created successfully!\n\n- **ID**: %s\n- **Status**: %s\n- **Category**: %s",
		id,
		stringField(result, "status", defaultCreateStatus),
		stringField(result, "category", requestedCategory))
}

func formatDeleteResult(result map[string]interface{}, templateName string) string {
	if success, ok := result["success"].(bool); ok && success {
		return fmt.Sprintf("Template '%s' deleted successfully", templateName)
	}
	return formatErrorDocument("Error", result)
}

// formatSendResult extracts the id of the first accepted message
func formatSendResult(result map[string]interface{}, recipient, heading string) string {
	messages, ok := result["messages"].([]interface{})
	if !ok || len(messages) == 0 {
		return fmt.Sprintf("Error sending message: %s", prettyJSON(result))
	}

	messageID := notAvailable
	if first, ok := messages[0].(map[string]interface{}); ok {
		messageID = stringField(first, "id", notAvailable)
	}

	return fmt.Sprintf("%s\n\n- **Message ID**: %s\n- **To**: %s", heading, messageID, recipient)
}

func formatAccountInfo(result map[string]interface{}) string {
	return fmt.Sprintf("## WABA Account Info\n\n```json\n%s\n```", prettyJSON(result))
}

func formatPhoneNumbers(result map[string]interface{}) string {
	data, ok := result["data"].([]interface{})
	if !ok {
		return formatErrorDocument("Error", result)
	}

	var b strings.Builder
	b.WriteString("## Phone Numbers\n\n")
	for _, item := range data {
		phone, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "- **%s** (%s)\n", stringField(phone, "display_phone_number", notAvailable), stringField(phone, "verified_name", notAvailable))
		fmt.Fprintf(&b, "  - Quality: %s\n", stringField(phone, "quality_rating", notAvailable))
		fmt.Fprintf(&b, "  - Limit: %s\n", stringField(phone, "messaging_limit_tier", notAvailable))
		fmt.Fprintf(&b, "  - ID: %s\n\n", stringField(phone, "id", notAvailable))
	}
	return b.String()
}

func formatAnalytics(result map[string]interface{}) string {
	return fmt.Sprintf("## Analytics\n\n```json\n%s\n```", prettyJSON(result))
}
