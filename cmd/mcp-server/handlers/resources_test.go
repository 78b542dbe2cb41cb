package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/smate-hq/whatsapp-mcp/internal/config"
	"github.com/smate-hq/whatsapp-mcp/internal/whatsapp"
)

func testResourceHandler(t *testing.T, apiHandler http.HandlerFunc) *ResourceHandler {
	t.Helper()
	srv := httptest.NewServer(apiHandler)
	t.Cleanup(srv.Close)

	cfg := config.Config{
		AccessToken: "test-token",
		WABAID:      "123456",
		APIVersion:  config.DefaultAPIVersion,
		GraphHost:   srv.URL,
		Timeout:     config.DefaultTimeout,
	}
	return NewResourceHandler(whatsapp.NewClient(cfg), cfg)
}

func TestListResources(t *testing.T) {
	h := testResourceHandler(t, func(w http.ResponseWriter, r *http.Request) {})

	resources := h.ListResources()
	if len(resources) != 2 {
		t.Fatalf("expected 2 resources, got %d", len(resources))
	}
	if resources[0].URI != ResourceTemplates || resources[1].URI != ResourceAccount {
		t.Errorf("unexpected resource URIs: %s, %s", resources[0].URI, resources[1].URI)
	}
	for _, res := range resources {
		if res.MimeType != "application/json" {
			t.Errorf("resource %s: unexpected mime type %s", res.URI, res.MimeType)
		}
	}
}

func TestReadResourceTemplates(t *testing.T) {
	h := testResourceHandler(t, func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/123456/message_templates") {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": []interface{}{map[string]interface{}{"name": "welcome_msg"}},
		})
	})

	contents, err := h.ReadResource(ResourceTemplates)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if !strings.Contains(contents, "\"name\": \"welcome_msg\"") {
		t.Errorf("unexpected contents:\n%s", contents)
	}
}

func TestReadResourceAccount(t *testing.T) {
	h := testResourceHandler(t, func(w http.ResponseWriter, r *http.Request) {
		fields := r.URL.Query().Get("fields")
		if strings.Contains(fields, "account_review_status") {
			t.Errorf("account resource should use the short field list, got %q", fields)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{"id": "123456", "name": "Acme"})
	})

	contents, err := h.ReadResource(ResourceAccount)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if !strings.Contains(contents, "\"name\": \"Acme\"") {
		t.Errorf("unexpected contents:\n%s", contents)
	}
}

func TestReadResourceUnknownURI(t *testing.T) {
	h := testResourceHandler(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no API call should be made for an unknown URI")
	})

	contents, err := h.ReadResource("whatsapp://nope")
	if err != nil {
		t.Fatalf("unknown URI must not error: %v", err)
	}
	if contents != "{}" {
		t.Errorf("expected empty object, got %q", contents)
	}
}
