package mcp

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// SSEServer implements the MCP protocol over Server-Sent Events
type SSEServer struct {
	server  *Server
	handler ToolHandler
	reader  ResourceReader
}

// NewSSEServer creates a new SSE-based MCP server
func NewSSEServer(server *Server, handler ToolHandler, reader ResourceReader) *SSEServer {
	return &SSEServer{
		server:  server,
		handler: handler,
		reader:  reader,
	}
}

// HandleSSE serves the long-lived event stream
func (s *SSEServer) HandleSSE(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	// Send initial connection message
	fmt.Fprintf(w, "event: endpoint\ndata: /message\n\n")
	flusher.Flush()

	// Keep connection alive
	<-r.Context().Done()
}

// HandleMessage serves JSON-RPC requests posted by SSE clients
func (s *SSEServer) HandleMessage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var request map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	method, _ := request["method"].(string)
	var response map[string]interface{}

	switch method {
	case "initialize":
		response = s.server.handleInitialize()
	case "tools/list":
		response = map[string]interface{}{
			"result": map[string]interface{}{
				"tools": s.server.tools,
			},
		}
	case "tools/call":
		response = s.handleToolCall(request)
	case "resources/list":
		response = map[string]interface{}{
			"result": map[string]interface{}{
				"resources": s.server.resources,
			},
		}
	case "resources/read":
		response = s.handleResourceRead(request)
	default:
		response = map[string]interface{}{
			"error": map[string]interface{}{
				"code":    -32601,
				"message": fmt.Sprintf("Method not found: %s", method),
			},
		}
	}

	response["jsonrpc"] = "2.0"
	if id, ok := request["id"]; ok {
		response["id"] = id
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

func (s *SSEServer) handleToolCall(request map[string]interface{}) map[string]interface{} {
	params, ok := request["params"].(map[string]interface{})
	if !ok {
		return map[string]interface{}{
			"error": map[string]interface{}{
				"code":    -32602,
				"message": "Invalid params",
			},
		}
	}

	name, _ := params["name"].(string)
	arguments, _ := params["arguments"].(map[string]interface{})

	result, err := s.handler(ToolCall{Name: name, Arguments: arguments})
	if err != nil {
		return map[string]interface{}{
			"error": map[string]interface{}{
				"code":    -32000,
				"message": err.Error(),
			},
		}
	}

	return map[string]interface{}{
		"result": result,
	}
}

func (s *SSEServer) handleResourceRead(request map[string]interface{}) map[string]interface{} {
	params, ok := request["params"].(map[string]interface{})
	if !ok {
		return map[string]interface{}{
			"error": map[string]interface{}{
				"code":    -32602,
				"message": "Invalid params",
			},
		}
	}

	uri, _ := params["uri"].(string)

	contents, err := s.reader(uri)
	if err != nil {
		return map[string]interface{}{
			"error": map[string]interface{}{
				"code":    -32000,
				"message": err.Error(),
			},
		}
	}

	return map[string]interface{}{
		"result": map[string]interface{}{
			"contents": []map[string]interface{}{
				{
					"uri":      uri,
					"mimeType": "application/json",
					"text":     contents,
				},
			},
		},
	}
}
