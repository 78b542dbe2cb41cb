package mcp

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

const protocolVersion = "2024-11-05"

// Server holds the tool and resource registry and serves the MCP protocol
// over newline-delimited JSON-RPC on stdin/stdout. Logging must go to stderr;
// stdout carries protocol frames only.
type Server struct {
	name      string
	version   string
	tools     []Tool
	resources []Resource
	handler   ToolHandler
	reader    ResourceReader
}

// NewServer creates a new MCP server
func NewServer(name, version string) *Server {
	return &Server{
		name:    name,
		version: version,
	}
}

// RegisterTool adds a tool to the registry
func (s *Server) RegisterTool(tool Tool) {
	s.tools = append(s.tools, tool)
}

// RegisterResource adds a resource to the registry
func (s *Server) RegisterResource(resource Resource) {
	s.resources = append(s.resources, resource)
}

// Start runs the stdio serve loop until stdin is closed
func (s *Server) Start(handler ToolHandler, reader ResourceReader) error {
	s.handler = handler
	s.reader = reader
	return s.serve(os.Stdin, os.Stdout)
}

func (s *Server) serve(in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	// Tool results can carry large JSON documents
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	encoder := json.NewEncoder(out)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var request map[string]interface{}
		if err := json.Unmarshal(line, &request); err != nil {
			// Without an id there is nothing to correlate an error to
			continue
		}

		response := s.handleRequest(request)
		if response == nil {
			continue // notification
		}

		if err := encoder.Encode(response); err != nil {
			return fmt.Errorf("writing response: %w", err)
		}
	}

	return scanner.Err()
}

// handleRequest dispatches a single JSON-RPC request. It returns nil for
// notifications, which expect no response.
func (s *Server) handleRequest(request map[string]interface{}) map[string]interface{} {
	method, _ := request["method"].(string)
	id, hasID := request["id"]

	if !hasID {
		// Notifications such as notifications/initialized
		return nil
	}

	var response map[string]interface{}

	switch method {
	case "initialize":
		response = s.handleInitialize()
	case "ping":
		response = map[string]interface{}{
			"result": map[string]interface{}{},
		}
	case "tools/list":
		response = map[string]interface{}{
			"result": map[string]interface{}{
				"tools": s.tools,
			},
		}
	case "tools/call":
		response = s.handleToolCall(request)
	case "resources/list":
		response = map[string]interface{}{
			"result": map[string]interface{}{
				"resources": s.resources,
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
	response["id"] = id
	return response
}

func (s *Server) handleInitialize() map[string]interface{} {
	return map[string]interface{}{
		"result": map[string]interface{}{
			"protocolVersion": protocolVersion,
			"capabilities": map[string]interface{}{
				"tools":     map[string]interface{}{},
				"resources": map[string]interface{}{},
			},
			"serverInfo": map[string]interface{}{
				"name":    s.name,
				"version": s.version,
			},
		},
	}
}

func (s *Server) handleToolCall(request map[string]interface{}) map[string]interface{} {
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

func (s *Server) handleResourceRead(request map[string]interface{}) map[string]interface{} {
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
