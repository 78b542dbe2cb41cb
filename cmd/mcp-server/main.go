package main

import (
	"fmt"
	"net/http"
	"os"
	"strconv"

	"github.com/smate-hq/whatsapp-mcp/cmd/mcp-server/auth"
	"github.com/smate-hq/whatsapp-mcp/cmd/mcp-server/handlers"
	"github.com/smate-hq/whatsapp-mcp/internal/config"
	"github.com/smate-hq/whatsapp-mcp/internal/logging"
	"github.com/smate-hq/whatsapp-mcp/internal/whatsapp"
	"github.com/smate-hq/whatsapp-mcp/pkg/mcp"
)

const (
	serverName    = "meta-whatsapp"
	serverVersion = "1.0.0"

	defaultPort = 3000
)

func main() {
	config.LoadEnv(".env")
	logging.Init(os.Getenv("MCP_VERBOSE") == "true")
	log := logging.L()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	tokenAuth := auth.NewTokenAuth()
	if tokenAuth == nil {
		log.Warnw("no MCP_SERVICE_TOKEN or MCP_JWT_SECRET set, running without authentication")
	}

	client := whatsapp.NewClient(cfg)
	whatsappHandler := handlers.NewWhatsAppHandler(client, cfg)
	resourceHandler := handlers.NewResourceHandler(client, cfg)

	server := mcp.NewServer(serverName, serverVersion)
	for _, tool := range whatsappHandler.ListTools() {
		server.RegisterTool(tool)
	}
	for _, resource := range resourceHandler.ListResources() {
		server.RegisterResource(resource)
	}

	sseServer := mcp.NewSSEServer(server, whatsappHandler.HandleTool, resourceHandler.ReadResource)
	httpServer := mcp.NewHTTPServer(server, whatsappHandler.HandleTool)

	mux := http.NewServeMux()
	httpServer.Register(mux)

	if tokenAuth != nil {
		authMiddleware := auth.RequireAuth(tokenAuth)
		mux.Handle("/sse", authMiddleware.HandlerFunc(sseServer.HandleSSE))
		mux.Handle("/message", authMiddleware.HandlerFunc(sseServer.HandleMessage))
	} else {
		mux.HandleFunc("/sse", sseServer.HandleSSE)
		mux.HandleFunc("/message", sseServer.HandleMessage)
	}

	port := defaultPort
	if p, err := strconv.Atoi(os.Getenv("MCP_PORT")); err == nil && p > 0 {
		port = p
	}

	log.Infow("starting HTTP server", "port", port, "sse", "/sse", "tools", "/tools")

	if err := http.ListenAndServe(fmt.Sprintf(":%d", port), corsMiddleware(mux)); err != nil {
		log.Errorw("server stopped", "error", err)
		os.Exit(1)
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
