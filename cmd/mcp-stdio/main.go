package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/smate-hq/whatsapp-mcp/cmd/mcp-server/handlers"
	"github.com/smate-hq/whatsapp-mcp/internal/config"
	"github.com/smate-hq/whatsapp-mcp/internal/logging"
	"github.com/smate-hq/whatsapp-mcp/internal/whatsapp"
	"github.com/smate-hq/whatsapp-mcp/pkg/mcp"
)

const (
	serverName    = "meta-whatsapp"
	serverVersion = "1.0.0"
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

	client := whatsapp.NewClient(cfg)

	// Probe the account node so a bad token is visible in the logs before
	// the first tool call, without blocking startup on it.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := whatsapp.ValidateCredentials(ctx, client, cfg.WABAID); err != nil {
		log.Warnw("credential check failed", "error", err)
	}
	cancel()

	whatsappHandler := handlers.NewWhatsAppHandler(client, cfg)
	resourceHandler := handlers.NewResourceHandler(client, cfg)

	server := mcp.NewServer(serverName, serverVersion)
	for _, tool := range whatsappHandler.ListTools() {
		server.RegisterTool(tool)
	}
	for _, resource := range resourceHandler.ListResources() {
		server.RegisterResource(resource)
	}

	log.Infow("starting stdio server", "name", serverName, "version", serverVersion)

	if err := server.Start(whatsappHandler.HandleTool, resourceHandler.ReadResource); err != nil {
		log.Errorw("serve loop ended", "error", err)
		os.Exit(1)
	}
}
