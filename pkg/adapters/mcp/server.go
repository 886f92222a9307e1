package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/typeb"
	"github.com/aretw0/typeb/pkg/domain"
	"github.com/aretw0/typeb/pkg/keysheet"
	"github.com/aretw0/typeb/pkg/ports"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// CipherArgs are the arguments of the encrypt and decrypt tools.
type CipherArgs struct {
	Text      string `json:"text"`
	Key       string `json:"key,omitempty"`
	Switches  string `json:"switches,omitempty"`
	Plugboard string `json:"plugboard,omitempty"`
	Mode      string `json:"mode,omitempty"`
	Policy    string `json:"policy,omitempty"`
}

// CipherResult is the structured output of the encrypt and decrypt tools.
type CipherResult struct {
	Text     string           `json:"text" jsonschema_description:"Transformed text"`
	Switches string           `json:"switches" jsonschema_description:"Starting switch settings in key-sheet shorthand"`
	Final    domain.Positions `json:"final" jsonschema_description:"Switch positions after the last letter (0-based)"`
}

// KeySheetArgs are the arguments of parse_keysheet.
type KeySheetArgs struct {
	Switches string `json:"switches"`
}

// KeySheetResult explains a shorthand switch setting.
type KeySheetResult struct {
	Positions domain.Positions `json:"positions" jsonschema_description:"Starting positions, 0-based"`
	Speeds    domain.Speeds    `json:"speeds" jsonschema_description:"Twenties switch number (1-3) for each speed"`
	Canonical string           `json:"canonical" jsonschema_description:"Normalized shorthand"`
}

// Server exposes the machine as an MCP server.
type Server struct {
	store     ports.KeyStore
	hooks     domain.LifecycleHooks
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance. store may be nil, in which case tools
// only accept inline settings and the keys resource is not registered.
func NewServer(store ports.KeyStore, hooks domain.LifecycleHooks) *Server {
	s := &Server{
		store:     store,
		hooks:     hooks,
		mcpServer: server.NewMCPServer("typeb-mcp", typeb.Version),
	}
	s.registerTools()
	if store != nil {
		s.registerResources()
	}
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves MCP over SSE on the given port until ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func (s *Server) registerTools() {
	cipherOpts := func(desc string) []mcp.ToolOption {
		return []mcp.ToolOption{
			mcp.WithDescription(desc),
			mcp.WithString("text", mcp.Required(), mcp.Description("Message text")),
			mcp.WithString("key", mcp.Description("Name of a stored key sheet")),
			mcp.WithString("switches", mcp.Description("Switch settings in shorthand, e.g. 9-1,24,6-23 (when no key is given)")),
			mcp.WithString("plugboard", mcp.Description("26-letter plugboard permutation (when no key is given)")),
			mcp.WithString("mode", mcp.Description("Stepping rule"), mcp.Enum("cascade", "typeb")),
			mcp.WithString("policy", mcp.Description("Non-letter handling"), mcp.Enum("pass-through", "reject", "strip")),
			mcp.WithOutputSchema[CipherResult](),
		}
	}

	// TOOL: encrypt
	s.mcpServer.AddTool(
		mcp.NewTool("encrypt", cipherOpts("Encipher text with a fresh Type B machine.")...),
		mcp.NewStructuredToolHandler(s.cipherHandler(domain.Encipher)),
	)

	// TOOL: decrypt
	s.mcpServer.AddTool(
		mcp.NewTool("decrypt", cipherOpts("Decipher text with a fresh Type B machine set to the same key.")...),
		mcp.NewStructuredToolHandler(s.cipherHandler(domain.Decipher)),
	)

	// TOOL: parse_keysheet
	s.mcpServer.AddTool(mcp.NewTool("parse_keysheet",
		mcp.WithDescription("Explain shorthand switch settings such as 9-1,24,6-23."),
		mcp.WithString("switches", mcp.Required(), mcp.Description("Shorthand switch settings")),
		mcp.WithOutputSchema[KeySheetResult](),
	), mcp.NewStructuredToolHandler(s.handleParseKeySheet))
}

func (s *Server) cipherHandler(dir domain.Direction) func(context.Context, mcp.CallToolRequest, CipherArgs) (CipherResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest, args CipherArgs) (CipherResult, error) {
		sheet, err := s.sheetFor(ctx, args)
		if err != nil {
			return CipherResult{}, err
		}

		m, err := typeb.New(typeb.WithKeySheet(sheet), typeb.WithLifecycleHooks(s.hooks))
		if err != nil {
			return CipherResult{}, err
		}

		var out string
		if dir == domain.Encipher {
			out, err = m.EncryptContext(ctx, args.Text)
		} else {
			out, err = m.DecryptContext(ctx, args.Text)
		}
		if err != nil {
			return CipherResult{}, err
		}

		settings := m.Settings()
		return CipherResult{
			Text:     out,
			Switches: keysheet.Format(settings.Positions, settings.Speeds),
			Final:    m.Positions(),
		}, nil
	}
}

func (s *Server) sheetFor(ctx context.Context, args CipherArgs) (keysheet.Sheet, error) {
	inline := keysheet.Sheet{
		Switches:  args.Switches,
		Plugboard: args.Plugboard,
		Mode:      args.Mode,
		Policy:    args.Policy,
	}
	if args.Key == "" {
		if args.Switches == "" {
			return keysheet.Sheet{}, errors.New("either key or switches is required")
		}
		return inline, nil
	}
	if s.store == nil {
		return keysheet.Sheet{}, errors.New("no key store configured; pass switches instead of key")
	}
	if args.Switches != "" || args.Plugboard != "" {
		return keysheet.Sheet{}, errors.New("key cannot be combined with switches or plugboard")
	}

	sheet, err := s.store.Load(ctx, args.Key)
	if err != nil {
		return keysheet.Sheet{}, fmt.Errorf("key %q: %w", args.Key, err)
	}
	// mode and policy may still be overridden per call
	if args.Mode != "" {
		sheet.Mode = args.Mode
	}
	if args.Policy != "" {
		sheet.Policy = args.Policy
	}
	return sheet, nil
}

func (s *Server) handleParseKeySheet(ctx context.Context, request mcp.CallToolRequest, args KeySheetArgs) (KeySheetResult, error) {
	pos, speeds, err := keysheet.Parse(args.Switches)
	if err != nil {
		return KeySheetResult{}, err
	}
	return KeySheetResult{
		Positions: pos,
		Speeds:    speeds,
		Canonical: keysheet.Format(pos, speeds),
	}, nil
}

func (s *Server) registerResources() {
	// EXPOSE: typeb://keys
	s.mcpServer.AddResource(mcp.NewResource("typeb://keys", "Stored key sheet names",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		names, err := s.store.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list keys: %w", err)
		}
		jsonBytes, _ := json.Marshal(names)

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "typeb://keys",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
