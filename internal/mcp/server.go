package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/nicolelu/esign/internal/config"
	"github.com/nicolelu/esign/internal/descriptions"
	"github.com/nicolelu/esign/internal/detect"
	"github.com/nicolelu/esign/internal/pdf"
)

// Server represents the MCP server instance
type Server struct {
	config     *config.Config
	pdfService *pdf.Service
	detector   *detect.FieldDetector
	mcpServer  *server.MCPServer
}

// NewServer creates a new MCP server instance
func NewServer(cfg *config.Config, pdfService *pdf.Service) (*Server, error) {
	if pdfService == nil {
		return nil, fmt.Errorf("pdfService cannot be nil")
	}

	detectConfig := detect.DefaultDetectionConfig()
	detectConfig.DetectionConfidenceThreshold = cfg.Threshold
	detectConfig.OverlapThreshold = cfg.OverlapThreshold

	// Create MCP server
	mcpServer := server.NewMCPServer(
		cfg.ServerName,
		cfg.Version,
		server.WithToolCapabilities(false), // We don't support dynamic tool capabilities
	)

	s := &Server{
		config:     cfg,
		pdfService: pdfService,
		detector:   detect.NewFieldDetectorWithConfig(detectConfig),
		mcpServer:  mcpServer,
	}

	// Register tools
	s.registerTools()

	return s, nil
}

// registerTools registers all available MCP tools
func (s *Server) registerTools() {
	// Register field detection tool
	detectFieldsTool := mcp.NewTool(
		"detect_fields",
		mcp.WithDescription(descriptions.DetectFieldsDescription),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full path to the PDF file"),
		),
		mcp.WithNumber("threshold",
			mcp.Description("Optional confidence threshold override between 0.0 and 1.0"),
		),
	)
	s.mcpServer.AddTool(detectFieldsTool, s.handleDetectFields)

	// Register PDF validate file tool
	pdfValidateFileTool := mcp.NewTool(
		"pdf_validate_file",
		mcp.WithDescription(descriptions.PDFValidateFileDescription),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full path to the PDF file"),
		),
	)
	s.mcpServer.AddTool(pdfValidateFileTool, s.handlePDFValidateFile)

	// Register server info tool
	serverInfoTool := mcp.NewTool(
		"detection_server_info",
		mcp.WithDescription(descriptions.DetectionServerInfoDescription),
	)
	s.mcpServer.AddTool(serverInfoTool, s.handleDetectionServerInfo)
}

// Handler functions
func (s *Server) handleDetectFields(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	detector := s.detector
	if threshold, ok := request.GetArguments()["threshold"].(float64); ok {
		if threshold < 0.0 || threshold > 1.0 {
			return mcp.NewToolResultError("threshold must be between 0.0 and 1.0"), nil
		}
		cfg := s.detector.Config()
		cfg.DetectionConfidenceThreshold = threshold
		detector = detect.NewFieldDetectorWithConfig(cfg)
	}

	doc, err := s.pdfService.LoadDocument(path)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := detector.Detect(ctx, doc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	responseText, err := s.formatDetectionResult(path, result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handlePDFValidateFile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	req := pdf.PDFValidateFileRequest{Path: path}
	result, err := s.pdfService.PDFValidateFile(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var responseText string
	if result.Valid {
		responseText = fmt.Sprintf("PDF file %s is valid and readable", result.Path)
	} else {
		responseText = fmt.Sprintf("PDF validation failed for %s: %s", result.Path, result.Message)
	}

	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handleDetectionServerInfo(ctx context.Context, request mcp.CallToolRequest) (
	*mcp.CallToolResult, error,
) {
	return mcp.NewToolResultText(s.formatServerInfo()), nil
}

// Formatting methods
func (s *Server) formatDetectionResult(path string, result *detect.DetectionResult) (string, error) {
	text := fmt.Sprintf("Detected %d signable field(s) in %s\n", len(result.DetectedFields), path)
	text += fmt.Sprintf("Candidates considered: %d, kept after filtering: %d\n",
		result.TotalCandidates, result.FilteredCandidates)
	text += fmt.Sprintf("Detection time: %.2f ms\n", result.DetectionTimeMS)

	if len(result.DetectedFields) > 0 {
		text += "\nFields:\n"
		for i, field := range result.DetectedFields {
			text += fmt.Sprintf("%d. %s on page %d at (%.1f, %.1f) %gx%g\n",
				i+1, field.FieldType, field.PageNumber,
				field.BBox.X, field.BBox.Y, field.BBox.Width, field.BBox.Height)
			switch field.AssigneeType {
			case detect.AssigneeSender:
				text += "   Assignee: sender"
				if field.SenderVariableKey != "" {
					text += fmt.Sprintf(" (variable: %s)", field.SenderVariableKey)
				}
				text += "\n"
			case detect.AssigneeRole:
				text += fmt.Sprintf("   Assignee: role %q (confidence %.2f)\n",
					field.DetectedRoleKey, field.RoleConfidence)
			}
			text += fmt.Sprintf("   Confidence: detection %.2f, classification %.2f\n",
				field.DetectionConfidence, field.ClassificationConfidence)
			if field.Label != "" {
				text += fmt.Sprintf("   Label: %s\n", field.Label)
			}
			text += fmt.Sprintf("   Evidence: %s\n", field.Evidence)
		}
	}

	// Machine-readable payload alongside the summary so clients don't
	// have to parse the prose.
	payload, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode detection result: %w", err)
	}
	text += "\nJSON:\n" + string(payload) + "\n"

	return text, nil
}

func (s *Server) formatServerInfo() string {
	cfg := s.detector.Config()

	text := fmt.Sprintf("%s v%s - Server Information\n", s.config.ServerName, s.config.Version)
	text += fmt.Sprintf("PDF directory: %s\n", s.config.PDFDirectory)
	text += fmt.Sprintf("Max file size: %d MB\n", s.pdfService.GetMaxFileSize()/(1024*1024))
	text += fmt.Sprintf("Confidence threshold: %.2f\n", cfg.DetectionConfidenceThreshold)
	text += fmt.Sprintf("Overlap threshold: %.2f\n", cfg.OverlapThreshold)

	text += "\nDetection strategies (highest priority first):\n"
	text += "  • anchor_tag - embedded [type|role:key] placement tags\n"
	text += "  • sender_variable - {{identifier}} merge variables\n"
	text += "  • form_widget - AcroForm widget annotations\n"
	text += "  • keyword - field labels such as \"Signature:\" and \"Date Signed:\"\n"
	text += "  • underline - drawn signing lines and underscore runs\n"
	text += "  • shape - small squares rendered as checkboxes\n"

	text += "\nAvailable tools:\n"
	for _, name := range []string{"detect_fields", "pdf_validate_file", "detection_server_info"} {
		text += fmt.Sprintf("  • %s\n", name)
	}

	return text
}

// Run starts the MCP server in the configured mode
func (s *Server) Run(ctx context.Context) error {
	if s.config.IsServerMode() {
		return s.runServerMode(ctx)
	} else {
		return s.runStdioMode(ctx)
	}
}

// runStdioMode runs the server in stdio mode
func (s *Server) runStdioMode(_ context.Context) error {
	if s.config.IsDebug() {
		log.Printf("Starting field detection MCP server in stdio mode")
		log.Printf("PDF directory: %s", s.config.PDFDirectory)
	}

	// Use the mark3labs/mcp-go server.ServeStdio function
	if err := server.ServeStdio(s.mcpServer); err != nil {
		return fmt.Errorf("failed to serve stdio: %w", err)
	}
	return nil
}

// runServerMode runs the server in HTTP server mode
func (s *Server) runServerMode(ctx context.Context) error {
	// For now, we'll just use stdio mode since the mark3labs library
	// handles the transport differently
	log.Printf("Server mode not yet implemented with mark3labs/mcp-go")
	log.Printf("Falling back to stdio mode")
	return s.runStdioMode(ctx)
}
