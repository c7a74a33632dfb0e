// CLAUDE:SUMMARY MCP tool surface for the audit service — scan, clip, catalogs and export tools.
package audit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/openthreads/threadmark/evidence"
	"github.com/openthreads/threadmark/rules"
	"github.com/openthreads/threadmark/threadmark"
)

// RegisterMCP registers audit tools on an MCP server.
func (s *Service) RegisterMCP(srv *mcp.Server) {
	s.registerScanTool(srv)
	s.registerClipTool(srv)
	s.registerCatalogTools(srv)
	s.registerExportTool(srv)
}

func inputSchema(properties map[string]any, required []string) map[string]any {
	schema := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

// registerTool wires a decode+endpoint pair as an MCP tool. Endpoint errors
// come back as tool errors, never protocol errors.
func registerTool(srv *mcp.Server, tool *mcp.Tool,
	decode func(*mcp.CallToolRequest) (any, error),
	endpoint func(context.Context, any) (any, error)) {
	srv.AddTool(tool, func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		decoded, err := decode(req)
		if err != nil {
			var res mcp.CallToolResult
			res.SetError(fmt.Errorf("invalid arguments: %w", err))
			return &res, nil
		}

		resp, err := endpoint(ctx, decoded)
		if err != nil {
			var res mcp.CallToolResult
			res.SetError(errors.New(err.Error()))
			return &res, nil
		}

		data, err := json.Marshal(resp)
		if err != nil {
			var res mcp.CallToolResult
			res.SetError(fmt.Errorf("marshal: %w", err))
			return &res, nil
		}
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: string(data)}},
		}, nil
	})
}

// --- scan ---

type scanReq struct {
	HTML     string `json:"html"`
	URL      string `json:"url"`
	Category string `json:"category"`
}

func (s *Service) registerScanTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "threadmark_scan",
		Description: "Audit a product page: extract a snapshot from HTML, detect disclosure fields and marketing claims, and score the compliance risk.",
		InputSchema: inputSchema(map[string]any{
			"html":     map[string]any{"type": "string", "description": "Raw HTML of the product page"},
			"url":      map[string]any{"type": "string", "description": "URL of the page"},
			"category": map[string]any{"type": "string", "description": "Product category: textiles, children, cosmetics, electronics or general"},
		}, []string{"html"}),
	}

	decode := func(req *mcp.CallToolRequest) (any, error) {
		var r scanReq
		if err := json.Unmarshal(req.Params.Arguments, &r); err != nil {
			return nil, err
		}
		if r.HTML == "" {
			return nil, fmt.Errorf("html is required")
		}
		return &r, nil
	}

	endpoint := func(_ context.Context, req any) (any, error) {
		r := req.(*scanReq)
		category, _ := rules.ParseCategory(r.Category)
		return s.ScanHTML(strings.NewReader(r.HTML), r.URL, category)
	}

	registerTool(srv, tool, decode, endpoint)
}

// --- clip ---

type clipReq struct {
	Text         string `json:"text"`
	PageText     string `json:"pageText"`
	URL          string `json:"url"`
	FieldKey     string `json:"fieldKey"`
	ClaimKeyword string `json:"claimKeyword"`
}

func (s *Service) registerClipTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "threadmark_clip",
		Description: "Capture an evidence clip: a selected page excerpt with its surrounding context, optionally tied to a disclosure field or claim keyword.",
		InputSchema: inputSchema(map[string]any{
			"text":         map[string]any{"type": "string", "description": "Selected text"},
			"pageText":     map[string]any{"type": "string", "description": "Full page text the selection came from"},
			"url":          map[string]any{"type": "string", "description": "URL of the page"},
			"fieldKey":     map[string]any{"type": "string", "description": "Disclosure field key this clip substantiates"},
			"claimKeyword": map[string]any{"type": "string", "description": "Claim keyword this clip substantiates"},
		}, []string{"text", "pageText"}),
	}

	decode := func(req *mcp.CallToolRequest) (any, error) {
		var r clipReq
		if err := json.Unmarshal(req.Params.Arguments, &r); err != nil {
			return nil, err
		}
		return &r, nil
	}

	endpoint := func(_ context.Context, req any) (any, error) {
		r := req.(*clipReq)
		clip := s.Clip(r.Text, r.PageText, r.URL, &evidence.ClipOptions{
			FieldKey:     r.FieldKey,
			ClaimKeyword: r.ClaimKeyword,
		})
		if clip == nil {
			return nil, fmt.Errorf("nothing selected")
		}
		return clip, nil
	}

	registerTool(srv, tool, decode, endpoint)
}

// --- catalogs ---

func (s *Service) registerCatalogTools(srv *mcp.Server) {
	fields := &mcp.Tool{
		Name:        "threadmark_fields",
		Description: "List the disclosure field catalog: groups, keys and which fields are required.",
		InputSchema: inputSchema(map[string]any{}, nil),
	}
	registerTool(srv, fields,
		func(_ *mcp.CallToolRequest) (any, error) { return nil, nil },
		func(_ context.Context, _ any) (any, error) {
			return map[string]any{"groups": rules.FieldGroups()}, nil
		})

	claims := &mcp.Tool{
		Name:        "threadmark_claims",
		Description: "List the marketing claim keyword catalog with risk levels and required evidence.",
		InputSchema: inputSchema(map[string]any{}, nil),
	}
	registerTool(srv, claims,
		func(_ *mcp.CallToolRequest) (any, error) { return nil, nil },
		func(_ context.Context, _ any) (any, error) {
			return map[string]any{"keywords": rules.ClaimKeywords()}, nil
		})
}

// --- export ---

type exportReq struct {
	Scan       *threadmark.ScanResult `json:"scan"`
	ExportedAt string                 `json:"exportedAt"`
}

func (s *Service) registerExportTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "threadmark_export",
		Description: "Bundle a scan result into the versioned export format and return it with its derived filename.",
		InputSchema: inputSchema(map[string]any{
			"scan":       map[string]any{"type": "object", "description": "Scan result to bundle"},
			"exportedAt": map[string]any{"type": "string", "description": "Export timestamp (ISO-8601); empty uses the current time"},
		}, []string{"scan"}),
	}

	decode := func(req *mcp.CallToolRequest) (any, error) {
		var r exportReq
		if err := json.Unmarshal(req.Params.Arguments, &r); err != nil {
			return nil, err
		}
		if r.Scan == nil {
			return nil, fmt.Errorf("scan is required")
		}
		return &r, nil
	}

	endpoint := func(_ context.Context, req any) (any, error) {
		r := req.(*exportReq)
		bundle := threadmark.Build(r.Scan, r.ExportedAt)
		return map[string]any{
			"filename": threadmark.Filename(bundle),
			"bundle":   bundle,
		}, nil
	}

	registerTool(srv, tool, decode, endpoint)
}
