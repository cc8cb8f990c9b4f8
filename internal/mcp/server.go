// Package mcp provides the stdio MCP server exposing contact tools to agents.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/go-ports/phonebook/internal/buildinfo"
	"github.com/go-ports/phonebook/internal/config"
	"github.com/go-ports/phonebook/internal/models"
	"github.com/go-ports/phonebook/internal/service"
	"github.com/go-ports/phonebook/internal/transfer"
)

var formats = []string{string(transfer.JSON), string(transfer.CSV)}

const updateDescription = `Update an existing contact. Only the fields you pass are changed; omitted fields keep their stored value. Pass clear_email=true to remove the email address. Updating an unknown id changes nothing and reports updated=false.` //nolint:lll

const importDescription = `Import contacts from a JSON array or a CSV file with an id,name,phone,email header. Every record with a non-blank name and phone is added with a new id; other records are skipped. A missing or unparseable file imports nothing.` //nolint:lll

// NewServer creates and registers all contact tools on a new MCP server.
// It is separate from Serve so tests can drive it over an in-process transport.
func NewServer(svc *service.Service) *mcpserver.MCPServer {
	s := mcpserver.NewMCPServer("phonebook", buildinfo.Version)
	registerTools(s, svc)
	return s
}

// Serve runs the stdio MCP server for svc, blocking until stdin closes.
func Serve(_ context.Context, svc *service.Service) error {
	if err := mcpserver.ServeStdio(NewServer(svc)); err != nil {
		return fmt.Errorf("mcp.Serve: %w", err)
	}
	return nil
}

func registerTools(s *mcpserver.MCPServer, svc *service.Service) {
	s.AddTool(mcp.NewTool("contact_add",
		mcp.WithDescription("Add a contact. Name and phone are required; email is optional."),
		mcp.WithString("name", mcp.Description("Display name."), mcp.Required()),
		mcp.WithString("phone", mcp.Description("Phone number, free-form."), mcp.Required()),
		mcp.WithString("email", mcp.Description("Email address.")),
	), func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleAdd(svc, req)
	})

	s.AddTool(mcp.NewTool("contact_list",
		mcp.WithDescription("List all contacts ordered by name."),
	), func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleList(svc)
	})

	s.AddTool(mcp.NewTool("contact_get",
		mcp.WithDescription("Fetch one contact by id."),
		mcp.WithNumber("id", mcp.Description("Contact id."), mcp.Required()),
	), func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleGet(svc, req)
	})

	s.AddTool(mcp.NewTool("contact_update",
		mcp.WithDescription(updateDescription),
		mcp.WithNumber("id", mcp.Description("Contact id."), mcp.Required()),
		mcp.WithString("name", mcp.Description("New name.")),
		mcp.WithString("phone", mcp.Description("New phone.")),
		mcp.WithString("email", mcp.Description("New email. An empty string removes it.")),
		mcp.WithBoolean("clear_email", mcp.Description("Remove the stored email.")),
	), func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleUpdate(svc, req)
	})

	s.AddTool(mcp.NewTool("contact_delete",
		mcp.WithDescription("Delete a contact by id. Ids are never reused."),
		mcp.WithNumber("id", mcp.Description("Contact id."), mcp.Required()),
	), func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleDelete(svc, req)
	})

	s.AddTool(mcp.NewTool("contact_export",
		mcp.WithDescription("Write every contact to a JSON or CSV file, replacing the file."),
		mcp.WithString("format", mcp.Enum(formats...), mcp.Required()),
		mcp.WithString("path", mcp.Description("Target file. Defaults to the configured transfer file.")),
	), func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleExport(svc, req)
	})

	s.AddTool(mcp.NewTool("contact_import",
		mcp.WithDescription(importDescription),
		mcp.WithString("format", mcp.Enum(formats...), mcp.Required()),
		mcp.WithString("path", mcp.Description("Source file. Defaults to the configured transfer file.")),
	), func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleImport(svc, req)
	})
}

// ---------------------------------------------------------------------------
// Tool handlers
// ---------------------------------------------------------------------------

func handleAdd(svc *service.Service, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := svc.Add(&models.ContactInput{
		Name:  req.GetString("name", ""),
		Phone: req.GetString("phone", ""),
		Email: req.GetString("email", ""),
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(map[string]any{"id": id})
}

func handleList(svc *service.Service) (*mcp.CallToolResult, error) {
	contacts, err := svc.List()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out := make([]map[string]any, 0, len(contacts))
	for i := range contacts {
		out = append(out, contactView(&contacts[i]))
	}
	return jsonResult(map[string]any{
		"total":    len(out),
		"contacts": out,
	})
}

func handleGet(svc *service.Service, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := idArg(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	c, err := svc.Get(id)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if c == nil {
		return mcp.NewToolResultError(fmt.Sprintf("no contact found with id %d", id)), nil
	}
	return jsonResult(contactView(c))
}

func handleUpdate(svc *service.Service, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := idArg(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	upd, err := updateArgs(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	found, err := svc.Update(id, upd)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(map[string]any{"id": id, "updated": found})
}

func handleDelete(svc *service.Service, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := idArg(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	deleted, err := svc.Delete(id)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(map[string]any{"id": id, "deleted": deleted})
}

func handleExport(svc *service.Service, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	f, err := transfer.ParseFormat(req.GetString("format", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	path := pathArg(req, svc.Config, f)
	n, err := svc.Export(path, f)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(map[string]any{"path": path, "exported": n})
}

func handleImport(svc *service.Service, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	f, err := transfer.ParseFormat(req.GetString("format", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	path := pathArg(req, svc.Config, f)
	res, err := svc.Import(path, f)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(map[string]any{
		"path":     path,
		"imported": res.Imported,
		"skipped":  res.Skipped,
	})
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func jsonResult(v any) (*mcp.CallToolResult, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}

// contactView is the wire shape of a contact; a missing email is null.
func contactView(c *models.Contact) map[string]any {
	var email any
	if c.Email != nil {
		email = *c.Email
	}
	return map[string]any{
		"id":    c.ID,
		"name":  c.Name,
		"phone": c.Phone,
		"email": email,
	}
}

func idArg(req mcp.CallToolRequest) (int64, error) {
	id := req.GetInt("id", 0)
	if id <= 0 {
		return 0, fmt.Errorf("%w: id must be a positive integer", models.ErrValidation)
	}
	return int64(id), nil
}

// updateArgs builds a ContactUpdate from the arguments actually supplied.
func updateArgs(req mcp.CallToolRequest) (*models.ContactUpdate, error) {
	args := req.GetArguments()
	upd := &models.ContactUpdate{}
	if v, ok := args["name"].(string); ok {
		upd.Name = &v
	}
	if v, ok := args["phone"].(string); ok {
		upd.Phone = &v
	}
	email, hasEmail := args["email"].(string)
	clearEmail := req.GetBool("clear_email", false)
	switch {
	case hasEmail && clearEmail && email != "":
		return nil, fmt.Errorf("%w: email and clear_email are mutually exclusive", models.ErrValidation)
	case clearEmail:
		cleared := ""
		upd.Email = &cleared
	case hasEmail:
		upd.Email = &email
	}
	return upd, nil
}

// pathArg returns the path argument or the configured default file for f.
func pathArg(req mcp.CallToolRequest, cfg *config.Config, f transfer.Format) string {
	if p := req.GetString("path", ""); p != "" {
		return p
	}
	if f == transfer.CSV {
		return cfg.Transfer.CSVFile
	}
	return cfg.Transfer.JSONFile
}
