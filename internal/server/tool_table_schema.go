package server

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/joacominatel/cosmoschema/internal/app"
	"github.com/joacominatel/cosmoschema/internal/metrics"
)

const tableSchemaToolName = "get_table_schema"

const tableSchemaToolDescription = `Get the schema definition of a specific table.
Returns the table's columns in ordinal order with their data types, maximum lengths,
nullability and default expressions. If the table does not exist the result is
"No table found with name '<table_name>'".`

type TableSchemaInput struct {
	TableName string `json:"table_name" jsonschema:"The name of the table to get the schema for"`
}

// RegisterTableSchemaTool adds the get_table_schema tool to server.
func RegisterTableSchemaTool(log *slog.Logger, server *mcp.Server, svc *app.Service) error {
	if svc == nil {
		return fmt.Errorf("service is required")
	}

	req, err := jsonschema.For[TableSchemaInput](nil)
	if err != nil {
		return fmt.Errorf("failed to create table schema input schema: %w", err)
	}
	req.Required = []string{"table_name"}

	tool := &mcp.Tool{
		Name:        tableSchemaToolName,
		Description: tableSchemaToolDescription,
		InputSchema: req,
	}

	handler := func(ctx context.Context, _ *mcp.CallToolRequest, in TableSchemaInput) (*mcp.CallToolResult, any, error) {
		startTime := time.Now()
		callLog := log.With("call_id", uuid.NewString(), "table", in.TableName)
		callLog.Debug("mcp/tool: handling table schema")

		report, err := svc.LoadReport(ctx, in.TableName)
		metrics.ToolCallDuration.WithLabelValues(tableSchemaToolName).Observe(time.Since(startTime).Seconds())
		if err != nil {
			callLog.Warn("mcp/tool: table schema failed", "error", err)
			metrics.ToolCallsTotal.WithLabelValues(tableSchemaToolName, metrics.StatusError).Inc()
			return nil, nil, err
		}

		status := metrics.StatusSuccess
		if !report.Found() {
			status = metrics.StatusNotFound
		}
		metrics.ToolCallsTotal.WithLabelValues(tableSchemaToolName, status).Inc()
		callLog.Debug("mcp/tool: table schema done", "columns", len(report.Columns), "status", status)

		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: report.String()}},
		}, nil, nil
	}

	mcp.AddTool(server, tool, handler)

	return nil
}
