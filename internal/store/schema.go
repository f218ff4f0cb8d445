package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

const llmRequestEventsTable = "llm_request_events"

// Column names of llm_request_events.
const (
	columnID           = "id"
	columnTimestamp    = "timestamp"
	columnProvider     = "provider"
	columnModel        = "model"
	columnPurpose      = "purpose"
	columnRequestID    = "request_id"
	columnInputTokens  = "input_tokens"
	columnOutputTokens = "output_tokens"
	columnLatencyMs    = "latency_ms"
	columnSuccess      = "success"
	columnErrorMessage = "error_message"
	columnRequestBody  = "request_body"
	columnResponseBody = "response_body"
)

var (
	// LLMRequestEventsColumns holds the columns of the request log. Every
	// provider call, successful or not, becomes one row.
	LLMRequestEventsColumns = []*schema.Column{
		{Name: columnID, Type: field.TypeInt, Increment: true},
		{Name: columnTimestamp, Type: field.TypeTime},
		{Name: columnProvider, Type: field.TypeString},
		{Name: columnModel, Type: field.TypeString},
		{Name: columnPurpose, Type: field.TypeString},
		{Name: columnRequestID, Type: field.TypeString, Default: ""},
		{Name: columnInputTokens, Type: field.TypeInt, Default: 0},
		{Name: columnOutputTokens, Type: field.TypeInt, Default: 0},
		{Name: columnLatencyMs, Type: field.TypeInt64, Default: 0},
		{Name: columnSuccess, Type: field.TypeBool},
		{Name: columnErrorMessage, Type: field.TypeString, Default: ""},
		{Name: columnRequestBody, Type: field.TypeString, Size: 2147483647, Default: ""},
		{Name: columnResponseBody, Type: field.TypeString, Size: 2147483647, Default: ""},
	}

	// LLMRequestEventsTable is the request log table.
	LLMRequestEventsTable = &schema.Table{
		Name:       llmRequestEventsTable,
		Columns:    LLMRequestEventsColumns,
		PrimaryKey: []*schema.Column{LLMRequestEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "llmrequestevent_timestamp", Columns: []*schema.Column{LLMRequestEventsColumns[1]}},
			{Name: "llmrequestevent_provider", Columns: []*schema.Column{LLMRequestEventsColumns[2]}},
			{Name: "llmrequestevent_purpose", Columns: []*schema.Column{LLMRequestEventsColumns[4]}},
			{Name: "llmrequestevent_success", Columns: []*schema.Column{LLMRequestEventsColumns[9]}},
		},
	}

	// Tables holds every table the store migrates on open.
	Tables = []*schema.Table{
		LLMRequestEventsTable,
	}
)
