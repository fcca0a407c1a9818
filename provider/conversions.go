package provider

import (
	"encoding/json"

	"maestro/model"

	mcptypes "github.com/mark3labs/mcp-go/mcp"
	"github.com/ollama/ollama/api"
	"github.com/openai/openai-go/v3"
)

// ConvertToOpenAIMessages converts maestro messages to OpenAI chat format.
// Used for both OpenRouter and any other OpenAI-compatible endpoint.
func ConvertToOpenAIMessages(messages []model.Message) []openai.ChatCompletionMessageParamUnion {
	result := make([]openai.ChatCompletionMessageParamUnion, len(messages))

	for i, msg := range messages {
		switch msg.Role {
		case model.RoleSystem:
			result[i] = openai.SystemMessage(msg.Content)
		case model.RoleAssistant:
			result[i] = openai.AssistantMessage(msg.Content)
		default:
			result[i] = openai.UserMessage(msg.Content)
		}
	}

	return result
}

// ConvertToOllamaMessages converts maestro messages to Ollama API messages.
// Timestamps are not preserved; the Ollama API has no field for them.
func ConvertToOllamaMessages(messages []model.Message) []api.Message {
	result := make([]api.Message, len(messages))
	for i, msg := range messages {
		result[i] = api.Message{
			Role:    msg.Role,
			Content: msg.Content,
		}
	}
	return result
}

// ParseToolArguments parses a JSON arguments string into a map.
// Used when a backend reports function arguments as a raw JSON string.
// Unparseable arguments come back as an empty map; registry validation
// rejects the call later if required fields are missing.
func ParseToolArguments(argsJSON string) map[string]any {
	var args map[string]any
	if err := json.Unmarshal([]byte(argsJSON), &args); err != nil {
		return make(map[string]any)
	}
	return args
}

// ConvertToolsToOpenAI converts tool definitions to OpenAI function format.
//
// Both sides carry JSON Schema; the conversion is structural:
//
//	{"name", "description", "inputSchema": {...}}
//	  -> {"type": "function", "function": {"name", "description", "parameters": {...}}}
func ConvertToolsToOpenAI(tools []mcptypes.Tool) []openai.ChatCompletionToolUnionParam {
	if len(tools) == 0 {
		return nil
	}

	result := make([]openai.ChatCompletionToolUnionParam, len(tools))

	for i, tool := range tools {
		params := openai.FunctionParameters{
			"type":       tool.InputSchema.Type,
			"properties": tool.InputSchema.Properties,
		}

		if len(tool.InputSchema.Required) > 0 {
			params["required"] = tool.InputSchema.Required
		}

		result[i] = openai.ChatCompletionFunctionTool(
			openai.FunctionDefinitionParam{
				Name:        tool.Name,
				Description: openai.String(tool.Description),
				Parameters:  params,
			},
		)
	}

	return result
}

// ConvertToolsToOllama converts tool definitions to Ollama's tool format
// for models with native tool calling.
func ConvertToolsToOllama(tools []mcptypes.Tool) []api.Tool {
	if len(tools) == 0 {
		return nil
	}

	ollamaTools := make([]api.Tool, 0, len(tools))
	for _, tool := range tools {
		ollamaTools = append(ollamaTools, api.Tool{
			Type: "function",
			Function: api.ToolFunction{
				Name:        tool.Name,
				Description: tool.Description,
				Parameters:  convertInputSchemaToParameters(tool.InputSchema),
			},
		})
	}

	return ollamaTools
}

func convertInputSchemaToParameters(inputSchema mcptypes.ToolInputSchema) api.ToolFunctionParameters {
	params := api.ToolFunctionParameters{
		Type:       inputSchema.Type,
		Required:   inputSchema.Required,
		Properties: make(map[string]api.ToolProperty),
	}

	for propName, propValue := range inputSchema.Properties {
		params.Properties[propName] = convertPropertyValue(propValue)
	}

	return params
}

// convertPropertyValue converts one JSON Schema property to an Ollama
// ToolProperty. Only the constraint kinds the registry actually uses
// (type, description, enum) are carried; numeric bounds are enforced by
// registry validation, not by the model.
func convertPropertyValue(propValue any) api.ToolProperty {
	toolProp := api.ToolProperty{}

	propMap, ok := propValue.(map[string]any)
	if !ok {
		bytes, err := json.Marshal(propValue)
		if err != nil {
			return toolProp
		}
		var m map[string]any
		if err := json.Unmarshal(bytes, &m); err != nil {
			return toolProp
		}
		propMap = m
	}

	if typeVal, ok := propMap["type"]; ok {
		switch t := typeVal.(type) {
		case string:
			toolProp.Type = api.PropertyType{t}
		case []string:
			toolProp.Type = api.PropertyType(t)
		case []any:
			types := make([]string, 0, len(t))
			for _, v := range t {
				if s, ok := v.(string); ok {
					types = append(types, s)
				}
			}
			toolProp.Type = api.PropertyType(types)
		}
	}

	if desc, ok := propMap["description"].(string); ok {
		toolProp.Description = desc
	}

	if enumVal, ok := propMap["enum"]; ok {
		if enumSlice, ok := enumVal.([]any); ok {
			toolProp.Enum = enumSlice
		}
	}

	return toolProp
}
