package anthropic

import (
	"encoding/json"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"

	"datachat/internal/llm"
)

// convertToAnthropicMessages converts neutral messages to Anthropic SDK format.
func convertToAnthropicMessages(messages []llm.Message) ([]anthropic.MessageParam, error) {
	result := make([]anthropic.MessageParam, 0, len(messages))

	for i, msg := range messages {
		blocks := make([]anthropic.ContentBlockParamUnion, 0, len(msg.Blocks))

		for _, block := range msg.Blocks {
			switch block.BlockType {
			case llm.BlockTypeText:
				blocks = append(blocks, anthropic.NewTextBlock(block.Text))

			case llm.BlockTypeToolUse:
				blocks = append(blocks, anthropic.ContentBlockParamUnion{
					OfToolUse: &anthropic.ToolUseBlockParam{
						ID:    block.ToolUseID,
						Name:  block.ToolName,
						Input: block.ToolInput,
					},
				})

			case llm.BlockTypeToolResult:
				blocks = append(blocks, anthropic.ContentBlockParamUnion{
					OfToolResult: &anthropic.ToolResultBlockParam{
						ToolUseID: block.ToolUseID,
						IsError:   anthropic.Bool(block.IsError),
						Content: []anthropic.ToolResultBlockParamContentUnion{
							{OfText: &anthropic.TextBlockParam{Text: block.Text}},
						},
					},
				})

			default:
				return nil, fmt.Errorf("message %d: unsupported block type '%s'", i, block.BlockType)
			}
		}

		var message anthropic.MessageParam
		switch msg.Role {
		case "user":
			message = anthropic.NewUserMessage(blocks...)
		case "assistant":
			message = anthropic.NewAssistantMessage(blocks...)
		default:
			return nil, fmt.Errorf("message %d: unsupported role '%s'", i, msg.Role)
		}

		result = append(result, message)
	}

	return result, nil
}

// convertToAnthropicTools converts tool descriptors to Anthropic SDK format.
func convertToAnthropicTools(tools []llm.ToolDescriptor) []anthropic.ToolUnionParam {
	result := make([]anthropic.ToolUnionParam, 0, len(tools))

	for _, tool := range tools {
		result = append(result, anthropic.ToolUnionParam{
			OfTool: &anthropic.ToolParam{
				Name:        tool.Name,
				Description: anthropic.String(tool.Description),
				InputSchema: anthropic.ToolInputSchemaParam{
					Properties: tool.InputSchema.Properties,
					Required:   tool.InputSchema.Required,
				},
			},
		})
	}

	return result
}

// convertFromAnthropicResponse converts an Anthropic response to neutral format.
func convertFromAnthropicResponse(msg *anthropic.Message) (*llm.GenerateResponse, error) {
	blocks := make([]llm.Block, 0, len(msg.Content))

	for i, content := range msg.Content {
		switch content.Type {
		case "text":
			blocks = append(blocks, llm.Block{
				BlockType: llm.BlockTypeText,
				Text:      content.Text,
			})

		case "tool_use":
			input, err := decodeToolInput(content.Input)
			if err != nil {
				return nil, fmt.Errorf("block %d: %w", i, err)
			}
			blocks = append(blocks, llm.Block{
				BlockType: llm.BlockTypeToolUse,
				ToolUseID: content.ID,
				ToolName:  content.Name,
				ToolInput: input,
			})

		// Skip other content types (thinking, server tool use, etc.)
		default:
			continue
		}
	}

	return &llm.GenerateResponse{
		StopReason: string(msg.StopReason),
		Blocks:     blocks,
	}, nil
}

// decodeToolInput normalizes the SDK's tool input into a parameter map.
func decodeToolInput(input any) (map[string]any, error) {
	if m, ok := input.(map[string]any); ok {
		return m, nil
	}

	raw, err := json.Marshal(input)
	if err != nil {
		return nil, fmt.Errorf("failed to encode tool input: %w", err)
	}

	params := make(map[string]any)
	if err := json.Unmarshal(raw, &params); err != nil {
		return nil, fmt.Errorf("failed to decode tool input: %w", err)
	}

	return params, nil
}
