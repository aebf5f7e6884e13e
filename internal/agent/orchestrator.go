package agent

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"datachat/internal/llm"
	"datachat/internal/tools"
)

// ErrNoTextResponse is returned when a model reply contains no text block
// where one was expected. Callers must treat it as an explicit failure, not
// an empty answer.
var ErrNoTextResponse = errors.New("model reply contained no text block")

// Orchestrator drives the two-round tool-use conversation: it sends the user
// query with the tool declaration to the model, executes the tool if the
// model asks for it, feeds the result back, and extracts the final answer.
// One tool is available per orchestrator; the conversation is discarded when
// Run returns.
type Orchestrator struct {
	provider  llm.Provider
	tool      tools.Tool
	model     string
	maxTokens int
	logger    *slog.Logger
}

// New creates an orchestrator bound to one provider and one tool.
func New(provider llm.Provider, tool tools.Tool, model string, maxTokens int, logger *slog.Logger) *Orchestrator {
	return &Orchestrator{
		provider:  provider,
		tool:      tool,
		model:     model,
		maxTokens: maxTokens,
		logger:    logger,
	}
}

// Run answers a user query, performing at most one tool round-trip.
//
// Tool execution failures are converted into error-flagged tool results so
// the model can respond to them; they never fail Run. Model call failures
// always propagate.
func (o *Orchestrator) Run(ctx context.Context, userQuery string) (string, error) {
	descriptor := o.tool.Describe()
	conversation := []llm.Message{llm.NewUserTextMessage(userQuery)}

	response, err := o.provider.Generate(ctx, &llm.GenerateRequest{
		Model:     o.model,
		MaxTokens: o.maxTokens,
		Tools:     []llm.ToolDescriptor{descriptor},
		Messages:  conversation,
	})
	if err != nil {
		return "", fmt.Errorf("initial model call failed: %w", err)
	}
	conversation = append(conversation, response.AssistantMessage())

	if response.StopReason != llm.StopReasonToolUse {
		text, ok := response.FirstText()
		if !ok {
			return "", ErrNoTextResponse
		}
		return text, nil
	}

	uses := response.ToolUses()
	if len(uses) == 0 {
		return "", fmt.Errorf("model signalled tool use but sent no tool_use block")
	}

	results := o.executeToolUses(ctx, descriptor.Name, uses)
	conversation = append(conversation, llm.NewUserMessage(results...))

	followUp, err := o.provider.Generate(ctx, &llm.GenerateRequest{
		Model:     o.model,
		MaxTokens: o.maxTokens,
		Tools:     []llm.ToolDescriptor{descriptor},
		Messages:  conversation,
	})
	if err != nil {
		return "", fmt.Errorf("follow-up model call failed: %w", err)
	}

	text, ok := followUp.FirstText()
	if !ok {
		return "", ErrNoTextResponse
	}
	return text, nil
}

// executeToolUses answers every tool_use block of a reply. Only the first is
// executed; extra blocks receive an error result instead, so every block
// stays correlated to a result by its identifier.
func (o *Orchestrator) executeToolUses(ctx context.Context, toolName string, uses []llm.Block) []llm.Block {
	results := make([]llm.Block, 0, len(uses))

	for i, use := range uses {
		if i > 0 {
			o.logger.Warn("rejecting extra tool invocation",
				"tool", use.ToolName,
				"tool_use_id", use.ToolUseID,
			)
			results = append(results, llm.NewToolResultBlock(use.ToolUseID,
				"parallel tool calls are not supported; issue a single tool call per reply", true))
			continue
		}

		if use.ToolName != toolName {
			o.logger.Warn("model requested unknown tool",
				"tool", use.ToolName,
				"tool_use_id", use.ToolUseID,
			)
			results = append(results, llm.NewToolResultBlock(use.ToolUseID,
				fmt.Sprintf("tool not found: %s", use.ToolName), true))
			continue
		}

		o.logger.Info("executing tool",
			"tool", use.ToolName,
			"tool_use_id", use.ToolUseID,
			"input", use.ToolInput,
		)

		payload, err := o.tool.Execute(ctx, use.ToolInput)
		if err != nil {
			o.logger.Error("tool execution failed",
				"tool", use.ToolName,
				"error", err,
			)
			results = append(results, llm.NewToolResultBlock(use.ToolUseID, err.Error(), true))
			continue
		}

		results = append(results, llm.NewToolResultBlock(use.ToolUseID, payload, false))
	}

	return results
}
