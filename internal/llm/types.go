package llm

// Block types for conversation content.
const (
	BlockTypeText       = "text"
	BlockTypeToolUse    = "tool_use"
	BlockTypeToolResult = "tool_result"
)

// Stop reasons reported by the model.
const (
	StopReasonEndTurn = "end_turn"
	StopReasonToolUse = "tool_use"
)

// Block is a single content block inside a conversation message.
// Exactly one of the type-specific field groups is populated, selected
// by BlockType.
type Block struct {
	BlockType string

	// Text content (text blocks, and the payload of tool_result blocks).
	Text string

	// Tool invocation fields (tool_use blocks).
	ToolUseID string
	ToolName  string
	ToolInput map[string]any

	// Tool result fields (tool_result blocks). ToolUseID above carries the
	// correlation identifier of the originating tool_use block.
	IsError bool
}

// Message is one turn of a conversation: a role plus ordered content blocks.
// Messages are appended to a conversation and never mutated afterwards.
type Message struct {
	Role   string // "user" or "assistant"
	Blocks []Block
}

// NewTextBlock creates a text content block.
func NewTextBlock(text string) Block {
	return Block{BlockType: BlockTypeText, Text: text}
}

// NewToolResultBlock creates a tool_result block correlated to the tool_use
// block identified by toolUseID.
func NewToolResultBlock(toolUseID, content string, isError bool) Block {
	return Block{
		BlockType: BlockTypeToolResult,
		ToolUseID: toolUseID,
		Text:      content,
		IsError:   isError,
	}
}

// NewUserMessage creates a user message from content blocks.
func NewUserMessage(blocks ...Block) Message {
	return Message{Role: "user", Blocks: blocks}
}

// NewUserTextMessage creates a user message with a single text block.
func NewUserTextMessage(text string) Message {
	return NewUserMessage(NewTextBlock(text))
}

// PropertySchema describes a single tool parameter.
type PropertySchema struct {
	Type        string `json:"type"` // "number" or "string"
	Description string `json:"description"`
}

// InputSchema is the JSON-schema shaped parameter declaration of a tool.
type InputSchema struct {
	Type       string                    `json:"type"` // always "object"
	Properties map[string]PropertySchema `json:"properties"`
	Required   []string                  `json:"required"`
}

// ToolDescriptor declares one tool to the model: its name, a natural-language
// description, and the schema of its input parameters.
type ToolDescriptor struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	InputSchema InputSchema `json:"input_schema"`
}

// GenerateRequest contains the parameters for a model generation call.
type GenerateRequest struct {
	Model     string
	MaxTokens int
	Tools     []ToolDescriptor
	Messages  []Message
}

// GenerateResponse is the model's reply: a stop reason plus ordered blocks.
type GenerateResponse struct {
	StopReason string
	Blocks     []Block
}

// AssistantMessage converts the response into an assistant conversation turn.
func (r *GenerateResponse) AssistantMessage() Message {
	return Message{Role: "assistant", Blocks: r.Blocks}
}

// FirstText returns the text of the first text block, if any.
func (r *GenerateResponse) FirstText() (string, bool) {
	for _, b := range r.Blocks {
		if b.BlockType == BlockTypeText {
			return b.Text, true
		}
	}
	return "", false
}

// ToolUses returns all tool_use blocks of the response in order.
func (r *GenerateResponse) ToolUses() []Block {
	var uses []Block
	for _, b := range r.Blocks {
		if b.BlockType == BlockTypeToolUse {
			uses = append(uses, b)
		}
	}
	return uses
}
