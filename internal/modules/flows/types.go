package flows

import "strings"

// Flow names as exposed on the API.
const (
	FlowKeyTakeaways      = "key-takeaways"
	FlowActionableInsight = "actionable-insight"
	FlowReflectionPrompts = "reflection-prompts"
	FlowChatResponse      = "chat-response"
	FlowConceptMap        = "concept-map"
	FlowCoverImage        = "cover-image"
)

type TakeawaysInput struct {
	SummaryContent string `json:"summaryContent"`
}

func (in *TakeawaysInput) validate() string {
	if strings.TrimSpace(in.SummaryContent) == "" {
		return "summaryContent is required"
	}
	return ""
}

type TakeawaysOutput struct {
	Takeaways []string `json:"takeaways"`
}

type InsightInput struct {
	SummaryContent string `json:"summaryContent"`
}

func (in *InsightInput) validate() string {
	if strings.TrimSpace(in.SummaryContent) == "" {
		return "summaryContent is required"
	}
	return ""
}

type InsightOutput struct {
	Insight string `json:"insight"`
}

type ReflectionInput struct {
	Summary string `json:"summary"`
}

func (in *ReflectionInput) validate() string {
	if strings.TrimSpace(in.Summary) == "" {
		return "summary is required"
	}
	return ""
}

type ReflectionOutput struct {
	ReflectionPrompts []string `json:"reflectionPrompts"`
}

// ChatTurn is one prior exchange in a summary-scoped conversation. Role is
// either "user" or "model".
type ChatTurn struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

type ChatInput struct {
	UserQuery      string     `json:"userQuery"`
	SummaryContent string     `json:"summaryContent"`
	ChatHistory    []ChatTurn `json:"chatHistory,omitempty"`
}

func (in *ChatInput) validate() string {
	if strings.TrimSpace(in.UserQuery) == "" {
		return "userQuery is required"
	}
	if strings.TrimSpace(in.SummaryContent) == "" {
		return "summaryContent is required"
	}
	for _, turn := range in.ChatHistory {
		if turn.Role != "user" && turn.Role != "model" {
			return "chatHistory roles must be \"user\" or \"model\""
		}
	}
	return ""
}

type ChatOutput struct {
	ResponseText string `json:"responseText"`
}

type ConceptMapInput struct {
	Takeaways []string `json:"takeaways"`
}

type ConceptNode struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Explanation string `json:"explanation"`
}

type ConceptEdge struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Label  string `json:"label,omitempty"`
}

type ConceptMapOutput struct {
	Nodes []ConceptNode `json:"nodes"`
	Edges []ConceptEdge `json:"edges"`
}

type CoverImageInput struct {
	Title  string `json:"title"`
	AIHint string `json:"aiHint,omitempty"`
}

func (in *CoverImageInput) validate() string {
	if strings.TrimSpace(in.Title) == "" {
		return "title is required"
	}
	return ""
}

type CoverImageOutput struct {
	ImageDataURI string `json:"imageDataUri"`
}
