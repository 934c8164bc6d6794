package flows

import (
	"context"
	"encoding/json"
	"strings"

	"go.uber.org/zap"
)

// Per-flow output token caps.
const (
	takeawaysMaxTokens  = 512
	insightMaxTokens    = 256
	reflectionMaxTokens = 512
	chatMaxTokens       = 1024
	conceptMapMaxTokens = 1024
)

const defaultChatHistoryWindow = 20

type flowFunc func(ctx context.Context, raw json.RawMessage) (interface{}, error)

// Service dispatches named generation flows to the configured providers.
type Service struct {
	text          TextGenerator
	image         ImageGenerator
	logger        *zap.Logger
	historyWindow int

	registry map[string]flowFunc
}

// NewService wires the flow registry. image may be nil when the provider has
// no image endpoint; the cover-image flow then fails with a GenerationError.
func NewService(text TextGenerator, image ImageGenerator, historyWindow int, logger *zap.Logger) *Service {
	if historyWindow <= 0 {
		historyWindow = defaultChatHistoryWindow
	}
	s := &Service{
		text:          text,
		image:         image,
		logger:        logger,
		historyWindow: historyWindow,
	}
	s.registry = map[string]flowFunc{
		FlowKeyTakeaways:      s.keyTakeaways,
		FlowActionableInsight: s.actionableInsight,
		FlowReflectionPrompts: s.reflectionPrompts,
		FlowChatResponse:      s.chatResponse,
		FlowConceptMap:        s.conceptMap,
		FlowCoverImage:        s.coverImage,
	}
	return s
}

// Names returns the registered flow names.
func (s *Service) Names() []string {
	names := make([]string, 0, len(s.registry))
	for name := range s.registry {
		names = append(names, name)
	}
	return names
}

// Invoke runs the named flow against the raw JSON input.
func (s *Service) Invoke(ctx context.Context, name string, raw json.RawMessage) (interface{}, error) {
	fn, ok := s.registry[name]
	if !ok {
		return nil, ErrUnknownFlow
	}
	return fn(ctx, raw)
}

func (s *Service) keyTakeaways(ctx context.Context, raw json.RawMessage) (interface{}, error) {
	var in TakeawaysInput
	if err := decodeInput(FlowKeyTakeaways, raw, &in, in.validate); err != nil {
		return nil, err
	}

	text, err := s.text.GenerateText(ctx, TextRequest{
		System:    takeawaysSystemPrompt,
		Prompt:    buildTakeawaysPrompt(in.SummaryContent),
		MaxTokens: takeawaysMaxTokens,
		Safety:    textSafetySettings(),
	})
	if err != nil {
		return nil, &GenerationError{Flow: FlowKeyTakeaways, Detail: "provider call failed", Err: err}
	}

	var out TakeawaysOutput
	if err := unmarshalAIJSON(text, &out); err != nil {
		return nil, &SchemaError{Flow: FlowKeyTakeaways, Detail: err.Error(), Output: true}
	}
	if len(out.Takeaways) == 0 {
		return nil, &SchemaError{Flow: FlowKeyTakeaways, Detail: "no takeaways in output", Output: true}
	}
	return &out, nil
}

func (s *Service) actionableInsight(ctx context.Context, raw json.RawMessage) (interface{}, error) {
	var in InsightInput
	if err := decodeInput(FlowActionableInsight, raw, &in, in.validate); err != nil {
		return nil, err
	}

	text, err := s.text.GenerateText(ctx, TextRequest{
		System:    insightSystemPrompt,
		Prompt:    buildInsightPrompt(in.SummaryContent),
		MaxTokens: insightMaxTokens,
		Safety:    textSafetySettings(),
	})
	if err != nil {
		return nil, &GenerationError{Flow: FlowActionableInsight, Detail: "provider call failed", Err: err}
	}

	var out InsightOutput
	if err := unmarshalAIJSON(text, &out); err != nil {
		return nil, &SchemaError{Flow: FlowActionableInsight, Detail: err.Error(), Output: true}
	}
	if strings.TrimSpace(out.Insight) == "" {
		return nil, &SchemaError{Flow: FlowActionableInsight, Detail: "no insight in output", Output: true}
	}
	return &out, nil
}

func (s *Service) reflectionPrompts(ctx context.Context, raw json.RawMessage) (interface{}, error) {
	var in ReflectionInput
	if err := decodeInput(FlowReflectionPrompts, raw, &in, in.validate); err != nil {
		return nil, err
	}

	text, err := s.text.GenerateText(ctx, TextRequest{
		System:    reflectionSystemPrompt,
		Prompt:    buildReflectionPrompt(in.Summary),
		MaxTokens: reflectionMaxTokens,
		Safety:    textSafetySettings(),
	})
	if err != nil {
		return nil, &GenerationError{Flow: FlowReflectionPrompts, Detail: "provider call failed", Err: err}
	}

	var out ReflectionOutput
	if err := unmarshalAIJSON(text, &out); err != nil {
		return nil, &SchemaError{Flow: FlowReflectionPrompts, Detail: err.Error(), Output: true}
	}
	if len(out.ReflectionPrompts) == 0 {
		return nil, &SchemaError{Flow: FlowReflectionPrompts, Detail: "no prompts in output", Output: true}
	}
	return &out, nil
}

func (s *Service) chatResponse(ctx context.Context, raw json.RawMessage) (interface{}, error) {
	var in ChatInput
	if err := decodeInput(FlowChatResponse, raw, &in, in.validate); err != nil {
		return nil, err
	}

	history := in.ChatHistory
	if len(history) > s.historyWindow {
		history = history[len(history)-s.historyWindow:]
	}

	text, err := s.text.GenerateText(ctx, TextRequest{
		System:    chatSystemPrompt,
		Prompt:    buildChatPrompt(&in, history),
		MaxTokens: chatMaxTokens,
		Safety:    textSafetySettings(),
	})
	if err != nil {
		return nil, &GenerationError{Flow: FlowChatResponse, Detail: "provider call failed", Err: err}
	}

	reply := strings.TrimSpace(text)
	if reply == "" {
		return nil, &SchemaError{Flow: FlowChatResponse, Detail: "empty response", Output: true}
	}
	return &ChatOutput{ResponseText: reply}, nil
}

func (s *Service) conceptMap(ctx context.Context, raw json.RawMessage) (interface{}, error) {
	var in ConceptMapInput
	if err := decodeInput(FlowConceptMap, raw, &in, nil); err != nil {
		return nil, err
	}

	// An empty takeaway list maps to an empty graph without touching the
	// provider.
	if len(in.Takeaways) == 0 {
		return &ConceptMapOutput{Nodes: []ConceptNode{}, Edges: []ConceptEdge{}}, nil
	}

	text, err := s.text.GenerateText(ctx, TextRequest{
		System:    conceptMapSystemPrompt,
		Prompt:    buildConceptMapPrompt(in.Takeaways),
		MaxTokens: conceptMapMaxTokens,
		Safety:    textSafetySettings(),
	})
	if err != nil {
		return nil, &GenerationError{Flow: FlowConceptMap, Detail: "provider call failed", Err: err}
	}

	var out ConceptMapOutput
	if err := unmarshalAIJSON(text, &out); err != nil {
		return nil, &SchemaError{Flow: FlowConceptMap, Detail: err.Error(), Output: true}
	}
	if len(out.Nodes) == 0 {
		return nil, &SchemaError{Flow: FlowConceptMap, Detail: "no nodes in output", Output: true}
	}

	// Drop edges that reference unknown nodes instead of failing the whole
	// map.
	nodeIDs := make(map[string]struct{}, len(out.Nodes))
	for _, node := range out.Nodes {
		nodeIDs[node.ID] = struct{}{}
	}
	kept := make([]ConceptEdge, 0, len(out.Edges))
	for _, edge := range out.Edges {
		_, srcOK := nodeIDs[edge.Source]
		_, dstOK := nodeIDs[edge.Target]
		if !srcOK || !dstOK {
			s.logger.Warn("dropping edge with unknown node",
				zap.String("source", edge.Source), zap.String("target", edge.Target))
			continue
		}
		kept = append(kept, edge)
	}
	out.Edges = kept
	return &out, nil
}

func (s *Service) coverImage(ctx context.Context, raw json.RawMessage) (interface{}, error) {
	var in CoverImageInput
	if err := decodeInput(FlowCoverImage, raw, &in, in.validate); err != nil {
		return nil, err
	}
	if s.image == nil {
		return nil, &GenerationError{Flow: FlowCoverImage, Detail: "no image-capable provider configured"}
	}

	dataURI, err := s.image.GenerateImage(ctx, buildCoverImagePrompt(&in), imageSafetySettings())
	if err != nil {
		return nil, &GenerationError{Flow: FlowCoverImage, Detail: "provider call failed", Err: err}
	}
	return &CoverImageOutput{ImageDataURI: dataURI}, nil
}

func decodeInput(flow string, raw json.RawMessage, out interface{}, validate func() string) error {
	if len(raw) == 0 {
		return &SchemaError{Flow: flow, Detail: "missing request body"}
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &SchemaError{Flow: flow, Detail: err.Error()}
	}
	if validate != nil {
		if detail := validate(); detail != "" {
			return &SchemaError{Flow: flow, Detail: detail}
		}
	}
	return nil
}
