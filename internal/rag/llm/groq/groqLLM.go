package groq

import (
	"context"
	"fmt"
	"sync"

	"github.com/MuhammadSobanHameed/AI-Powered-RAG-System/internal/config"
	"github.com/MuhammadSobanHameed/AI-Powered-RAG-System/internal/customHttpClient"
	"github.com/MuhammadSobanHameed/AI-Powered-RAG-System/internal/rag/llm"
	"github.com/MuhammadSobanHameed/AI-Powered-RAG-System/pkg/logger_i"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// Groq serves llama models over the openai wire format, so the openai
// client pointed at their base url is the whole integration.

type llmClient struct {
	client openai.Client
	model  string
}

var logger *logger_i.Logger
var groqClient *llmClient
var once sync.Once

func GetGroqClient(apikey string, modelName string) llm.Provider {
	once.Do(func() {
		logger = logger_i.NewLogger("llm_groq")
		if apikey == "" {
			logger.Error("GROQ_API_KEY is empty, completion calls will fail")
		}
		groqClient = &llmClient{
			client: openai.NewClient(
				option.WithAPIKey(apikey),
				option.WithBaseURL(config.GroqBaseURL),
				option.WithHTTPClient(customHttpClient.Pooled()),
			),
			model: modelName,
		}
		logger.Info("Groq client created", "model", modelName)
	})

	if groqClient == nil {
		return nil
	}
	return groqClient
}

func (c *llmClient) GenerateAnswer(ctx context.Context, question string, contextText string) (string, error) {
	log := logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))

	userPrompt := fmt.Sprintf("Context from documents:\n%s\n\nQuestion: %s\n\nAnswer:", contextText, question)

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(config.AnswerSystemPrompt),
			openai.UserMessage(userPrompt),
		},
		Model:       openai.ChatModel(c.model),
		Temperature: openai.Float(config.CompletionTemperature),
		MaxTokens:   openai.Int(config.CompletionMaxTokens),
	})
	if err != nil {
		log.Error("Completion call failed", "error", err)
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("completion response had no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
