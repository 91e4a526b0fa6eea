package llm

import "context"

// Provider generates an answer grounded in the supplied context. The
// context string arrives fully assembled - the provider never reorders or
// filters it.
type Provider interface {
	GenerateAnswer(ctx context.Context, question string, contextText string) (string, error)
}
