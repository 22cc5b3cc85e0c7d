package providers

import (
	"github.com/samber/do/v2"

	"github.com/writeflowapp/writeflow-server/internal/config"
	"github.com/writeflowapp/writeflow-server/internal/llm"
	"github.com/writeflowapp/writeflow-server/internal/logger"
	"github.com/writeflowapp/writeflow-server/internal/synthesis"
	"github.com/writeflowapp/writeflow-server/internal/websearch"
)

// ProvideCompletionClient provides the chat-completion client.
func ProvideCompletionClient(i do.Injector) (*llm.OpenAIClient, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	client := llm.NewOpenAIClient(cfg.OpenAI.Model, cfg.OpenAI.APIKey, cfg.OpenAI.BaseURL, cfg.OpenAI.Timeout)
	if !client.IsConfigured() {
		log.Warn("OPENAI_API_KEY not set - generation routes will fail until configured")
	}

	return client, nil
}

// ProvideSynthesisEngine provides the content generation engine.
func ProvideSynthesisEngine(i do.Injector) (*synthesis.Engine, error) {
	client := do.MustInvoke[*llm.OpenAIClient](i)
	return synthesis.NewEngine(client), nil
}

// ProvideSerperClient provides the web search client.
func ProvideSerperClient(i do.Injector) (*websearch.SerperClient, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	if cfg.Serper.APIKey == "" {
		log.Warn("SERPER_API_KEY not set - article search will fail until configured")
	}

	return websearch.NewSerperClient(cfg.Serper.APIKey, cfg.Serper.BaseURL), nil
}

// ProvideCrossrefClient provides the scholarly search client.
func ProvideCrossrefClient(i do.Injector) (*websearch.CrossrefClient, error) {
	cfg := do.MustInvoke[*config.Config](i)
	return websearch.NewCrossrefClient(cfg.Crossref.BaseURL, cfg.Crossref.MailTo), nil
}
