// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

// Default fallback orders. Text front-loads the fast free-tier backends;
// image order reflects output quality first, then cost.
var (
	textOrder  = []string{"groq", "openrouter", "mistral", "openai", "huggingface"}
	imageOrder = []string{"fal", "replicate", "stability", "huggingface"}
)

// BuildEngine creates a fallback engine from per-provider configs. Providers
// without API keys are silently skipped, so the engine degrades gracefully
// when only a subset of keys is configured. HuggingFace serves both the text
// and image lists from the same credential.
func BuildEngine(configs map[string]ProviderConfig, opts ...Option) *Engine {
	var text []TextProvider
	for _, name := range textOrder {
		cfg, ok := configs[name]
		if !ok || cfg.APIKey == "" {
			continue
		}
		switch name {
		case "groq":
			text = append(text, newGroq(cfg))
		case "openrouter":
			text = append(text, newOpenRouter(cfg))
		case "mistral":
			text = append(text, newMistral(cfg))
		case "openai":
			text = append(text, newOpenAI(cfg))
		case "huggingface":
			text = append(text, newHuggingFace(cfg))
		}
	}

	var image []ImageProvider
	for _, name := range imageOrder {
		cfg, ok := configs[name]
		if !ok || cfg.APIKey == "" {
			continue
		}
		switch name {
		case "fal":
			image = append(image, newFal(cfg))
		case "replicate":
			image = append(image, newReplicate(cfg))
		case "stability":
			image = append(image, newStability(cfg))
		case "huggingface":
			image = append(image, newHuggingFace(cfg))
		}
	}

	return NewEngine(text, image, opts...)
}
