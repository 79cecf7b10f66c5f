package main

import (
	"go.uber.org/zap"

	"prompt-nodes/clip"
	"prompt-nodes/config"
	"prompt-nodes/execution"
	"prompt-nodes/node"
	"prompt-nodes/preset"
	"prompt-nodes/prompt"
	"prompt-nodes/translate"
)

// app holds the wired components. The catalog is loaded once here and shared
// read-only.
type app struct {
	catalog   *preset.Catalog
	assembler *prompt.Assembler
	forwarder *translate.Forwarder
	registry  *node.Registry
	hub       *execution.Hub
	manager   *execution.Manager
}

func newApp(cfg config.Config, logger *zap.Logger) (*app, error) {
	catalog := preset.Load(cfg.PresetFile, logger.Named("preset"))

	var encoder clip.Encoder
	if cfg.EncoderURL != "" {
		encoder = clip.NewRemoteEncoder(cfg.EncoderURL, nil)
	} else {
		logger.Warn("no encoder_url configured; StrongPrompt executions will fail")
	}
	assembler := prompt.NewAssembler(catalog, encoder, logger.Named("prompt"))

	client := translate.NewClient(logger.Named("translate"),
		translate.WithEndpoint(cfg.Translate.Endpoint),
		translate.WithRateInterval(cfg.Translate.RateInterval))
	forwarder := translate.NewForwarder(client)

	registry := node.NewRegistry()
	if err := registry.Register(node.NewStrongPrompt(assembler)); err != nil {
		return nil, err
	}
	if err := registry.Register(node.NewTencentTranslater(forwarder)); err != nil {
		return nil, err
	}

	hub := execution.NewHub(cfg.EventReplay)
	manager := execution.NewManager(registry, hub, cfg.HistoryTTL, logger.Named("execution"))

	return &app{
		catalog:   catalog,
		assembler: assembler,
		forwarder: forwarder,
		registry:  registry,
		hub:       hub,
		manager:   manager,
	}, nil
}
