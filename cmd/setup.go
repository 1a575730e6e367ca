package cmd

import (
	"github.com/nikogura/portfolio-chat/pkg/chat"
	"github.com/nikogura/portfolio-chat/pkg/config"
	"github.com/nikogura/portfolio-chat/pkg/logger"
	"github.com/nikogura/portfolio-chat/pkg/renderer"
	"github.com/pkg/errors"
)

// newLogger builds the process logger from config and the --verbose flag.
func newLogger(cfg config.Config) (log *logger.Logger, err error) {
	log, err = logger.New(logger.Options{
		Mode:  cfg.Log.Mode,
		File:  cfg.Log.File,
		Debug: getVerbose(),
	})
	if err != nil {
		err = errors.Wrap(err, "failed to create logger")
		return log, err
	}
	return log, err
}

// newRenderer applies the configured contact wording.
func newRenderer(cfg config.Config) (r *renderer.Renderer) {
	r = renderer.New(renderer.Options{
		MailSubject:      cfg.Contact.MailSubject,
		WhatsAppGreeting: cfg.Contact.WhatsAppGreeting,
		ResponseTime:     cfg.Contact.ResponseTime,
	})
	return r
}

// controllerOptions wires a controller the same way for every front end.
func controllerOptions(cfg config.Config, delay chat.DelaySource, log *logger.Logger) (opts []chat.Option) {
	opts = []chat.Option{
		chat.WithResponder(newRenderer(cfg)),
		chat.WithDelay(delay),
		chat.WithLogger(log),
	}
	return opts
}

// resolveConfig loads the config file. When dataOverride is set a missing or
// incomplete config falls back to defaults so one-shot commands work without init.
func resolveConfig(dataOverride string) (cfg config.Config, err error) {
	if dataOverride == "" {
		cfg, err = config.Load(getConfigFile())
		if err != nil {
			return cfg, err
		}
		return cfg, err
	}

	cfg, err = config.Load(getConfigFile())
	if err != nil {
		cfg = config.Config{}
	}
	cfg.DataLocation = dataOverride

	err = cfg.Validate()
	if err != nil {
		err = errors.Wrap(err, "invalid configuration")
		return cfg, err
	}

	return cfg, err
}
