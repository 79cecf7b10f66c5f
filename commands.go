package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"prompt-nodes/api"
	"prompt-nodes/prompt"
	"prompt-nodes/translate"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP node server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func runServe(ctx context.Context) error {
	a, err := newApp(cfg, logger)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: api.RegisterRoutes(a.manager, a.catalog, a.hub, logger.Named("api")),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("prompt-nodes listening", zap.String("addr", cfg.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List the style presets in the catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cfg, logger)
		if err != nil {
			return err
		}
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tNAME")
		for _, p := range a.catalog.Presets() {
			fmt.Fprintf(tw, "%s\t%s\n", p.ID(), p.Name)
		}
		return tw.Flush()
	},
}

var composeOpts struct {
	positive   string
	negative   string
	presets    []string
	ids        string
	noPresets  bool
	noIDs      bool
	noNegative bool
}

var composeCmd = &cobra.Command{
	Use:   "compose",
	Short: "Print the final prompt texts without encoding them",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(composeOpts.presets) > prompt.MaxSelections {
			return fmt.Errorf("at most %d --preset values allowed", prompt.MaxSelections)
		}
		a, err := newApp(cfg, logger)
		if err != nil {
			return err
		}

		req := prompt.Request{
			Positive:        composeOpts.positive,
			Negative:        composeOpts.negative,
			IDs:             composeOpts.ids,
			PresetsEnabled:  !composeOpts.noPresets,
			IDsEnabled:      !composeOpts.noIDs,
			NegativeEnabled: !composeOpts.noNegative,
		}
		for i, name := range composeOpts.presets {
			req.Selections[i] = prompt.Select(name)
		}

		texts := prompt.Compose(a.catalog, req)
		fmt.Fprintf(cmd.OutOrStdout(), "positive: %s\nnegative: %s\n", texts.Positive, texts.Negative)
		return nil
	},
}

var translateOpts struct {
	from string
	to   string
}

var translateCmd = &cobra.Command{
	Use:   "translate TEXT_A [TEXT_B]",
	Short: "Translate one or two texts through the translation service",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		from, ok := translate.LookupLanguage(translateOpts.from)
		if !ok {
			return fmt.Errorf("unsupported source language %q", translateOpts.from)
		}
		to, ok := translate.LookupLanguage(translateOpts.to)
		if !ok || to == translate.Auto {
			return fmt.Errorf("unsupported target language %q", translateOpts.to)
		}
		a, err := newApp(cfg, logger)
		if err != nil {
			return err
		}

		var textB string
		if len(args) == 2 {
			textB = args[1]
		}
		ta, tb, err := a.forwarder.Translate(cmd.Context(), args[0], textB, true, from, to)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), ta)
		if tb != "" {
			fmt.Fprintln(cmd.OutOrStdout(), tb)
		}
		return nil
	},
}

func init() {
	f := composeCmd.Flags()
	f.StringVarP(&composeOpts.positive, "positive", "p", "", "positive prompt text")
	f.StringVarP(&composeOpts.negative, "negative", "n", "", "negative prompt text")
	f.StringArrayVar(&composeOpts.presets, "preset", nil, "preset display name, repeatable (max 6)")
	f.StringVar(&composeOpts.ids, "ids", "", "comma-separated preset IDs, e.g. 001,002")
	f.BoolVar(&composeOpts.noPresets, "no-presets", false, "ignore --preset selections")
	f.BoolVar(&composeOpts.noIDs, "no-ids", false, "ignore --ids")
	f.BoolVar(&composeOpts.noNegative, "no-negative", false, "drop the negative prompt")

	translateCmd.Flags().StringVar(&translateOpts.from, "from", translate.Auto.Display, "source language display name")
	translateCmd.Flags().StringVar(&translateOpts.to, "to", translate.English.Display, "target language display name")
}
