package prompt

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"prompt-nodes/clip"
	"prompt-nodes/preset"
)

const fragmentSep = ", "

// ErrNoEncoder is returned by Encode when no text encoder was injected.
var ErrNoEncoder = errors.New("no text encoder configured")

// Compose merges user text with the selected presets. It never fails:
// unknown selections and IDs contribute nothing.
func Compose(catalog *preset.Catalog, req Request) Texts {
	var pos, neg fragments

	if req.PresetsEnabled {
		for _, sel := range req.Selections {
			if !sel.Valid || sel.Name == "" {
				continue
			}
			if p, ok := catalog.Resolve(sel.Name); ok {
				pos.add(p.Positive)
				neg.add(p.Negative)
			}
		}
	}

	positive := merge(req.Positive, pos.String(), req.PresetsEnabled)
	negative := merge(req.Negative, neg.String(), req.PresetsEnabled)

	if req.IDsEnabled && req.IDs != "" {
		pos, neg = fragments{positive}, fragments{negative}
		for _, id := range strings.Split(req.IDs, ",") {
			if p, ok := catalog.Lookup(strings.TrimSpace(id)); ok {
				pos.add(p.Positive)
				neg.add(p.Negative)
			}
		}
		positive, negative = pos.String(), neg.String()
	}

	t := Texts{
		Positive: strings.Trim(positive, ", "),
		Negative: strings.Trim(negative, ", "),
	}
	if !req.NegativeEnabled {
		t.Negative = ""
	}
	return t
}

// merge puts the user text in front of the preset text.
func merge(user, presets string, enabled bool) string {
	if !enabled || presets == "" {
		return user
	}
	return user + fragmentSep + presets
}

// fragments accumulates comma-joined text, skipping empty pieces. The first
// element may be a seed that is itself empty.
type fragments []string

func (f *fragments) add(s string) {
	if s == "" {
		return
	}
	*f = append(*f, s)
}

func (f fragments) String() string {
	parts := f
	for len(parts) > 0 && parts[0] == "" {
		parts = parts[1:]
	}
	return strings.Join(parts, fragmentSep)
}

// Assembler composes prompts and encodes them with the injected encoder.
type Assembler struct {
	catalog *preset.Catalog
	encoder clip.Encoder
	logger  *zap.Logger
}

// NewAssembler returns an Assembler. The catalog is shared read-only.
func NewAssembler(catalog *preset.Catalog, encoder clip.Encoder, logger *zap.Logger) *Assembler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Assembler{catalog: catalog, encoder: encoder, logger: logger}
}

// Catalog returns the preset catalog the assembler reads from.
func (a *Assembler) Catalog() *preset.Catalog {
	return a.catalog
}

// Encode composes the prompt texts and encodes both. With negative output
// disabled the empty negative text is still encoded and then zeroed.
func (a *Assembler) Encode(ctx context.Context, req Request) (Result, error) {
	texts := Compose(a.catalog, req)

	a.logger.Info("final positive prompt", zap.String("text", texts.Positive))
	if req.NegativeEnabled {
		a.logger.Info("final negative prompt", zap.String("text", texts.Negative))
	} else {
		a.logger.Info("negative prompt zeroed out")
	}

	if a.encoder == nil {
		return Result{}, fmt.Errorf("failed to encode prompts: %w", ErrNoEncoder)
	}

	positive, err := clip.EncodeText(ctx, a.encoder, texts.Positive)
	if err != nil {
		a.logger.Error("error during encoding", zap.String("side", "positive"), zap.Error(err))
		return Result{}, fmt.Errorf("failed to encode prompts: %w", err)
	}
	negative, err := clip.EncodeText(ctx, a.encoder, texts.Negative)
	if err != nil {
		a.logger.Error("error during encoding", zap.String("side", "negative"), zap.Error(err))
		return Result{}, fmt.Errorf("failed to encode prompts: %w", err)
	}
	if !req.NegativeEnabled {
		negative = clip.ZeroOut(negative)
	}

	return Result{
		Positive:     positive,
		Negative:     negative,
		PositiveText: texts.Positive,
		NegativeText: texts.Negative,
	}, nil
}
