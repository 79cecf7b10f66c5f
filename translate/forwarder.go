package translate

import "context"

// Translator translates a single text.
type Translator interface {
	Translate(ctx context.Context, text string, from, to Language) (string, error)
}

// Forwarder passes a pair of texts through, optionally translating each.
type Forwarder struct {
	translator Translator
}

func NewForwarder(t Translator) *Forwarder {
	return &Forwarder{translator: t}
}

// Translate returns a and b unchanged when enabled is false. Otherwise each is
// translated in turn; a failure on either returns no output at all.
func (f *Forwarder) Translate(ctx context.Context, a, b string, enabled bool, from, to Language) (string, string, error) {
	if !enabled {
		return a, b, nil
	}
	ta, err := f.translator.Translate(ctx, a, from, to)
	if err != nil {
		return "", "", err
	}
	tb, err := f.translator.Translate(ctx, b, from, to)
	if err != nil {
		return "", "", err
	}
	return ta, tb, nil
}
