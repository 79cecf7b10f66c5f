package node

import (
	"context"
	"fmt"

	"prompt-nodes/translate"
)

// TencentTranslater forwards two texts, optionally through the translation
// service.
type TencentTranslater struct {
	forwarder *translate.Forwarder
	info      Info
}

func NewTencentTranslater(f *translate.Forwarder) *TencentTranslater {
	return &TencentTranslater{forwarder: f, info: translaterInfo()}
}

func translaterInfo() Info {
	return Info{
		Class:       "TencentTranslater",
		DisplayName: "Tencent Translater",
		Category:    "KayTool/Translate",
		Description: "Translates text using the Tencent Translate API. Supports multiple languages and lets users pick source and target languages.",
		Function:    "translate_texts",
		Inputs: []Slot{
			{Name: "Text_A", Type: TypeString, Group: Required, Multiline: true},
			{Name: "Text_B", Type: TypeString, Group: Required, Multiline: true},
			{Name: "Translate", Type: TypeBoolean, Group: Required, Default: true},
			{Name: "From", Type: TypeCombo, Group: Required, Default: translate.Auto.Display,
				Choices: translate.DisplayNames(translate.SourceLanguages())},
			{Name: "To", Type: TypeCombo, Group: Required, Default: translate.English.Display,
				Choices: translate.DisplayNames(translate.TargetLanguages())},
		},
		Outputs: []Output{
			{Name: "A", Type: TypeString},
			{Name: "B", Type: TypeString},
		},
	}
}

func (n *TencentTranslater) Info() Info { return n.info }

func (n *TencentTranslater) Execute(ctx context.Context, in Inputs) ([]any, error) {
	a, err := in.String("Text_A", "")
	if err != nil {
		return nil, err
	}
	b, err := in.String("Text_B", "")
	if err != nil {
		return nil, err
	}
	enabled, err := in.Bool("Translate", defaultBool(n.info, "Translate"))
	if err != nil {
		return nil, err
	}

	// Language choices only matter when translating.
	var from, to translate.Language
	if enabled {
		if from, err = n.language(in, "From", translate.SourceLanguages()); err != nil {
			return nil, err
		}
		if to, err = n.language(in, "To", translate.TargetLanguages()); err != nil {
			return nil, err
		}
	}

	ta, tb, err := n.forwarder.Translate(ctx, a, b, enabled, from, to)
	if err != nil {
		return nil, err
	}
	return []any{ta, tb}, nil
}

// language resolves a display name against the slot's allowed choices.
func (n *TencentTranslater) language(in Inputs, slot string, allowed []translate.Language) (translate.Language, error) {
	display, err := in.String(slot, defaultString(n.info, slot))
	if err != nil {
		return translate.Language{}, err
	}
	for _, l := range allowed {
		if l.Display == display {
			return l, nil
		}
	}
	return translate.Language{}, fmt.Errorf("%w: unsupported %s language %q", ErrBadInput, slot, display)
}
