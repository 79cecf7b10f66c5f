package node

import (
	"context"
	"fmt"

	"prompt-nodes/prompt"
)

const noSelection = "None"

// StrongPrompt builds prompts from user text plus catalog presets and encodes
// them with the injected CLIP encoder.
type StrongPrompt struct {
	assembler *prompt.Assembler
	info      Info
}

func NewStrongPrompt(a *prompt.Assembler) *StrongPrompt {
	return &StrongPrompt{assembler: a, info: strongPromptInfo(a.Catalog().Names())}
}

func selectionSlot(i int) string {
	return fmt.Sprintf("Strong_Prompt_%d", i)
}

func strongPromptInfo(styles []string) Info {
	inputs := []Slot{
		{Name: "positive", Type: TypeString, Group: Required, Multiline: true, Placeholder: "positive",
			Tooltip: "The positive prompt text."},
		{Name: "negative", Type: TypeString, Group: Required, Multiline: true, Placeholder: "negative",
			Tooltip: "The negative prompt text."},
		{Name: "clip", Type: TypeCLIP, Group: Required,
			Tooltip: "The CLIP model used for encoding the prompts."},
		{Name: "Negative_Out", Type: TypeBoolean, Group: Required, Default: true, Label: "Enable Negative Output",
			Tooltip: "Toggle to enable/disable the output of negative prompt."},
	}
	for i := 1; i <= prompt.MaxSelections; i++ {
		inputs = append(inputs, Slot{
			Name: selectionSlot(i), Type: TypeCombo, Group: Required, Choices: styles,
			Tooltip: fmt.Sprintf("Select a preset style for position %d.", i),
		})
	}
	inputs = append(inputs,
		Slot{Name: "Strong_Prompt_Switch", Type: TypeBoolean, Group: Required, Default: true, Label: "Enable Presets",
			Tooltip: "Toggle to enable/disable the use of presets."},
		Slot{Name: "IDs", Type: TypeString, Group: Required, Default: "",
			Tooltip: "Enter style IDs separated by commas (001,002,003)."},
		Slot{Name: "IDs_Switch", Type: TypeBoolean, Group: Required, Default: true, Label: "Enable IDs",
			Tooltip: "Toggle to enable/disable the use of style IDs."},
		Slot{Name: "unique_id", Type: TypeUniqueID, Group: Hidden},
	)

	return Info{
		Class:       "StrongPrompt",
		DisplayName: "Strong Prompt",
		Category:    "KayTool",
		Description: "Generates and encodes positive and negative prompts using a CLIP model into embeddings that can be used to guide the diffusion model.",
		Function:    "encode_prompts",
		Inputs:      inputs,
		Outputs: []Output{
			{Name: "positive", Type: TypeConditioning, Tooltip: "A conditioning containing the embedded positive prompt used to guide the diffusion model."},
			{Name: "negative", Type: TypeConditioning, Tooltip: "A conditioning containing the embedded negative prompt used to guide the diffusion model."},
			{Name: "positive_text", Type: TypeString, Tooltip: "The final synthesized positive prompt text before converting into conditioning."},
			{Name: "negative_text", Type: TypeString, Tooltip: "The final synthesized negative prompt text before converting into conditioning."},
		},
	}
}

func (n *StrongPrompt) Info() Info { return n.info }

// Request converts host inputs into an assembler request.
func (n *StrongPrompt) Request(in Inputs) (prompt.Request, error) {
	var (
		req prompt.Request
		err error
	)
	if req.Positive, err = in.String("positive", ""); err != nil {
		return req, err
	}
	if req.Negative, err = in.String("negative", ""); err != nil {
		return req, err
	}
	if req.IDs, err = in.String("IDs", defaultString(n.info, "IDs")); err != nil {
		return req, err
	}
	if req.PresetsEnabled, err = in.Bool("Strong_Prompt_Switch", defaultBool(n.info, "Strong_Prompt_Switch")); err != nil {
		return req, err
	}
	if req.IDsEnabled, err = in.Bool("IDs_Switch", defaultBool(n.info, "IDs_Switch")); err != nil {
		return req, err
	}
	if req.NegativeEnabled, err = in.Bool("Negative_Out", defaultBool(n.info, "Negative_Out")); err != nil {
		return req, err
	}
	for i := range req.Selections {
		name, err := in.String(selectionSlot(i+1), "")
		if err != nil {
			return req, err
		}
		if name == "" || name == noSelection {
			req.Selections[i] = prompt.None
			continue
		}
		req.Selections[i] = prompt.Select(name)
	}
	return req, nil
}

func (n *StrongPrompt) Execute(ctx context.Context, in Inputs) ([]any, error) {
	req, err := n.Request(in)
	if err != nil {
		return nil, err
	}
	res, err := n.assembler.Encode(ctx, req)
	if err != nil {
		return nil, err
	}
	return []any{res.Positive, res.Negative, res.PositiveText, res.NegativeText}, nil
}
