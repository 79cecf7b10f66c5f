// Package clip defines the contract for the external text encoder that turns
// prompt text into conditioning for a diffusion model.
package clip

import "context"

// PooledOutputKey is the metadata entry holding the pooled embedding.
const PooledOutputKey = "pooled_output"

// Tokens is the encoder's opaque token representation. Callers only pass it
// from Tokenize back into Encode.
type Tokens any

// Encoder tokenizes and encodes prompt text.
type Encoder interface {
	Tokenize(ctx context.Context, text string) (Tokens, error)
	Encode(ctx context.Context, tokens Tokens) (Conditioning, error)
}

// Tensor is a dense float32 array in row-major order.
type Tensor struct {
	Shape []int     `json:"shape"`
	Data  []float32 `json:"data"`
}

// ZerosLike returns a zero tensor of the same shape.
func (t Tensor) ZerosLike() Tensor {
	shape := make([]int, len(t.Shape))
	copy(shape, t.Shape)
	return Tensor{Shape: shape, Data: make([]float32, len(t.Data))}
}

// Cond is one (embedding, metadata) pair produced by the encoder.
type Cond struct {
	Embedding Tensor         `json:"embedding"`
	Meta      map[string]any `json:"meta,omitempty"`
}

// Conditioning is the full encoder output for a single prompt.
type Conditioning []Cond

// EncodeText runs tokenize then encode.
func EncodeText(ctx context.Context, enc Encoder, text string) (Conditioning, error) {
	tokens, err := enc.Tokenize(ctx, text)
	if err != nil {
		return nil, err
	}
	return enc.Encode(ctx, tokens)
}

// ZeroOut returns a copy of c with every embedding and pooled output replaced
// by zeros of identical shape. Other metadata is carried over; c is not
// modified.
func ZeroOut(c Conditioning) Conditioning {
	out := make(Conditioning, 0, len(c))
	for _, cond := range c {
		meta := make(map[string]any, len(cond.Meta))
		for k, v := range cond.Meta {
			meta[k] = v
		}
		switch pooled := meta[PooledOutputKey].(type) {
		case Tensor:
			meta[PooledOutputKey] = pooled.ZerosLike()
		case *Tensor:
			if pooled != nil {
				z := pooled.ZerosLike()
				meta[PooledOutputKey] = &z
			}
		}
		out = append(out, Cond{Embedding: cond.Embedding.ZerosLike(), Meta: meta})
	}
	return out
}
