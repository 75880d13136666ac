package audio

import "context"

// Model describes one model a provider offers and the capabilities it serves.
type Model struct {
	ID           string       `json:"id"`
	Capabilities []Capability `json:"capabilities"`
}

// Provider is an audio backend registered under a string id. Capability
// support is expressed by also implementing Synthesizer or Transcriber, so
// "provider supports X" is a type assertion, not a runtime probe.
type Provider interface {
	ID() string
	Models() []Model
}

// Synthesizer is the text-to-speech capability.
type Synthesizer interface {
	Provider
	Synthesize(ctx context.Context, params SynthesisParams, auth AuthContext, model string) (*SpeechResult, error)
}

// Transcriber is the speech-to-text capability.
type Transcriber interface {
	Provider
	Transcribe(ctx context.Context, params TranscriptionParams, auth AuthContext, model string) (*TranscriptResult, error)
}

// Registry holds the registered providers. It is built once at startup and
// read-only afterwards, so concurrent tool calls need no locking.
type Registry struct {
	providers map[string]Provider
	order     []string
}

func NewRegistry(providers ...Provider) *Registry {
	r := &Registry{providers: make(map[string]Provider)}
	for _, p := range providers {
		r.Register(p)
	}
	return r
}

func (r *Registry) Register(p Provider) {
	if _, exists := r.providers[p.ID()]; !exists {
		r.order = append(r.order, p.ID())
	}
	r.providers[p.ID()] = p
}

func (r *Registry) Get(id string) (Provider, bool) {
	p, ok := r.providers[id]
	return p, ok
}

// List returns all providers in registration order.
func (r *Registry) List() []Provider {
	out := make([]Provider, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.providers[id])
	}
	return out
}

// IDs returns the registered provider ids in registration order.
func (r *Registry) IDs() []string {
	ids := make([]string, len(r.order))
	copy(ids, r.order)
	return ids
}
