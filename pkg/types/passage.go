// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// PassageRole classifies an evidence passage.
type PassageRole string

const (
	// RoleBackbone marks a generic, foundational explanation. Backbone
	// passages are only evidence-worthy when they explain a prerequisite
	// that closure actually pulled in.
	RoleBackbone PassageRole = "backbone"

	// RoleConcept marks a passage specific to one concept. The empty role
	// is treated the same way.
	RoleConcept PassageRole = "concept"
)

// Passage is an immutable evidence unit from the passage corpus.
type Passage struct {
	// ID is the citable passage identifier (e.g. "pad.state.p12").
	ID string `json:"id" yaml:"id"`

	// Text is the passage body quoted to the generation service.
	Text string `json:"text" yaml:"text"`

	// Symbols lists the vocabulary symbols this passage substantiates.
	Symbols []string `json:"symbols" yaml:"symbols"`

	// Role is backbone or concept; empty means concept.
	Role PassageRole `json:"role,omitempty" yaml:"role,omitempty"`
}

// IsBackbone reports whether the passage carries the backbone role.
func (p Passage) IsBackbone() bool {
	return p.Role == RoleBackbone
}

// Quote is the (id, text) pair handed to the generation service. Symbol
// lists and roles stay on the engine side.
type Quote struct {
	ID   string `json:"id" yaml:"id"`
	Text string `json:"text" yaml:"text"`
}
