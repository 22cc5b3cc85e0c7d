package domain

import "time"

// VoiceProfileID is the fixed row ID of the singleton voice profile.
const VoiceProfileID = "default"

// VoiceProfile is the reader's brand voice: who they are, who they
// write for, and how they sound. A single row holds it; content
// generation folds it into prompts when any field is set.
type VoiceProfile struct {
	ID          string    `json:"id"`
	Positioning string    `json:"positioning,omitempty"`
	Audience    string    `json:"audience,omitempty"`
	Tone        string    `json:"tone,omitempty"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// IsEmpty reports whether no voice field has been filled in.
func (p *VoiceProfile) IsEmpty() bool {
	return p == nil || (p.Positioning == "" && p.Audience == "" && p.Tone == "")
}
