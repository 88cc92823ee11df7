/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package testmodels

import (
	"fmt"

	"github.com/go-openapi/strfmt"
)

// Player is a fixture entity for codec and store tests.
type Player struct {

	// Unique identifier of the player.
	// Required: true
	// Format: uuid
	ID strfmt.UUID `dynamodbav:"ID" json:"id"`

	// Club the player belongs to.
	// Required: true
	Club string `dynamodbav:"Club" json:"club"`

	// Display name.
	Name string `dynamodbav:"Name" json:"name"`

	// Contact address.
	// Format: email
	Email strfmt.Email `dynamodbav:"Email,omitempty" json:"email,omitempty"`

	// Current rating.
	Rating int `dynamodbav:"Rating" json:"rating"`

	// When the player joined, RFC 3339.
	// Format: date-time
	JoinedAt string `dynamodbav:"JoinedAt,omitempty" json:"joinedAt,omitempty"`
}

// PlayerIndexMap lays players out under their club partition.
var PlayerIndexMap = map[string]string{
	"PK":     "CLUB#{Club}",
	"SK":     "PLAYER#{ID}",
	"GSI1PK": "PLAYER#{ID}",
}

// Validate checks the formatted fields.
func (p *Player) Validate() error {
	if !strfmt.IsUUID(p.ID.String()) {
		return fmt.Errorf("player id %q is not a uuid", p.ID)
	}
	if p.Club == "" {
		return fmt.Errorf("player %s has no club", p.ID)
	}
	if p.Email != "" && !strfmt.IsEmail(p.Email.String()) {
		return fmt.Errorf("player %s has invalid email %q", p.ID, p.Email)
	}
	if p.JoinedAt != "" && !strfmt.IsDateTime(p.JoinedAt) {
		return fmt.Errorf("player %s has invalid joinedAt %q", p.ID, p.JoinedAt)
	}
	return nil
}
