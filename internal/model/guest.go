// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusComing       Status = "Coming"
	StatusNotComing    Status = "Not Coming"
	StatusNotSubmitted Status = "Not Submitted"
)

// Guest is a single invitee. RSVP is nil until the guest answered.
type Guest struct {
	ID        uuid.UUID  `json:"id,omitempty" yaml:"id,omitempty"`
	CreatedAt *time.Time `json:"created_at,omitempty" yaml:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty" yaml:"updated_at,omitempty"`
	FirstName string     `json:"firstName" yaml:"firstName"`
	LastName  string     `json:"lastName" yaml:"lastName"`
	RSVP      *bool      `json:"RSVP,omitempty" yaml:"RSVP,omitempty"`
}

// Criteria identifies a guest by name.
type Criteria struct {
	FirstName string `json:"firstName" form:"firstName"`
	LastName  string `json:"lastName" form:"lastName"`
}

func (c Criteria) Valid() bool {
	return strings.TrimSpace(c.FirstName) != "" && strings.TrimSpace(c.LastName) != ""
}

func (g *Guest) Criteria() Criteria {
	return Criteria{FirstName: g.FirstName, LastName: g.LastName}
}

// Matches reports whether the guest carries the given identity.
func (g *Guest) Matches(c Criteria) bool {
	return g.FirstName == c.FirstName && g.LastName == c.LastName
}

// Status derives the display status from the tri-state RSVP field.
func (g *Guest) Status() Status {
	switch {
	case g == nil || g.RSVP == nil:
		return StatusNotSubmitted
	case *g.RSVP:
		return StatusComing
	default:
		return StatusNotComing
	}
}

// CountAttending returns the number of guests whose RSVP is strictly true.
func CountAttending(guests []*Guest) int {
	total := 0
	for _, g := range guests {
		if g != nil && g.RSVP != nil && *g.RSVP {
			total++
		}
	}
	return total
}

func Answer(b bool) *bool {
	return &b
}
