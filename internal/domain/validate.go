package domain

import "strings"

// Normalize trims the name and fills in the default icon and colour.
// It returns a *ValidationError if the category cannot be stored.
func (c *ServiceCategory) Normalize() error {
	if c.ID.IsZero() {
		return NewValidationError("id", "required")
	}
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return NewValidationError("name", "required")
	}
	if c.Icon == "" {
		c.Icon = IconBriefcase
	}
	if !c.Icon.Valid() {
		return NewValidationError("icon", "unknown icon "+string(c.Icon))
	}
	if c.ColorTheme == "" {
		c.ColorTheme = ColorBlue
	}
	if !c.ColorTheme.Valid() {
		return NewValidationError("colorTheme", "unknown colour theme "+string(c.ColorTheme))
	}
	return nil
}

func (c *Crew) Normalize() error {
	if c.ID.IsZero() {
		return NewValidationError("id", "required")
	}
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return NewValidationError("name", "required")
	}
	return nil
}

// Validate checks the fields an operator must fill in before a record is
// written. Photos and notes are unconstrained.
func (r *ServiceRecord) Validate() error {
	if r.ID.IsZero() {
		return NewValidationError("id", "required")
	}
	if strings.TrimSpace(r.Location) == "" {
		return NewValidationError("location", "required")
	}
	if strings.TrimSpace(r.OccurredAt) == "" {
		return NewValidationError("occurredAt", "required")
	}
	return nil
}
