package models

import (
	"testing"

	"github.com/google/uuid"
)

func validContent() Content {
	return Content{
		ID:         uuid.New(),
		Title:      "Gen-Alpha Slang",
		Term:       "rizz",
		Body:       "Short for charisma.",
		CategoryID: uuid.New(),
		CreatedBy:  uuid.New(),
		Status:     StatusDraft,
	}
}

func TestContent_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Content)
		wantErr bool
	}{
		{
			name:    "Valid content",
			mutate:  func(c *Content) {},
			wantErr: false,
		},
		{
			name:    "Empty title",
			mutate:  func(c *Content) { c.Title = "" },
			wantErr: true,
		},
		{
			name:    "Whitespace title",
			mutate:  func(c *Content) { c.Title = "   " },
			wantErr: true,
		},
		{
			name:    "Empty term",
			mutate:  func(c *Content) { c.Term = "" },
			wantErr: true,
		},
		{
			name:    "Empty body",
			mutate:  func(c *Content) { c.Body = "" },
			wantErr: true,
		},
		{
			name:    "Missing category",
			mutate:  func(c *Content) { c.CategoryID = uuid.Nil },
			wantErr: true,
		},
		{
			name:    "Missing creator",
			mutate:  func(c *Content) { c.CreatedBy = uuid.Nil },
			wantErr: true,
		},
		{
			name:    "Unknown status",
			mutate:  func(c *Content) { c.Status = ContentStatus("PUBLISHED") },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validContent()
			tt.mutate(&c)
			err := c.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Content.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestContentStatus_Valid(t *testing.T) {
	for _, s := range []ContentStatus{StatusDraft, StatusPending, StatusApproved, StatusRejected} {
		if !s.Valid() {
			t.Errorf("expected %q to be valid", s)
		}
	}
	for _, s := range []ContentStatus{"", "draft", "PUBLISHED"} {
		if s.Valid() {
			t.Errorf("expected %q to be invalid", s)
		}
	}
}

func TestRole_Valid(t *testing.T) {
	if !RoleUser.Valid() || !RoleAdmin.Valid() {
		t.Error("expected USER and ADMIN to be valid roles")
	}
	if Role("MODERATOR").Valid() {
		t.Error("expected unknown role to be invalid")
	}
}
