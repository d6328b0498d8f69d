package moderation

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/termbridge/backend/internal/models"
)

func TestEngine_AuthorizeModerator(t *testing.T) {
	e := NewEngine()

	if err := e.AuthorizeModerator(models.Principal{Role: models.RoleAdmin}); err != nil {
		t.Errorf("expected admin to pass, got %v", err)
	}

	err := e.AuthorizeModerator(models.Principal{Role: models.RoleUser})
	if !errors.Is(err, models.ErrForbidden) {
		t.Errorf("expected ErrForbidden for USER, got %v", err)
	}
}

func TestEngine_AuthorizeEdit(t *testing.T) {
	e := NewEngine()
	author := uuid.New()
	other := uuid.New()

	tests := []struct {
		name      string
		status    models.ContentStatus
		actor     uuid.UUID
		wantErr   error
		immutable bool
	}{
		{name: "Author edits draft", status: models.StatusDraft, actor: author},
		{name: "Author edits pending", status: models.StatusPending, actor: author},
		{name: "Author edits rejected", status: models.StatusRejected, actor: author},
		{name: "Author edits approved", status: models.StatusApproved, actor: author, wantErr: models.ErrForbidden, immutable: true},
		{name: "Stranger edits draft", status: models.StatusDraft, actor: other, wantErr: models.ErrForbidden},
		{name: "Stranger edits approved", status: models.StatusApproved, actor: other, wantErr: models.ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content := &models.Content{CreatedBy: author, Status: tt.status}
			err := e.AuthorizeEdit(content, models.Principal{UserID: tt.actor, Role: models.RoleUser})
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if tt.immutable != errors.Is(err, models.ErrApprovedImmutable) {
				t.Errorf("immutable mismatch: err = %v", err)
			}
		})
	}
}

func TestEngine_SubmitTransition(t *testing.T) {
	e := NewEngine()

	tests := []struct {
		current models.ContentStatus
		want    models.ContentStatus
		wantErr bool
	}{
		{current: models.StatusDraft, want: models.StatusPending},
		{current: models.StatusRejected, want: models.StatusPending},
		{current: models.StatusPending, want: models.StatusPending},
		{current: models.StatusApproved, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(string(tt.current), func(t *testing.T) {
			got, err := e.SubmitTransition(tt.current)
			if tt.wantErr {
				if !errors.Is(err, models.ErrInvalidTransition) {
					t.Fatalf("expected ErrInvalidTransition, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if got != tt.want {
				t.Errorf("SubmitTransition(%s) = %s, want %s", tt.current, got, tt.want)
			}
		})
	}
}

func TestEngine_DecisionTransition(t *testing.T) {
	e := NewEngine()

	tests := []struct {
		name     string
		current  models.ContentStatus
		decision models.ReviewDecision
		want     models.ContentStatus
		wantErr  error
	}{
		{name: "Approve pending", current: models.StatusPending, decision: models.DecisionApproved, want: models.StatusApproved},
		{name: "Reject pending", current: models.StatusPending, decision: models.DecisionRejected, want: models.StatusRejected},
		{name: "Approve draft", current: models.StatusDraft, decision: models.DecisionApproved, wantErr: models.ErrInvalidTransition},
		{name: "Approve approved", current: models.StatusApproved, decision: models.DecisionApproved, wantErr: models.ErrInvalidTransition},
		{name: "Approve rejected", current: models.StatusRejected, decision: models.DecisionApproved, wantErr: models.ErrInvalidTransition},
		{name: "Reject rejected", current: models.StatusRejected, decision: models.DecisionRejected, wantErr: models.ErrInvalidTransition},
		{name: "Unknown decision", current: models.StatusPending, decision: models.ReviewDecision("DEFERRED"), wantErr: models.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.DecisionTransition(tt.current, tt.decision)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if got != tt.want {
				t.Errorf("DecisionTransition(%s, %s) = %s, want %s", tt.current, tt.decision, got, tt.want)
			}
		})
	}
}

func TestEngine_ValidateRejection(t *testing.T) {
	e := NewEngine()
	comment := "duplicate of an existing entry"
	blank := "   "

	tests := []struct {
		name    string
		reason  string
		comment *string
		wantErr bool
	}{
		{name: "Inaccurate without comment", reason: models.ReasonInaccurate},
		{name: "Inappropriate without comment", reason: models.ReasonInappropriate},
		{name: "Poor Quality without comment", reason: models.ReasonPoorQuality},
		{name: "Other with comment", reason: models.ReasonOther, comment: &comment},
		{name: "Other without comment", reason: models.ReasonOther, wantErr: true},
		{name: "Other with blank comment", reason: models.ReasonOther, comment: &blank, wantErr: true},
		{name: "Unknown reason", reason: "Spam", wantErr: true},
		{name: "Empty reason", reason: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := e.ValidateRejection(tt.reason, tt.comment)
			if tt.wantErr {
				if !errors.Is(err, models.ErrValidation) {
					t.Fatalf("expected ErrValidation, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
		})
	}
}
