package models

import (
	"testing"
)

func TestUser_Validate(t *testing.T) {
	tests := []struct {
		name    string
		user    User
		wantErr bool
	}{
		{
			name:    "Valid user",
			user:    User{Email: "test@example.com", Role: RoleUser},
			wantErr: false,
		},
		{
			name:    "Valid admin",
			user:    User{Email: "admin@example.com", Role: RoleAdmin},
			wantErr: false,
		},
		{
			name:    "Empty email",
			user:    User{Email: "", Role: RoleUser},
			wantErr: true,
		},
		{
			name:    "Invalid email",
			user:    User{Email: "invalid-email", Role: RoleUser},
			wantErr: true,
		},
		{
			name:    "Missing role",
			user:    User{Email: "test@example.com"},
			wantErr: true,
		},
		{
			name:    "Unknown role",
			user:    User{Email: "test@example.com", Role: Role("SUPERUSER")},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.user.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("User.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
