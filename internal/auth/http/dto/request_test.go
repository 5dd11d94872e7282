package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoginRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		request LoginRequest
		wantErr bool
	}{
		{"Success_Valid", LoginRequest{Email: "admin@admin.com", Password: "admin123"}, false},
		{"Error_MissingEmail", LoginRequest{Password: "admin123"}, true},
		{"Error_InvalidEmail", LoginRequest{Email: "admin", Password: "admin123"}, true},
		{"Error_MissingPassword", LoginRequest{Email: "admin@admin.com"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestLoginRequest_ToLoginInput(t *testing.T) {
	request := LoginRequest{Email: "Admin@Admin.com", Password: "admin123"}

	input := request.ToLoginInput()
	assert.Equal(t, "Admin@Admin.com", input.Email)
	assert.Equal(t, "admin123", input.Password)
}
