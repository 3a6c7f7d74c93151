package errors

import (
	"strings"
	"testing"
)

func TestValidateLogin(t *testing.T) {
	tests := []struct {
		login   string
		wantErr bool
	}{
		{"octocat", false},
		{"a", false},
		{"user-name", false},
		{"dependabot[bot]", false},
		{"", true},
		{"-leading", true},
		{"trailing-", true},
		{"double--hyphen", true},
		{"../etc", true},
		{"with/slash", true},
		{strings.Repeat("a", 40), true},
	}

	for _, tt := range tests {
		err := ValidateLogin(tt.login)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateLogin(%q) error = %v, wantErr %v", tt.login, err, tt.wantErr)
		}
	}
}

func TestValidateRepoRef(t *testing.T) {
	tests := []struct {
		owner, repo string
		wantErr     bool
	}{
		{"ethereum", "go-ethereum", false},
		{"a", "x", false},
		{"foundry-rs", "foundry.docs", false},
		{"", "x", true},
		{"a", "", true},
		{"..", "x", true},
		{"a", ".", true},
		{"a b", "x", true},
		{"a", "x?y", true},
	}

	for _, tt := range tests {
		err := ValidateRepoRef(tt.owner, tt.repo)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateRepoRef(%q, %q) error = %v, wantErr %v", tt.owner, tt.repo, err, tt.wantErr)
		}
		if err != nil && !Is(err, ErrCodeInvalidInput) {
			t.Errorf("ValidateRepoRef(%q, %q) code = %v, want %v", tt.owner, tt.repo, GetCode(err), ErrCodeInvalidInput)
		}
	}
}

func TestValidateTechnology(t *testing.T) {
	tests := []struct {
		tech    string
		wantErr bool
	}{
		{"solidity", false},
		{"c++", false},
		{"vim script", false},
		{"", true},
		{"   ", true},
		{"go\x00", true},
		{strings.Repeat("x", 65), true},
	}

	for _, tt := range tests {
		err := ValidateTechnology(tt.tech)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateTechnology(%q) error = %v, wantErr %v", tt.tech, err, tt.wantErr)
		}
	}
}
