// Metalfeed - Swedish Metal and Rock Concert Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/metalfeed

package validation

import (
	"strings"
	"testing"
)

func TestGetValidator_Singleton(t *testing.T) {
	v1 := GetValidator()
	v2 := GetValidator()

	if v1 != v2 {
		t.Error("GetValidator() should return the same singleton instance")
	}
	if v1 == nil {
		t.Error("GetValidator() should not return nil")
	}
}

type refreshQuery struct {
	Refresh string `validate:"omitempty,oneof=0 1 true false"`
}

func TestOneofValidation(t *testing.T) {
	tests := []struct {
		value   string
		wantErr bool
	}{
		{"", false},
		{"0", false},
		{"1", false},
		{"true", false},
		{"false", false},
		{"yes", true},
		{"2", true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			err := ValidateStruct(&refreshQuery{Refresh: tt.value})
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateStruct(Refresh=%q) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
		})
	}
}

type datedRecord struct {
	Date string `validate:"omitempty,isodate"`
}

func TestISODateValidation(t *testing.T) {
	tests := []struct {
		value   string
		wantErr bool
	}{
		{"", false},
		{"2026-02-21", false},
		{"2028-02-29", false},
		{"2026-02-30", true},
		{"2026-2-21", true},
		{"2026-02-21T19:00:00", true},
		{"Unknown date", true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			err := ValidateStruct(&datedRecord{Date: tt.value})
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateStruct(Date=%q) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
		})
	}
}

type listing struct {
	Artist string `validate:"required"`
	URL    string `validate:"omitempty,url"`
}

func TestToAPIError_SingleError(t *testing.T) {
	err := ValidateStruct(&refreshQuery{Refresh: "maybe"})
	if err == nil {
		t.Fatal("expected validation error")
	}

	apiErr := err.ToAPIError()
	if apiErr.Code != "VALIDATION_ERROR" {
		t.Errorf("Code = %q, want VALIDATION_ERROR", apiErr.Code)
	}
	if apiErr.Message != "Refresh must be one of: 0 1 true false" {
		t.Errorf("Message = %q", apiErr.Message)
	}
	if apiErr.Details["field"] != "Refresh" {
		t.Errorf("Details[field] = %v, want Refresh", apiErr.Details["field"])
	}
}

func TestToAPIError_MultipleErrors(t *testing.T) {
	err := ValidateStruct(&listing{URL: "not a url"})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if len(err.Errors()) != 2 {
		t.Fatalf("len(Errors()) = %d, want 2", len(err.Errors()))
	}

	apiErr := err.ToAPIError()
	if !strings.Contains(apiErr.Message, "Artist: Artist is required") {
		t.Errorf("Message = %q, want Artist entry", apiErr.Message)
	}
	if !strings.Contains(apiErr.Message, "URL: URL must be an absolute URL") {
		t.Errorf("Message = %q, want URL entry", apiErr.Message)
	}
	fields, ok := apiErr.Details["fields"].([]map[string]interface{})
	if !ok || len(fields) != 2 {
		t.Errorf("Details[fields] = %v, want two entries", apiErr.Details["fields"])
	}
}

func TestRequestValidationError_Empty(t *testing.T) {
	err := &RequestValidationError{}
	if err.Error() != "validation failed" {
		t.Errorf("Error() = %q, want validation failed", err.Error())
	}
	if err.ToAPIError().Message != "Validation failed" {
		t.Errorf("ToAPIError().Message = %q", err.ToAPIError().Message)
	}
}
