package domain

import (
	"strings"
	"testing"
)

func validReport() CaseReport {
	return CaseReport{
		DrugName: "Ibuprofen",
		Reaction: "rash and swelling",
		Phone:    "1234567890",
		Language: "en",
	}
}

func TestValidateReportAcceptsCompleteForm(t *testing.T) {
	if err := ValidateReport(validReport()); err != nil {
		t.Fatalf("expected valid report, got %v", err)
	}
	hindi := validReport()
	hindi.Language = "hi"
	if err := ValidateReport(hindi); err != nil {
		t.Fatalf("expected hi accepted, got %v", err)
	}
}

func TestValidateReportRejectsMissingFields(t *testing.T) {
	err := ValidateReport(CaseReport{})
	if err == nil {
		t.Fatalf("expected error for empty form")
	}
	if !IsValidation(err) {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	for _, want := range []string{
		"drug name is required",
		"reaction description is required",
		"contact number must be 10 digits",
		"language must be en or hi",
	} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("expected %q in %q", want, err.Error())
		}
	}
}

func TestValidateReportRejectsBadPhone(t *testing.T) {
	for _, phone := range []string{"12345", "12345678901", "12345abcde"} {
		report := validReport()
		report.Phone = phone
		err := ValidateReport(report)
		if err == nil {
			t.Fatalf("expected error for phone %q", phone)
		}
		if !strings.Contains(err.Error(), "contact number must be 10 digits") {
			t.Fatalf("unexpected message for phone %q: %v", phone, err)
		}
	}
}

func TestValidateReportRejectsUnknownLanguage(t *testing.T) {
	report := validReport()
	report.Language = "fr"
	err := ValidateReport(report)
	if err == nil {
		t.Fatalf("expected error for language fr")
	}
	if !strings.Contains(err.Error(), "language must be en or hi") {
		t.Fatalf("unexpected message: %v", err)
	}
}
