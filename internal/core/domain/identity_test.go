package domain

import (
	"errors"
	"testing"
)

func TestParseStudentEmail(t *testing.T) {
	tests := []struct {
		name  string
		email string
		want  StudentIdentity
	}{
		{
			name:  "canonical seven digit roll",
			email: "u2204015@student.cuet.ac.bd",
			want:  StudentIdentity{Batch: "22", Department: "04", StudentID: "015"},
		},
		{
			name:  "longer trailing id",
			email: "u21011234@student.cuet.ac.bd",
			want:  StudentIdentity{Batch: "21", Department: "01", StudentID: "1234"},
		},
		{
			name:  "future department code",
			email: "u2399001@student.cuet.ac.bd",
			want:  StudentIdentity{Batch: "23", Department: "99", StudentID: "001"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseStudentEmail(tt.email)
			if err != nil {
				t.Fatalf("ParseStudentEmail(%q) returned error: %v", tt.email, err)
			}
			if got != tt.want {
				t.Fatalf("ParseStudentEmail(%q) = %+v, want %+v", tt.email, got, tt.want)
			}
		})
	}
}

func TestParseStudentEmailRejectsMalformed(t *testing.T) {
	tests := []struct {
		name  string
		email string
	}{
		{"wrong domain", "u2204015@gmail.com"},
		{"missing marker", "2204015@student.cuet.ac.bd"},
		{"wrong marker", "x2204015@student.cuet.ac.bd"},
		{"too few digits", "u220401@student.cuet.ac.bd"},
		{"non-digit run", "u22o4015@student.cuet.ac.bd"},
		{"empty local part", "@student.cuet.ac.bd"},
		{"empty string", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseStudentEmail(tt.email)
			if err == nil {
				t.Fatalf("ParseStudentEmail(%q) accepted malformed email", tt.email)
			}

			var invalid *InvalidIdentityError
			if !errors.As(err, &invalid) {
				t.Fatalf("ParseStudentEmail(%q) error type = %T, want *InvalidIdentityError", tt.email, err)
			}
			if invalid.Email != tt.email {
				t.Fatalf("error carries email %q, want %q", invalid.Email, tt.email)
			}
		})
	}
}

func TestStudentIdentityFullStudentID(t *testing.T) {
	id := StudentIdentity{Batch: "22", Department: "04", StudentID: "015"}
	if got := id.FullStudentID(); got != "2204015" {
		t.Fatalf("FullStudentID() = %q, want %q", got, "2204015")
	}
}

func TestCohortEquals(t *testing.T) {
	a := Cohort{Batch: "22", Department: "04"}

	if !a.Equals(Cohort{Batch: "22", Department: "04"}) {
		t.Fatal("identical cohorts reported unequal")
	}
	if a.Equals(Cohort{Batch: "21", Department: "04"}) {
		t.Fatal("different batch reported equal")
	}
	if a.Equals(Cohort{Batch: "22", Department: "05"}) {
		t.Fatal("different department reported equal")
	}
	// "4" and "04" are distinct keys; codes are canonical zero-padded strings.
	if a.Equals(Cohort{Batch: "22", Department: "4"}) {
		t.Fatal("unpadded department code reported equal to padded")
	}
}
