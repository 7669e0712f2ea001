package util

import (
	"reflect"
	"testing"
)

func TestParseSearchQuery(t *testing.T) {
	query := "status:in-progress major:Network resource:kim porting sim"
	got := ParseSearchQuery(query)

	if !reflect.DeepEqual(got.Status, []string{"in-progress"}) {
		t.Fatalf("Status = %v, want %v", got.Status, []string{"in-progress"})
	}
	if !reflect.DeepEqual(got.Major, []string{"Network"}) {
		t.Fatalf("Major = %v, want %v", got.Major, []string{"Network"})
	}
	if !reflect.DeepEqual(got.Resource, []string{"kim"}) {
		t.Fatalf("Resource = %v, want %v", got.Resource, []string{"kim"})
	}
	if !reflect.DeepEqual(got.Text, []string{"porting", "sim"}) {
		t.Fatalf("Text = %v, want %v", got.Text, []string{"porting", "sim"})
	}
}

func TestSearchQueryEmpty(t *testing.T) {
	if !ParseSearchQuery("   ").IsEmpty() {
		t.Fatalf("expected blank query to be empty")
	}
	if ParseSearchQuery("billing").IsEmpty() {
		t.Fatalf("expected text query to be non-empty")
	}
}

func TestContainsFold(t *testing.T) {
	if !ContainsFold("eSIM Provisioning", "esim") {
		t.Fatalf("expected case-insensitive match")
	}
	if ContainsFold("Billing", "network", "core") {
		t.Fatalf("expected no match")
	}
}
