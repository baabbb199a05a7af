package profile

import (
	"reflect"
	"testing"
)

func TestParse(t *testing.T) {
	text := `Jane Doe
jane.doe@Example.com | +421 (905) 123-456
Based in Trenčín, Slovakia
https://github.com/janedoe (code) and https://janedoe.dev, again https://github.com/janedoe
Python, PyTorch, Docker and PostgreSQL`

	got := Parse(text)

	if got.Email != "jane.doe@Example.com" {
		t.Fatalf("unexpected email: %q", got.Email)
	}
	if got.Phone != "+421 (905) 123-456" {
		t.Fatalf("unexpected phone: %q", got.Phone)
	}
	if got.Location != "Trenčín" {
		t.Fatalf("unexpected location: %q", got.Location)
	}
	if want := []string{"https://github.com/janedoe", "https://janedoe.dev,"}; !reflect.DeepEqual(got.URLs, want) {
		t.Fatalf("unexpected urls: %q", got.URLs)
	}
	if want := []string{"python"}; !reflect.DeepEqual(got.Skills["programming_languages"], want) {
		t.Fatalf("unexpected languages: %v", got.Skills["programming_languages"])
	}
	if want := []string{"docker"}; !reflect.DeepEqual(got.Skills["cloud"], want) {
		t.Fatalf("unexpected cloud skills: %v", got.Skills["cloud"])
	}
	if len(got.Skills) != 6 {
		t.Fatalf("expected all categories, got %d", len(got.Skills))
	}
}

func TestParseEmpty(t *testing.T) {
	got := Parse("nothing to see here")
	if got.Email != "" || got.Phone != "" || got.Location != "" {
		t.Fatalf("expected empty contact fields, got %+v", got)
	}
	if got.URLs == nil || len(got.URLs) != 0 {
		t.Fatalf("expected empty url list, got %v", got.URLs)
	}
}
