package mailer

import (
	"html/template"
	"strings"
	"testing"
)

func TestRenderOTPEmail(t *testing.T) {
	templates, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		t.Fatalf("failed to parse templates: %v", err)
	}

	body, err := renderOTPEmail(templates, "John Dow", "042137")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(body, "John Dow") {
		t.Error("expected rendered body to contain the recipient name")
	}
	if !strings.Contains(body, "042137") {
		t.Error("expected rendered body to contain the verification code")
	}
	if !strings.Contains(body, "Stocktree") {
		t.Error("expected rendered body to contain the product name")
	}
}

func TestRenderOTPEmail_EscapesName(t *testing.T) {
	templates, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		t.Fatalf("failed to parse templates: %v", err)
	}

	body, err := renderOTPEmail(templates, `<script>alert("x")</script>`, "042137")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if strings.Contains(body, "<script>") {
		t.Error("expected recipient name to be HTML-escaped")
	}
}
