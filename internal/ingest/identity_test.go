package ingest_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/JaimeStill/screener/internal/ingest"
)

func TestMergeIdentity(t *testing.T) {
	tests := []struct {
		name      string
		extracted ingest.Identity
		submitted ingest.Identity
		want      ingest.Identity
	}{
		{
			name:      "extracted values win",
			extracted: ingest.Identity{Name: "Ana Lopez", Email: "ana@x.io", Phone: "+34 600"},
			submitted: ingest.Identity{Name: "A. Lopez", Email: "a@y.io", Phone: "+1 555"},
			want:      ingest.Identity{Name: "Ana Lopez", Email: "ana@x.io", Phone: "+34 600"},
		},
		{
			name:      "short extracted name falls back",
			extracted: ingest.Identity{Name: "Al", Email: "al@x.io"},
			submitted: ingest.Identity{Name: "Alan Smith"},
			want:      ingest.Identity{Name: "Alan Smith", Email: "al@x.io"},
		},
		{
			name:      "three character extracted name wins",
			extracted: ingest.Identity{Name: "Bob"},
			submitted: ingest.Identity{Name: "Robert Jones", Email: "rj@x.io"},
			want:      ingest.Identity{Name: "Bob", Email: "rj@x.io"},
		},
		{
			name:      "name length counts runes after trimming",
			extracted: ingest.Identity{Name: "  Zé  "},
			submitted: ingest.Identity{Name: "José Silva", Email: "j@x.io"},
			want:      ingest.Identity{Name: "José Silva", Email: "j@x.io"},
		},
		{
			name:      "submitted email used when none extracted",
			submitted: ingest.Identity{Name: "Jane Doe", Email: "jane@corp.io"},
			want:      ingest.Identity{Name: "Jane Doe", Email: "jane@corp.io"},
		},
		{
			name:      "placeholder email from merged name",
			submitted: ingest.Identity{Name: "Jane  Mary Doe"},
			want:      ingest.Identity{Name: "Jane  Mary Doe", Email: "jane.mary.doe@example.com"},
		},
		{
			name:      "blank strings count as absent",
			extracted: ingest.Identity{Name: "   ", Email: " ", Phone: "  "},
			submitted: ingest.Identity{Name: "Li Wei", Phone: "+86 1"},
			want:      ingest.Identity{Name: "Li Wei", Email: "li.wei@example.com", Phone: "+86 1"},
		},
		{
			name:      "phone absent when neither present",
			extracted: ingest.Identity{Name: "Ana Lopez", Email: "ana@x.io"},
			submitted: ingest.Identity{Name: "Ana"},
			want:      ingest.Identity{Name: "Ana Lopez", Email: "ana@x.io"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ingest.MergeIdentity(tt.extracted, tt.submitted, "example.com")
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMergeIdentityIsPure(t *testing.T) {
	extracted := ingest.Identity{Name: "Ana Lopez"}
	submitted := ingest.Identity{Name: "Ana", Email: "a@x.io"}

	first := ingest.MergeIdentity(extracted, submitted, "example.com")
	second := ingest.MergeIdentity(extracted, submitted, "example.com")
	assert.Equal(t, first, second)
}

func TestPlaceholderEmail(t *testing.T) {
	tests := []struct {
		name   string
		domain string
		want   string
	}{
		{"John Smith", "example.com", "john.smith@example.com"},
		{"  MARY\tANN  ", "corp.io", "mary.ann@corp.io"},
		{"Solo", "", "solo@example.com"},
		{"", "example.com", "candidate@example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, ingest.PlaceholderEmail(tt.name, tt.domain))
		})
	}
}
