package slug

import "testing"

// TestGenerate exercises the slug generator with a broad range of inputs
// covering brand names, Portuguese accents, special characters, and
// boundary conditions.
func TestGenerate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		// --- Brand names ---
		{
			name:  "simple two words",
			input: "SU Controle",
			want:  "su-controle",
		},
		{
			name:  "name with year",
			input: "Estudio Criativo 2026",
			want:  "estudio-criativo-2026",
		},
		{
			name:  "already lowercase",
			input: "already lowercase",
			want:  "already-lowercase",
		},
		{
			name:  "single word",
			input: "Finanpay",
			want:  "finanpay",
		},

		// --- Portuguese accents transliterated ---
		{
			name:  "tilde and cedilla",
			input: "Gestão & Finanças",
			want:  "gestao-financas",
		},
		{
			name:  "acute accents",
			input: "Crédito Fácil",
			want:  "credito-facil",
		},
		{
			name:  "circumflex",
			input: "Três Lagoas Contábil",
			want:  "tres-lagoas-contabil",
		},
		{
			name:  "city name",
			input: "São João",
			want:  "sao-joao",
		},

		// --- Special characters ---
		{
			name:  "punctuation marks",
			input: "Hello, World! How's it going?",
			want:  "hello-world-hows-it-going",
		},
		{
			name:  "ampersand and at sign",
			input: "Rock & Roll @ the Arena",
			want:  "rock-roll-the-arena",
		},
		{
			name:  "currency marker",
			input: "Desafio R$20 por dia",
			want:  "desafio-r20-por-dia",
		},
		{
			name:  "parentheses and brackets",
			input: "Version (2.0) [Beta]",
			want:  "version-20-beta",
		},

		// --- Whitespace handling ---
		{
			name:  "leading and trailing spaces",
			input: "  hello world  ",
			want:  "hello-world",
		},
		{
			name:  "multiple consecutive spaces collapsed",
			input: "hello    world",
			want:  "hello-world",
		},

		// --- Hyphen handling ---
		{
			name:  "multiple hyphens between words",
			input: "hello---world",
			want:  "hello-world",
		},
		{
			name:  "single hyphen preserved",
			input: "well-known fact",
			want:  "well-known-fact",
		},
		{
			name:  "hyphens and spaces mixed",
			input: "  --hello -- world--  ",
			want:  "hello-world",
		},

		// --- Edge cases ---
		{
			name:  "empty string",
			input: "",
			want:  "",
		},
		{
			name:  "only spaces",
			input: "     ",
			want:  "",
		},
		{
			name:  "only special characters",
			input: "!@#$%^&*()",
			want:  "",
		},
		{
			name:  "single character",
			input: "A",
			want:  "a",
		},
		{
			name:  "all numbers",
			input: "123456",
			want:  "123456",
		},
		{
			name:  "date-like string",
			input: "2026-02-25",
			want:  "2026-02-25",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Generate(tt.input)
			if got != tt.want {
				t.Errorf("Generate(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// TestGenerate_Idempotent verifies that generating a slug from an already
// valid slug produces the same result.
func TestGenerate_Idempotent(t *testing.T) {
	slugs := []string{
		"su-controle",
		"gestao-financas-2026",
		"a",
		"123",
	}

	for _, s := range slugs {
		t.Run(s, func(t *testing.T) {
			got := Generate(s)
			if got != s {
				t.Errorf("Generate(%q) = %q, want idempotent result %q", s, got, s)
			}
		})
	}
}

// TestGenerate_ConsistentCase verifies that slugs are always lowercase
// regardless of input casing.
func TestGenerate_ConsistentCase(t *testing.T) {
	inputs := []string{
		"SU CONTROLE",
		"Su Controle",
		"sU cOnTrOlE",
		"su controle",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			got := Generate(input)
			if got != "su-controle" {
				t.Errorf("Generate(%q) = %q, want %q", input, got, "su-controle")
			}
		})
	}
}
