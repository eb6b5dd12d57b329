package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderTemplate(t *testing.T) {
	t.Run("substitutes simple tokens", func(t *testing.T) {
		out := RenderTemplate("Hello {{name}}, welcome to {{program}}!", map[string]string{
			"name":    "Amina",
			"program": "Web Design",
		})
		assert.Equal(t, "Hello Amina, welcome to Web Design!", out)
	})

	t.Run("unknown tokens render empty", func(t *testing.T) {
		out := RenderTemplate("Ref: {{reference}}.", map[string]string{})
		assert.Equal(t, "Ref: .", out)
	})

	t.Run("truthy block kept and inner tokens resolved", func(t *testing.T) {
		out := RenderTemplate("{{#registration_number}}Your number is {{registration_number}}.{{/registration_number}}", map[string]string{
			"registration_number": "ATS/WDD/2026/7C41A9",
		})
		assert.Equal(t, "Your number is ATS/WDD/2026/7C41A9.", out)
	})

	t.Run("falsy block removed", func(t *testing.T) {
		for _, v := range []string{"", "false", "0", "  "} {
			out := RenderTemplate("before {{#flag}}hidden{{/flag}} after", map[string]string{"flag": v})
			assert.Equal(t, "before  after", out)
		}
	})

	t.Run("mismatched block markers left untouched", func(t *testing.T) {
		tpl := "{{#a}}body{{/b}}"
		assert.Equal(t, tpl, RenderTemplate(tpl, map[string]string{"a": "yes"}))
	})
}

func TestGenerators(t *testing.T) {
	t.Run("registration number incorporates program code", func(t *testing.T) {
		n := GenerateRegistrationNumber("Web Design and Development")
		assert.Regexp(t, `^ATS/WDA/\d{4}/[0-9A-F]{6}$`, n)
	})

	t.Run("registration number falls back for empty title", func(t *testing.T) {
		assert.Regexp(t, `^ATS/GEN/\d{4}/[0-9A-F]{6}$`, GenerateRegistrationNumber(""))
	})

	t.Run("receipt numbers are unique across calls", func(t *testing.T) {
		seen := map[string]bool{}
		for i := 0; i < 100; i++ {
			n := GenerateReceiptNumber()
			assert.Regexp(t, `^RCP-\d{8}-\d{6}-[0-9A-F]{8}$`, n)
			assert.False(t, seen[n], "duplicate receipt number %s", n)
			seen[n] = true
		}
	})

	t.Run("payment reference carries prefix", func(t *testing.T) {
		assert.Regexp(t, `^REGFEE-\d{8}-\d{6}-[0-9A-F]{8}$`, GenPaymentReference("REGFEE"))
	})

	t.Run("callback url normalizes trailing slash", func(t *testing.T) {
		want := "https://skills.example.com/api/u/payments/verify/ATS-1"
		assert.Equal(t, want, BuildCallbackURL("https://skills.example.com", "ATS-1"))
		assert.Equal(t, want, BuildCallbackURL("https://skills.example.com/", "ATS-1"))
	})
}
