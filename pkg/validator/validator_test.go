package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPhone(t *testing.T) {
	tests := []struct {
		in    string
		valid bool
		out   string
	}{
		{"+49 (30) 1234-5678", true, "+493012345678"},
		{"030 123 45 67", true, "0301234567"},
		{"12-34", false, "1234"},
		{"", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.valid, ValidatePhone(tt.in))
			assert.Equal(t, tt.out, FormatPhone(tt.in))
		})
	}
}

func TestValidateHexColor(t *testing.T) {
	assert.True(t, ValidateHexColor("#1788FB"))
	assert.True(t, ValidateHexColor("#abc"))
	assert.False(t, ValidateHexColor("1788FB"))
	assert.False(t, ValidateHexColor("#12345"))
	assert.False(t, ValidateHexColor("#GGGGGG"))
}

func TestFormatName(t *testing.T) {
	assert.Equal(t, "Anna-Maria Schmidt", FormatName("  anna-maria   SCHMIDT "))
	assert.Equal(t, "Ёлка", FormatName("ёЛКА"))
	assert.Equal(t, "", FormatName("   "))
}

func TestSanitizeString(t *testing.T) {
	assert.Equal(t, "say hi & now", SanitizeString(" say <hi> & `now` "))
}

func TestValidateEmail(t *testing.T) {
	assert.True(t, ValidateEmail("desk@salon.example"))
	assert.False(t, ValidateEmail("desk@salon"))
}
