package values

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_NewElement(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"single letter", "O", "O", false},
		{"two letters", "Ge", "Ge", false},
		{"trims whitespace", "  P  ", "P", false},
		{"with suffix", "O_w", "O_w", false},
		{"empty string", "", "", true},
		{"whitespace only", "   ", "", true},
		{"leading digit", "2O", "", true},
		{"embedded space", "G e", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			el, err := NewElement(tt.input)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, el.String())
			}
		})
	}
}
