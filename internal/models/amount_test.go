package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in      string
		want    Amount
		wantErr bool
	}{
		{in: "12.34", want: 1234},
		{in: "0", want: 0},
		{in: "7", want: 700},
		{in: "0.5", want: 50},
		{in: "1.230", want: 123},
		{in: "-3.10", want: -310},
		{in: "1.234", wantErr: true},
		{in: "abc", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAmount(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAmountString(t *testing.T) {
	assert.Equal(t, "12.34", Amount(1234).String())
	assert.Equal(t, "0.05", Amount(5).String())
	assert.Equal(t, "-1.00", Amount(-100).String())
}

func TestAmountJSON(t *testing.T) {
	b, err := json.Marshal(Amount(1050))
	require.NoError(t, err)
	assert.Equal(t, "1050", string(b))

	var a Amount
	require.NoError(t, json.Unmarshal([]byte("1050"), &a))
	assert.Equal(t, Amount(1050), a)

	for _, bad := range []string{"1.5", "1e3", "true"} {
		assert.Error(t, json.Unmarshal([]byte(bad), &a), bad)
	}
}
