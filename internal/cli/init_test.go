package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequireNonEmpty(t *testing.T) {
	validate := requireNonEmpty("API token")

	assert.NoError(t, validate("abc123"))
	assert.Error(t, validate(""))
	assert.Error(t, validate("   "))
	assert.Contains(t, validate("").Error(), "API token")
}

func TestRequireURL(t *testing.T) {
	tests := []struct {
		name  string
		input string
		ok    bool
	}{
		{"https url", "https://cb2114.sb.app", true},
		{"http url", "http://192.168.1.20", true},
		{"empty", "", false},
		{"missing scheme", "cb2114.sb.app", false},
		{"wrong scheme", "ftp://robot", false},
		{"whitespace only", "   ", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := requireURL(tt.input)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestRequireIntRange(t *testing.T) {
	validate := requireIntRange("port", 1, 65535)

	assert.NoError(t, validate("502"))
	assert.NoError(t, validate("1"))
	assert.NoError(t, validate("65535"))
	assert.Error(t, validate("0"))
	assert.Error(t, validate("65536"))
	assert.Error(t, validate("not-a-number"))
	assert.Contains(t, validate("0").Error(), "port")
}

func TestParseIDList(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []int
		wantErr bool
	}{
		{
			name:  "simple list",
			input: "1,2,7",
			want:  []int{1, 2, 7},
		},
		{
			name:  "whitespace and empties",
			input: " 1 , , 2 ",
			want:  []int{1, 2},
		},
		{
			name:  "empty input",
			input: "",
			want:  nil,
		},
		{
			name:    "not a number",
			input:   "1,speed_rpm",
			wantErr: true,
		},
		{
			name:    "negative id",
			input:   "1,-2",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseIDList(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRequireIDList(t *testing.T) {
	assert.NoError(t, requireIDList("1,2"))
	assert.Error(t, requireIDList(""))
	assert.Error(t, requireIDList("abc"))
}
