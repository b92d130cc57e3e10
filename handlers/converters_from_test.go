package handlers

import (
	"strings"
	"testing"

	"facilitator/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromRegisterForm(t *testing.T) {
	tests := []struct {
		name          string
		line          string
		expected      string
		expectedError string
	}{
		{
			name:     "valid",
			line:     "client=192.0.2.1%3A9000",
			expected: "192.0.2.1:9000",
		},
		{
			name:     "unescaped colon",
			line:     "client=:9000",
			expected: ":9000",
		},
		{
			name:     "bracketed ipv6",
			line:     "client=%5B2001%3Adb8%3A%3A1%5D%3A9000",
			expected: "[2001:db8::1]:9000",
		},
		{
			name:     "other fields are ignored",
			line:     "foo=bar&client=10.0.0.1:1;x=y",
			expected: "10.0.0.1:1",
		},
		{
			name:     "blank duplicate is dropped",
			line:     "client=&client=10.0.0.1:1",
			expected: "10.0.0.1:1",
		},
		{
			name:          "empty value",
			line:          "client=",
			expectedError: `missing "client" param`,
		},
		{
			name:          "missing field",
			line:          "other=10.0.0.1:1",
			expectedError: `missing "client" param`,
		},
		{
			name:          "several values",
			line:          "client=10.0.0.1:1&client=10.0.0.2:2",
			expectedError: `missing "client" param`,
		},
		{
			name:          "empty line",
			line:          "",
			expectedError: "POST syntax error",
		},
		{
			name:          "field without equals",
			line:          "client",
			expectedError: "POST syntax error",
		},
		{
			name:          "trailing separator",
			line:          "client=10.0.0.1:1&",
			expectedError: "POST syntax error",
		},
		{
			name:          "bad escape",
			line:          "client=%zz",
			expectedError: "POST syntax error",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := fromRegisterForm(tt.line)
			if tt.expectedError != "" {
				require.Error(t, err)
				assert.True(t, service.IsProtocolFormError(err))
				assert.Equal(t, tt.expectedError, service.ToFacilitatorError(err).Message)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestReadRegisterLine(t *testing.T) {
	t.Run("reads only the first line", func(t *testing.T) {
		line, err := readRegisterLine(strings.NewReader("client=10.0.0.1:1\r\nclient=10.0.0.2:2\n"))
		require.NoError(t, err)
		assert.Equal(t, "client=10.0.0.1:1", line)
	})

	t.Run("no newline", func(t *testing.T) {
		line, err := readRegisterLine(strings.NewReader("  client=10.0.0.1:1  "))
		require.NoError(t, err)
		assert.Equal(t, "client=10.0.0.1:1", line)
	})

	t.Run("empty body", func(t *testing.T) {
		line, err := readRegisterLine(strings.NewReader(""))
		require.NoError(t, err)
		assert.Equal(t, "", line)
	})

	t.Run("line too long", func(t *testing.T) {
		_, err := readRegisterLine(strings.NewReader("client=" + strings.Repeat("1", maxRegisterLineBytes)))
		require.Error(t, err)
		assert.True(t, service.IsProtocolFormError(err))
	})

	t.Run("read error", func(t *testing.T) {
		_, err := readRegisterLine(failingReader{})
		require.Error(t, err)
		assert.True(t, service.IsProtocolFormError(err))
	})
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, assert.AnError
}
