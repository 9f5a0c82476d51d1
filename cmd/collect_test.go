package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckRequiredFlags(t *testing.T) {
	testCases := []struct {
		name        string
		org         string
		format      string
		expectedErr string
	}{
		{name: "both present", org: "acme", format: "json"},
		{name: "missing org", format: "json", expectedErr: "--org"},
		{name: "missing format", org: "acme", expectedErr: "--format"},
		{name: "missing both reports org first", expectedErr: "--org"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := checkRequiredFlags(tc.org, tc.format)
			if tc.expectedErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.expectedErr)
		})
	}
}
