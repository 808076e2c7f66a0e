package outputname_test

import (
	"testing"

	"github.com/skycodec/skycodec/pkg/outputname"
	"github.com/stretchr/testify/assert"
)

func TestDerive(t *testing.T) {
	testCases := []struct {
		policy       string
		originalName string
		expected     string
	}{
		{outputname.PolicyReplaceExtension, "report.txt", "report.skc"},
		{outputname.PolicyReplaceExtension, "archive.tar.gz", "archive.tar.skc"},
		{outputname.PolicyReplaceExtension, "no-extension", "no-extension.skc"},
		{outputname.PolicyReplaceExtension, ".hidden", ".skc"},
		{outputname.PolicyPrefix, "report.txt", "compressed_report.txt"},
		{outputname.PolicyPrefix, "no-extension", "compressed_no-extension"},
		{"", "report.txt", "report.skc"},
	}

	for _, tc := range testCases {
		result := outputname.Derive(tc.policy, tc.originalName)
		assert.Equalf(t, tc.expected, result,
			"policy %q applied to %q should yield %q", tc.policy, tc.originalName, tc.expected)
	}
}
