package cmd

import (
	"testing"
)

func TestPathsOverlap(t *testing.T) {
	tests := []struct {
		name     string
		path1    string
		path2    string
		expected bool
	}{
		{
			name:     "identical paths",
			path1:    "/tmp/archives",
			path2:    "/tmp/archives",
			expected: true,
		},
		{
			name:     "archive under mountpoint",
			path1:    "/tmp/archives",
			path2:    "/tmp/archives/docs.zip",
			expected: true,
		},
		{
			name:     "mountpoint under archive directory",
			path1:    "/tmp/archives/mnt",
			path2:    "/tmp/archives",
			expected: true,
		},
		{
			name:     "completely separate paths",
			path1:    "/mnt/docs",
			path2:    "/tmp/archives/docs.zip",
			expected: false,
		},
		{
			name:     "sibling with shared prefix",
			path1:    "/tmp/arch",
			path2:    "/tmp/archives/docs.zip",
			expected: false,
		},
		{
			name:     "relative paths - overlapping",
			path1:    "mnt",
			path2:    "mnt/docs.zip",
			expected: true,
		},
		{
			name:     "relative paths - separate",
			path1:    "mnt",
			path2:    "docs.zip",
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := pathsOverlap(tt.path1, tt.path2)
			if result != tt.expected {
				t.Errorf("pathsOverlap(%q, %q) = %v, expected %v", tt.path1, tt.path2, result, tt.expected)
			}
		})
	}
}
