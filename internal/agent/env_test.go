package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildTaskWithEnvironment(t *testing.T) {
	out := BuildTaskWithEnvironment("find the login button", "https://Example.COM/shop/")

	assert.Contains(t, out, "example.com")
	assert.Contains(t, out, "https://Example.COM/shop/")
	assert.Contains(t, out, "/shop")
	assert.Contains(t, out, "User task: find the login button")
}

func TestBuildTaskWithEnvironmentRootPath(t *testing.T) {
	out := BuildTaskWithEnvironment("do something", "https://example.com/")
	assert.NotContains(t, out, "Initial path")
}

func TestBuildTaskWithEnvironmentBadURL(t *testing.T) {
	// Unparseable or host-less URLs leave the task untouched.
	assert.Equal(t, "task", BuildTaskWithEnvironment("task", "not a url"))
	assert.Equal(t, "task", BuildTaskWithEnvironment("task", ""))
}

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		current string
		target  string
		want    string
	}{
		{"https://example.com/a/b", "", "https://example.com/a/b"},
		{"https://example.com/a/b", "https://other.com/x", "https://other.com/x"},
		{"https://example.com/a/b", "/cart", "https://example.com/cart"},
		{"https://example.com/a/", "item", "https://example.com/a/item"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, normalizeURL(tt.current, tt.target), tt.target)
	}
}
