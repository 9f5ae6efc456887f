package mcpserver

import (
	"regexp"
	"testing"

	"github.com/haierkeys/dev-toolbox-service/internal/service"

	"github.com/stretchr/testify/require"
)

func TestToolBindingsExposedAndUnique(t *testing.T) {
	bindings := toolBindings()
	require.Len(t, bindings, 18)

	nameRe := regexp.MustCompile(`^[a-z][a-z0-9_]*$`)
	seen := make(map[string]bool)
	for _, b := range bindings {
		require.Regexp(t, nameRe, b.tool.Name)
		require.False(t, seen[b.tool.Name], "duplicate tool name %s", b.tool.Name)
		seen[b.tool.Name] = true

		meta, ok := service.LookupTool(b.toolID)
		require.True(t, ok, "unknown tool id %s", b.toolID)
		require.True(t, meta.McpExposed, "tool %s must be MCP exposed", b.toolID)
		require.NotEmpty(t, b.action)
		require.NotEmpty(t, b.tool.Description)
	}
}

func TestEveryExposedToolHasBinding(t *testing.T) {
	bound := make(map[string]bool)
	for _, b := range toolBindings() {
		bound[b.toolID] = true
	}
	for _, meta := range service.McpTools() {
		require.True(t, bound[meta.ID], "exposed tool %s has no MCP binding", meta.ID)
	}
}

func TestToolBindingsDeclareRequiredParams(t *testing.T) {
	required := map[string][]string{
		"base64_encode":        {"text"},
		"base64_decode":        {"encoded"},
		"jwt_decode":           {"token"},
		"regex_test":           {"pattern"},
		"regex_replace":        {"pattern"},
		"uuid_validate":        {"uuid"},
		"cron_parse":           {"expression"},
		"number_base_convert":  {"value"},
		"case_convert":         {"text"},
		"json_format":          {"json"},
		"json_validate":        {"json"},
		"hash_calculate":       {"text"},
		"html_entities_encode": {"text"},
		"html_entities_decode": {"text"},
	}
	for _, b := range toolBindings() {
		want, ok := required[b.tool.Name]
		if !ok {
			continue
		}
		require.ElementsMatch(t, want, b.tool.InputSchema.Required, b.tool.Name)
	}
}
