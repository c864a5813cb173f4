package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_SystemPrompt(t *testing.T) {
	ClearCache()

	prompt, err := Get("roadmap.json", "system")
	require.NoError(t, err)
	assert.Contains(t, prompt, "src_01")
	assert.Contains(t, prompt, "3 to 5 phase")
	assert.Contains(t, prompt, "4 to 7 step")
}

func TestGet_InvalidFile(t *testing.T) {
	ClearCache()

	_, err := Get("nonexistent.json", "some-key")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read prompt file")
}

func TestGet_InvalidKey(t *testing.T) {
	ClearCache()

	_, err := Get("roadmap.json", "nonexistent-key")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestMustGet_PanicsOnMissing(t *testing.T) {
	ClearCache()

	assert.Panics(t, func() {
		MustGet("roadmap.json", "nonexistent-key")
	})
}

func TestFormat(t *testing.T) {
	template := "Target role: {{.TargetRole}}\nHours: {{.WeeklyHours}}"
	result := Format(template, map[string]string{
		"TargetRole":  "Data Engineer",
		"WeeklyHours": "12",
	})
	assert.Equal(t, "Target role: Data Engineer\nHours: 12", result)
}

func TestFormat_GeneratePromptPlaceholders(t *testing.T) {
	ClearCache()

	template := MustGet("roadmap.json", "generate")
	result := Format(template, map[string]string{
		"TargetRole":      "Frontend Developer",
		"SkillLevel":      "beginner",
		"WeeklyHours":     "8",
		"HorizonWeeks":    "26",
		"Goal":            "job",
		"OptionalContext": "",
	})
	assert.NotContains(t, result, "{{.", "all placeholders should be substituted")
	assert.Contains(t, result, "Frontend Developer")
}

func TestFormat_UnknownPlaceholderLeftInPlace(t *testing.T) {
	result := Format("Role: {{.TargetRole}} Extra: {{.Missing}}", map[string]string{
		"TargetRole": "SRE",
	})
	assert.Equal(t, "Role: SRE Extra: {{.Missing}}", result)
}
