package observability

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/careerlockin/careerlockin/internal/types"
)

func testRoadmap() *types.Roadmap {
	return &types.Roadmap{
		TargetRole: "Backend Engineer",
		Assumptions: types.Assumptions{
			WeeklyHours:  10,
			SkillLevel:   "beginner",
			HorizonWeeks: 12,
		},
		Phases: []types.Phase{
			{Title: "Foundations", Order: 1, Steps: []types.Step{
				{Title: "Learn Go basics", EstimatedHours: 6, Order: 1, Resources: []types.Resource{
					{Title: "A Tour of Go", URL: "https://go.dev/tour/", Verification: types.StatusVerified},
					{Title: "Some course", URL: "https://example.com/c", Verification: types.StatusFallback},
				}},
				{Title: "Write a CLI", Order: 2},
			}},
		},
	}
}

func TestPrintRoadmap(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintRoadmap(testRoadmap())

	out := buf.String()
	assert.Contains(t, out, "GENERATED ROADMAP")
	assert.Contains(t, out, "Backend Engineer")
	assert.Contains(t, out, "10h/week over 12 weeks")
	assert.Contains(t, out, "1. Foundations")
	assert.Contains(t, out, "Learn Go basics")
	assert.Contains(t, out, "✓ A Tour of Go")
	assert.Contains(t, out, "↩ Some course")
}

func TestPrintRoadmap_Nil(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintRoadmap(nil)
	assert.Empty(t, buf.String())
}

func TestPrintVerificationSummary(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintVerificationSummary(testRoadmap())

	out := buf.String()
	assert.Contains(t, out, "LINK VERIFICATION")
	assert.Contains(t, out, "Resources:  2")
	assert.Contains(t, out, "Verified:   1")
	assert.Contains(t, out, "Fallback:   1")
}
