package types

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

func validProfile() Profile {
	return Profile{
		TargetRole:   "Backend Engineer",
		WeeklyHours:  10,
		SkillLevel:   "beginner",
		HorizonWeeks: 24,
		Goal:         GoalJob,
	}
}

func TestProfile_Validate(t *testing.T) {
	v := validator.New()

	tests := []struct {
		name    string
		mutate  func(*Profile)
		wantErr bool
	}{
		{name: "valid", mutate: func(_ *Profile) {}, wantErr: false},
		{name: "zero hours", mutate: func(p *Profile) { p.WeeklyHours = 0 }, wantErr: true},
		{name: "too many hours", mutate: func(p *Profile) { p.WeeklyHours = 61 }, wantErr: true},
		{name: "max hours ok", mutate: func(p *Profile) { p.WeeklyHours = 60 }, wantErr: false},
		{name: "zero horizon", mutate: func(p *Profile) { p.HorizonWeeks = 0 }, wantErr: true},
		{name: "horizon beyond two years", mutate: func(p *Profile) { p.HorizonWeeks = 105 }, wantErr: true},
		{name: "missing role", mutate: func(p *Profile) { p.TargetRole = "" }, wantErr: true},
		{name: "unknown goal", mutate: func(p *Profile) { p.Goal = "world domination" }, wantErr: true},
		{name: "career switch goal", mutate: func(p *Profile) { p.Goal = GoalCareerSwitch }, wantErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validProfile()
			tt.mutate(&p)
			err := v.Struct(p)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
