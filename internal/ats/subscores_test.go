package ats

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJobSkills(t *testing.T) {
	got := JobSkills([]string{"python", "aws"}, []string{" React ", "AWS", ""})
	assert.Equal(t, []string{"python", "aws", "react"}, got)
	assert.Empty(t, JobSkills(nil, nil))
}

func TestSkillsMatch(t *testing.T) {
	tests := []struct {
		name   string
		resume []string
		job    []string
		want   float64
	}{
		{"no job skills", []string{"python"}, nil, 100},
		{"no skills anywhere", nil, nil, 100},
		{"all matched", []string{"python", "aws", "react"}, []string{"python", "aws"}, 100},
		{"half matched", []string{"python"}, []string{"python", "aws"}, 50},
		{"none matched", []string{"java"}, []string{"python", "aws", "gcp"}, 0},
		{"empty resume", nil, []string{"python"}, 0},
		{"duplicates counted once", []string{"python", "python"}, []string{"python", "python", "aws"}, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, SkillsMatch(tt.resume, tt.job), 1e-9)
		})
	}
}

func TestFormattingScore_Components(t *testing.T) {
	full := "Summary Objective Experience Education Skills Projects jane.doe@example.com 555-123-4567"
	assert.InDelta(t, 30+15+15+20, FormattingScore(full), 1e-9)

	half := "experience education skills"
	assert.InDelta(t, 15+20, FormattingScore(half), 1e-9)

	emailOnly := "reach me at jane@example.org"
	assert.InDelta(t, 15+20, FormattingScore(emailOnly), 1e-9)

	phoneOnly := "call 555.123.4567"
	assert.InDelta(t, 15+20, FormattingScore(phoneOnly), 1e-9)

	assert.InDelta(t, 20, FormattingScore(""), 1e-9)
}

func TestFormattingScore_LengthBands(t *testing.T) {
	words := func(n int) string { return strings.Repeat("word ", n) }

	tests := []struct {
		words int
		want  float64
	}{
		{199, 20},
		{200, 40},
		{2000, 40},
		{2001, 30},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, FormattingScore(words(tt.words)), 1e-9, "words=%d", tt.words)
	}
}

func TestExperienceMatch(t *testing.T) {
	years := func(n int) ExtractedProfile { return ExtractedProfile{ExperienceYears: n, HasExperience: true} }
	none := ExtractedProfile{}

	tests := []struct {
		name   string
		resume ExtractedProfile
		job    ExtractedProfile
		want   float64
	}{
		{"over qualified capped", years(5), years(3), 100},
		{"far over qualified", years(30), years(1), 100},
		{"exact", years(3), years(3), 100},
		{"under qualified", years(2), years(4), 50},
		{"resume unknown", none, years(3), DefaultExperienceMatch},
		{"job unknown", years(3), none, DefaultExperienceMatch},
		{"zero requirement", years(3), years(0), DefaultExperienceMatch},
		{"zero resume", years(0), years(3), DefaultExperienceMatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, ExperienceMatch(tt.resume, tt.job), 1e-9)
		})
	}
}
