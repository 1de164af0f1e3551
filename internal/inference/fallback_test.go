package inference

import (
	"testing"

	"github.com/careersynapse/backend/internal/types"
)

func TestLookupRoleKnown(t *testing.T) {
	role := LookupRole("Clinical Data Analyst")
	if role.Name != "Clinical Data Analyst" {
		t.Fatalf("Name = %q, want Clinical Data Analyst", role.Name)
	}
	if len(role.RequiredSkills) == 0 {
		t.Fatal("seeded role has no required skills")
	}
}

func TestLookupRoleCaseInsensitive(t *testing.T) {
	role := LookupRole("  clinical data analyst ")
	if role.Name != "Clinical Data Analyst" {
		t.Fatalf("Name = %q, want case-insensitive match", role.Name)
	}
}

func TestLookupRoleUnknownFallsBackToFirst(t *testing.T) {
	role := LookupRole("Astronaut")
	if role.Name != roleTable[0].Name {
		t.Fatalf("Name = %q, want first table entry %q", role.Name, roleTable[0].Name)
	}
}

func TestFallbackGapResult(t *testing.T) {
	role := roleTable[0]
	result := fallbackGapResult(GapRequest{
		Skills:     []string{role.RequiredSkills[0]},
		CareerGoal: role.Name,
	})

	if !result.Fallback {
		t.Fatal("Fallback flag not set")
	}
	if len(result.SkillGap) != len(role.RequiredSkills) {
		t.Fatalf("len(SkillGap) = %d, want %d", len(result.SkillGap), len(role.RequiredSkills))
	}

	first := result.SkillGap[0]
	if first.Importance != types.ImportanceCritical {
		t.Fatalf("first entry importance = %q, want critical tier", first.Importance)
	}
	if first.CurrentProficiency != 60 {
		t.Fatalf("matched skill current = %d, want 60", first.CurrentProficiency)
	}
	if first.RequiredProficiency != 90 {
		t.Fatalf("critical required = %d, want 90", first.RequiredProficiency)
	}

	last := result.SkillGap[len(result.SkillGap)-1]
	if last.Importance != types.ImportanceNiceToHave {
		t.Fatalf("last entry importance = %q, want nice-to-have tier", last.Importance)
	}

	total := len(role.RequiredSkills)
	wantGap := float64(total-1) / float64(total) * 100
	if result.GapPercentage != wantGap {
		t.Fatalf("GapPercentage = %v, want %v", result.GapPercentage, wantGap)
	}
	if result.Recommendations == "" {
		t.Fatal("expected non-empty recommendations")
	}
}

func TestFallbackGapResultUsesResumeSkills(t *testing.T) {
	role := roleTable[0]
	result := fallbackGapResult(GapRequest{
		CareerGoal: role.Name,
		ResumeData: &types.ResumeData{TechnicalSkills: []string{role.RequiredSkills[0]}},
	})
	if result.SkillGap[0].CurrentProficiency != 60 {
		t.Fatal("resume-derived skill not treated as matched")
	}
}
