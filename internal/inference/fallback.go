package inference

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/careersynapse/backend/internal/types"
)

//go:embed roles.yaml
var rolesYAML []byte

type SalaryRange struct {
	Min      int    `yaml:"min" json:"min"`
	Max      int    `yaml:"max" json:"max"`
	Currency string `yaml:"currency" json:"currency"`
}

type RoleProfile struct {
	Name           string      `yaml:"name" json:"name"`
	RequiredSkills []string    `yaml:"required_skills" json:"requiredSkills"`
	SalaryRange    SalaryRange `yaml:"salary_range" json:"salaryRange"`
	DemandScore    int         `yaml:"demand_score" json:"demandScore"`
	JobGrowth      string      `yaml:"job_growth" json:"jobGrowth"`
	TopEmployers   []string    `yaml:"top_employers" json:"topEmployers"`
}

var roleTable []RoleProfile

func init() {
	var doc struct {
		Roles []RoleProfile `yaml:"roles"`
	}
	if err := yaml.Unmarshal(rolesYAML, &doc); err != nil {
		panic(fmt.Sprintf("inference: bad embedded role table: %v", err))
	}
	if len(doc.Roles) == 0 {
		panic("inference: embedded role table is empty")
	}
	roleTable = doc.Roles
}

// LookupRole returns the seeded profile for a role; unknown roles fall back
// to the first table entry.
func LookupRole(name string) RoleProfile {
	for _, role := range roleTable {
		if strings.EqualFold(role.Name, strings.TrimSpace(name)) {
			return role
		}
	}
	return roleTable[0]
}

// fallbackGapResult synthesizes a deterministic gap analysis from the role
// table when the model service cannot be reached. Importance tiers are
// positional over the role's required-skill list: the first third is
// critical, the next third important, the rest nice-to-have.
func fallbackGapResult(req GapRequest) *GapResult {
	role := LookupRole(req.CareerGoal)

	known := make(map[string]bool, len(req.Skills))
	for _, s := range req.Skills {
		known[strings.ToLower(strings.TrimSpace(s))] = true
	}
	if req.ResumeData != nil {
		for _, s := range req.ResumeData.TechnicalSkills {
			known[strings.ToLower(strings.TrimSpace(s))] = true
		}
	}

	total := len(role.RequiredSkills)
	entries := make([]types.SkillGapEntry, 0, total)
	missing := 0
	for i, skill := range role.RequiredSkills {
		importance := types.ImportanceNiceToHave
		switch {
		case i < (total+2)/3:
			importance = types.ImportanceCritical
		case i < 2*(total+2)/3:
			importance = types.ImportanceImportant
		}
		matched := known[strings.ToLower(skill)]
		if !matched {
			missing++
		}
		current := 0
		if matched {
			current = 60
		}
		entries = append(entries, types.SkillGapEntry{
			ID:                  uuid.New().String(),
			SkillName:           skill,
			Importance:          importance,
			Completed:           false,
			CurrentProficiency:  current,
			RequiredProficiency: types.RequiredProficiencyFor(importance),
			Resources: []types.LearningResource{
				{Type: types.ResourceTypeCourse, Title: skill + " Certification Course", URL: "https://www.coursera.org/search?query=" + strings.ReplaceAll(skill, " ", "+")},
			},
		})
	}

	gapPercentage := 0.0
	if total > 0 {
		gapPercentage = float64(missing) / float64(total) * 100
	}

	return &GapResult{
		SkillGap:        entries,
		GapPercentage:   gapPercentage,
		Recommendations: fmt.Sprintf("Focus on the missing %s skills first; the role shows %s job growth with a demand score of %d.", role.Name, role.JobGrowth, role.DemandScore),
		Fallback:        true,
	}
}
