package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	ImportanceCritical   = "critical"
	ImportanceImportant  = "important"
	ImportanceNiceToHave = "nice-to-have"
)

const (
	ResourceTypeYoutube = "youtube"
	ResourceTypeCourse  = "course"
	ResourceTypeBook    = "book"
)

type LearningResource struct {
	Type        string `json:"type"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	Author      string `json:"author,omitempty"`
	Description string `json:"description,omitempty"`
	Difficulty  string `json:"difficulty,omitempty"`
}

type SkillGapEntry struct {
	ID                  string             `json:"_id"`
	SkillName           string             `json:"skill_name"`
	Importance          string             `json:"importance"`
	Completed           bool               `json:"completed"`
	CurrentProficiency  int                `json:"current_proficiency"`
	RequiredProficiency int                `json:"required_proficiency"`
	Resources           []LearningResource `json:"resources,omitempty"`
}

// RequiredProficiencyFor mirrors the tiering used when the model omits a
// required level: critical 90, important 80, nice-to-have 70.
func RequiredProficiencyFor(importance string) int {
	switch importance {
	case ImportanceCritical:
		return 90
	case ImportanceImportant:
		return 80
	default:
		return 70
	}
}

type HealthcareDomainKnowledge struct {
	HasFHIR                  bool     `json:"has_fhir"`
	HasHL7                   bool     `json:"has_hl7"`
	HasHIPAA                 bool     `json:"has_hipaa"`
	OtherHealthcareStandards []string `json:"other_healthcare_standards,omitempty"`
}

type ResumeProject struct {
	Title         string   `json:"title"`
	Description   string   `json:"description,omitempty"`
	TechStack     []string `json:"tech_stack,omitempty"`
	MedicalImpact string   `json:"medical_impact,omitempty"`
}

type ResumeData struct {
	FullName                  string                    `json:"full_name"`
	TechnicalSkills           []string                  `json:"technical_skills"`
	HealthcareDomainKnowledge HealthcareDomainKnowledge `json:"healthcare_domain_knowledge"`
	Projects                  []ResumeProject           `json:"projects,omitempty"`
	YearsOfExperience         int                       `json:"years_of_experience"`
	Certifications            []string                  `json:"certifications,omitempty"`
}

type ProgressPoint struct {
	Date                 time.Time `json:"date"`
	ReadinessScore       float64   `json:"readiness_score"`
	CompletedSkillsCount int       `json:"completed_skills_count"`
}

// CareerAnalysis is one skill-gap assessment run for a user. The resume
// snapshot and the skill-gap entries are stored as JSONB documents; the
// derived scalars are plain columns so peers can be queried by career_goal.
type CareerAnalysis struct {
	ID     uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"index;not null;column:user_id" json:"userId"`
	User   *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`

	ResumeData       *ResumeData                  `gorm:"type:jsonb;serializer:json;column:resume_data" json:"resume_data,omitempty"`
	DocumentText     string                       `gorm:"column:document_text" json:"document_text,omitempty"`
	AdditionalSkills datatypes.JSONSlice[string]  `gorm:"column:additional_skills" json:"additional_skills"`
	CareerGoal       string                       `gorm:"index;column:career_goal" json:"career_goal"`

	CurrentSkills  datatypes.JSONSlice[string] `gorm:"column:current_skills" json:"current_skills"`
	RequiredSkills datatypes.JSONSlice[string] `gorm:"column:required_skills" json:"required_skills"`
	MatchingSkills datatypes.JSONSlice[string] `gorm:"column:matching_skills" json:"matching_skills"`

	SkillGap        datatypes.JSONSlice[SkillGapEntry] `gorm:"column:skill_gap" json:"skill_gap"`
	GapPercentage   *float64                           `gorm:"column:gap_percentage" json:"gap_percentage,omitempty"`
	Recommendations string                             `gorm:"column:recommendations" json:"recommendations,omitempty"`

	ReadinessScore       *float64                           `gorm:"column:readiness_score" json:"readiness_score,omitempty"`
	CompletedSkillsCount int                                `gorm:"not null;default:0;column:completed_skills_count" json:"completed_skills_count"`
	TotalLearningHours   float64                            `gorm:"not null;default:0;column:total_learning_hours" json:"total_learning_hours"`
	ProgressHistory      datatypes.JSONSlice[ProgressPoint] `gorm:"column:progress_history" json:"progress_history"`

	PredictCompleted  bool `gorm:"not null;default:false;column:predict_completed" json:"predict_completed"`
	AnalysisCompleted bool `gorm:"not null;default:false;column:analysis_completed" json:"analysis_completed"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updatedAt"`
}

func (CareerAnalysis) TableName() string {
	return "career_analysis"
}

// Readiness resolves the canonical readiness value: the stored score wins,
// otherwise the complement of the gap percentage, otherwise zero.
func (a *CareerAnalysis) Readiness() float64 {
	if a.ReadinessScore != nil {
		return *a.ReadinessScore
	}
	if a.GapPercentage != nil {
		return 100 - *a.GapPercentage
	}
	return 0
}

// RecountCompletedSkills refreshes the cached completed count from the
// entries themselves. Always a full recount, never an increment.
func (a *CareerAnalysis) RecountCompletedSkills() int {
	count := 0
	for _, entry := range a.SkillGap {
		if entry.Completed {
			count++
		}
	}
	a.CompletedSkillsCount = count
	return count
}
