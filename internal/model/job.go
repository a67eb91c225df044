package model

import "time"

// ProgressHaventApplied is the fixed progress label every persisted job
// carries at insertion time (P5).
const ProgressHaventApplied = "Haven't Applied"

// Job is a persisted job listing row in the `core` schema.
type Job struct {
	JobID        string     `json:"job_id" gorm:"column:job_id;primaryKey;size:64"`
	Title        string     `json:"title" gorm:"column:title;not null;size:255;index:idx_jobs_title_company"`
	CompanyName  string     `json:"company_name" gorm:"column:company_name;not null;size:255;index:idx_jobs_title_company"`
	Location     string     `json:"location" gorm:"column:location;size:255"`
	JobURL       string     `json:"job_url" gorm:"column:job_url;unique;size:1024"`
	DatePosted   *time.Time `json:"date_posted,omitempty" gorm:"column:date_posted;type:date"`
	DateScraped  time.Time  `json:"date_scraped" gorm:"column:date_scraped"`
	Progress     string     `json:"progress" gorm:"column:progress;size:64"`
	Skills       []JobSkill `json:"skills,omitempty" gorm:"foreignKey:JobID;references:JobID;constraint:OnDelete:CASCADE"`
}

// TableName pins the model to the `core` schema per SPEC_FULL.md §3.
func (Job) TableName() string {
	return "core.jobs"
}

// JobSkill is one extracted skill attached to a persisted job.
type JobSkill struct {
	JobSkillID uint   `json:"job_skill_id" gorm:"column:job_skill_id;primaryKey;autoIncrement"`
	JobID      string `json:"job_id" gorm:"column:job_id;not null;size:64;index"`
	Skill      string `json:"skill" gorm:"column:skill;size:255"`
}

// TableName pins the model to the `core` schema per SPEC_FULL.md §3.
func (JobSkill) TableName() string {
	return "core.job_skills"
}
