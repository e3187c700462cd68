package models

import "time"

type SubmissionModel struct {
	SubmissionNumber  int                  `json:"submissionNumber" gorm:"primaryKey;autoIncrement:false"`
	SubmissionCompany GradingCompany       `json:"submissionCompany" gorm:"type:int;not null"`
	SubmissionDate    time.Time            `json:"submissionDate" gorm:"type:date;not null"`
	ReturnDate        *time.Time           `json:"returnDate" gorm:"type:date"`
	BreakEvenDate     *time.Time           `json:"breakEvenDate" gorm:"type:date"`
	GradingRecords    []GradingRecordModel `json:"gradingRecords,omitempty" gorm:"foreignKey:SubmissionNumber;references:SubmissionNumber;constraint:OnDelete:CASCADE"`
}

func (SubmissionModel) TableName() string {
	return "submissions"
}
