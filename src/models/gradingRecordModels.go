package models

type GradingRecordModel struct {
	ID               int              `json:"id" gorm:"primaryKey;autoIncrement"`
	ItemID           int              `json:"itemId" gorm:"column:item_id;not null;uniqueIndex:idx_grading_record_item_submission"`
	Item             *ItemModel       `json:"item,omitempty" gorm:"foreignKey:ItemID;references:ID"`
	SubmissionNumber int              `json:"submissionNumber" gorm:"column:submission_number;not null;uniqueIndex:idx_grading_record_item_submission"`
	Submission       *SubmissionModel `json:"submission,omitempty" gorm:"foreignKey:SubmissionNumber;references:SubmissionNumber;belongsTo"`
	GradingFee       *int             `json:"gradingFee"`
	Grade            *float64         `json:"grade"`
	Cert             *int             `json:"cert"`
	IsCracked        bool             `json:"isCracked" gorm:"type:boolean;not null;default:false"`
}

func (GradingRecordModel) TableName() string {
	return "grading_records"
}

// IsUngraded reports whether none of the grading outcome fields are set.
func (r *GradingRecordModel) IsUngraded() bool {
	return r.GradingFee == nil && r.Grade == nil && r.Cert == nil
}
