package validators

import (
	"fmt"

	"github.com/CardLedger/CardLedger-Backend/src/models"
	"github.com/samber/lo"
)

const (
	RuleSubmissionNumber = "positive_submission_number"
	RuleSubmissionDates  = "return_date_not_before_submission_date"
	RuleSubmissionItems  = "distinct_submission_items"
)

// ValidateSubmission checks the submission summary fields.
func ValidateSubmission(submission *models.SubmissionModel) error {
	e := &ValidationError{}

	if submission.SubmissionNumber < 1 {
		e.add(RuleSubmissionNumber, fmt.Sprintf("Submission number must be at least 1 (got %d)",
			submission.SubmissionNumber), "submission_number")
	}
	if !submission.SubmissionCompany.IsValid() {
		e.add(RuleEnumRange, fmt.Sprintf("Field submission_company has undefined value %s",
			submission.SubmissionCompany), "submission_company")
	}
	if submission.ReturnDate != nil && submission.ReturnDate.Before(submission.SubmissionDate) {
		e.add(RuleSubmissionDates, fmt.Sprintf("Return date cannot be before submission date (got return date: %s, submission date: %s)",
			formatDate(*submission.ReturnDate), formatDate(submission.SubmissionDate)), "return_date", "submission_date")
	}
	return e.err()
}

// ValidateSubmissionItems requires a non-empty list of distinct item ids.
func ValidateSubmissionItems(itemIDs []int) error {
	if len(itemIDs) == 0 {
		return NewValidationError(RuleSubmissionItems, "A submission requires at least one item", "item_ids")
	}
	if dup := lo.FindDuplicates(itemIDs); len(dup) > 0 {
		return NewValidationError(RuleSubmissionItems, fmt.Sprintf("Items can only be submitted once per submission (repeated: %v)", dup), "item_ids")
	}
	return nil
}
