package dtos

import (
	"github.com/CardLedger/CardLedger-Backend/src/models"
)

var submissionFields = []string{"submissionNumber", "submissionCompany", "submissionDate", "returnDate", "breakEvenDate"}

// ParseSubmissionCreate reads a submission summary and the ids of the items sent with it.
func ParseSubmissionCreate(body []byte) (*models.SubmissionModel, []int, error) {
	f, err := newForm(body, append([]string{"itemIds"}, submissionFields...))
	if err != nil {
		return nil, nil, err
	}
	f.require("submissionNumber", "submissionCompany", "submissionDate", "itemIds")

	number := field(f, "submissionNumber", decodeInt)
	update := parseSubmission(f)
	itemIDs := field(f, "itemIds", decodeIDs)
	if f.err != nil {
		return nil, nil, f.err
	}

	submission := &models.SubmissionModel{SubmissionNumber: number.OrElse(0)}
	update.ApplyTo(submission)
	return submission, itemIDs.OrElse(nil), nil
}

// ParseSubmissionUpdate reads a submission edit. The submission number cannot change.
func ParseSubmissionUpdate(body []byte) (models.SubmissionUpdate, error) {
	f, err := newForm(body, submissionFields)
	if err != nil {
		return models.SubmissionUpdate{}, err
	}
	f.reject("submissionNumber")
	update := parseSubmission(f)
	if f.err != nil {
		return models.SubmissionUpdate{}, f.err
	}
	return update, nil
}

func parseSubmission(f *form) models.SubmissionUpdate {
	return models.SubmissionUpdate{
		SubmissionCompany: field(f, "submissionCompany", decodeEnum(models.ParseGradingCompany)),
		SubmissionDate:    field(f, "submissionDate", decodeDate),
		ReturnDate:        nullable(f, "returnDate", decodeDate),
		BreakEvenDate:     nullable(f, "breakEvenDate", decodeDate),
	}
}

// ParseGradingRecordUpdate reads a grading outcome. The item and submission of a record
// cannot change.
func ParseGradingRecordUpdate(body []byte) (models.GradingRecordUpdate, error) {
	f, err := newForm(body, []string{"itemId", "submissionNumber", "gradingFee", "grade", "cert", "isCracked"})
	if err != nil {
		return models.GradingRecordUpdate{}, err
	}
	f.reject("itemId", "submissionNumber")
	update := models.GradingRecordUpdate{
		GradingFee: nullable(f, "gradingFee", decodeInt),
		Grade:      nullable(f, "grade", decodeFloat),
		Cert:       nullable(f, "cert", decodeInt),
		IsCracked:  field(f, "isCracked", decodeBool),
	}
	if f.err != nil {
		return models.GradingRecordUpdate{}, f.err
	}
	return update, nil
}
