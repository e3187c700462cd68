package controllers

import (
	"net/url"
	"testing"
	"time"

	"github.com/CardLedger/CardLedger-Backend/src/dtos"
	"github.com/CardLedger/CardLedger-Backend/src/models"
	"github.com/CardLedger/CardLedger-Backend/src/services"
	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
)

func TestParseItemSearch(t *testing.T) {
	values := url.Values{
		"name":              {"Pika*"},
		"status":            {"listed"},
		"gradingCompany":    {"PSA"},
		"auditTarget":       {"false"},
		"qualifiers":        {"FIRST_EDITION, NON_HOLO"},
		"submissionNumbers": {"3,4"},
		"saleDateMin":       {"2024-02-01"},
		"netPercentMax":     {"12.5"},
		"details":           {"  "},
		"skip":              {"20"},
	}

	search, err := parseItemSearch(values)
	require.NoError(t, err)
	require.Equal(t, services.ItemSearch{
		Name:              lo.ToPtr("Pika*"),
		Status:            lo.ToPtr(models.StatusListed),
		GradingCompany:    lo.ToPtr(models.GradingCompanyPSA),
		AuditTarget:       lo.ToPtr(false),
		Qualifiers:        []models.Qualifier{models.QualifierFirstEdition, models.QualifierNonHolo},
		SubmissionNumbers: []int{3, 4},
		SaleDateMin:       lo.ToPtr(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)),
		NetPercentMax:     lo.ToPtr(12.5),
	}, search)
}

func TestParseItemSearchErrors(t *testing.T) {
	tests := []struct {
		name   string
		values url.Values
		want   string
	}{
		{"unknown parameter", url.Values{"colour": {"red"}}, "colour: unknown search parameter"},
		{"bad enum", url.Values{"language": {"ELVISH"}}, "Invalid Language: ELVISH"},
		{"bad integer", url.Values{"cert": {"12a"}}, "cert: "},
		{"bad date", url.Values{"listDateMax": {"02/01/2024"}}, "listDateMax: "},
		{"bad id list", url.Values{"submissionNumbers": {"1,x"}}, "submissionNumbers: "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseItemSearch(tt.values)
			require.ErrorContains(t, err, tt.want)
		})
	}

	_, err := parseItemSearch(url.Values{"cert": {"x"}})
	var fieldErr *dtos.FieldError
	require.ErrorAs(t, err, &fieldErr)
	require.Equal(t, "cert", fieldErr.Field)

	_, err = parseItemSearch(url.Values{"category": {"SLAB"}})
	var enumErr *models.InvalidEnumValueError
	require.ErrorAs(t, err, &enumErr)
}
