package controllers

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/CardLedger/CardLedger-Backend/src/dtos"
	"github.com/CardLedger/CardLedger-Backend/src/models"
	"github.com/CardLedger/CardLedger-Backend/src/services"
	"github.com/samber/lo"
)

var pagingParams = []string{"skip", "limit"}

// searchQuery reads search filters from query parameters and keeps the first error.
type searchQuery struct {
	values url.Values
	err    error
}

func queryParam[T any](q *searchQuery, key string, parse func(string) (T, error)) *T {
	raw := strings.TrimSpace(q.values.Get(key))
	if raw == "" {
		return nil
	}
	v, err := parse(raw)
	if err != nil {
		if q.err == nil {
			q.err = fieldError(key, err)
		}
		return nil
	}
	return &v
}

func queryList[T any](q *searchQuery, key string, parse func(string) ([]T, error)) []T {
	if p := queryParam(q, key, parse); p != nil {
		return *p
	}
	return nil
}

func fieldError(key string, err error) error {
	if _, ok := err.(*models.InvalidEnumValueError); ok {
		return err
	}
	return &dtos.FieldError{Field: key, Message: err.Error()}
}

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}

func parseDate(s string) (time.Time, error) {
	return time.Parse(dtos.DateLayout, s)
}

func parseIDList(s string) ([]int, error) {
	var ids []int
	for _, token := range strings.Split(s, ",") {
		if token = strings.TrimSpace(token); token == "" {
			continue
		}
		id, err := strconv.Atoi(token)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

var searchParams = []string{
	"name", "setName", "details", "category", "language", "status", "intent", "listType", "objectVariant",
	"purchaseGradingCompany", "crackedFromPurchase", "groupDiscount", "auditTarget", "qualifiers",
	"gradingCompany", "grade", "cert", "submissionNumbers", "crackedFrom",
	"purchaseDateMin", "purchaseDateMax", "purchasePriceMin", "purchasePriceMax",
	"listDateMin", "listDateMax", "saleTotalMin", "saleTotalMax", "saleDateMin", "saleDateMax",
	"totalCostMin", "totalCostMax", "returnJpyMin", "returnJpyMax", "netJpyMin", "netJpyMax",
	"netPercentMin", "netPercentMax",
}

// parseItemSearch turns query parameters into an item search. Blank parameters are ignored.
func parseItemSearch(values url.Values) (services.ItemSearch, error) {
	for key := range values {
		if !lo.Contains(searchParams, key) && !lo.Contains(pagingParams, key) {
			return services.ItemSearch{}, &dtos.FieldError{Field: key, Message: "unknown search parameter"}
		}
	}

	q := &searchQuery{values: values}
	text := func(s string) (string, error) { return s, nil }

	search := services.ItemSearch{
		Name:    queryParam(q, "name", text),
		SetName: queryParam(q, "setName", text),
		Details: queryParam(q, "details", text),

		Category:               queryParam(q, "category", models.ParseCategory),
		Language:               queryParam(q, "language", models.ParseLanguage),
		Status:                 queryParam(q, "status", models.ParseStatus),
		Intent:                 queryParam(q, "intent", models.ParseIntent),
		ListType:               queryParam(q, "listType", models.ParseListingType),
		ObjectVariant:          queryParam(q, "objectVariant", models.ParseObjectVariant),
		PurchaseGradingCompany: queryParam(q, "purchaseGradingCompany", models.ParseGradingCompany),

		CrackedFromPurchase: queryParam(q, "crackedFromPurchase", strconv.ParseBool),
		GroupDiscount:       queryParam(q, "groupDiscount", strconv.ParseBool),
		AuditTarget:         queryParam(q, "auditTarget", strconv.ParseBool),

		Qualifiers: queryList(q, "qualifiers", models.ParseQualifiers),

		GradingCompany: queryParam(q, "gradingCompany", models.ParseGradingCompany),
		Grade:          queryParam(q, "grade", parseFloat),
		Cert:           queryParam(q, "cert", strconv.Atoi),

		SubmissionNumbers: queryList(q, "submissionNumbers", parseIDList),
		CrackedFrom:       queryParam(q, "crackedFrom", strconv.Atoi),

		PurchaseDateMin:  queryParam(q, "purchaseDateMin", parseDate),
		PurchaseDateMax:  queryParam(q, "purchaseDateMax", parseDate),
		PurchasePriceMin: queryParam(q, "purchasePriceMin", strconv.Atoi),
		PurchasePriceMax: queryParam(q, "purchasePriceMax", strconv.Atoi),
		ListDateMin:      queryParam(q, "listDateMin", parseDate),
		ListDateMax:      queryParam(q, "listDateMax", parseDate),
		SaleTotalMin:     queryParam(q, "saleTotalMin", parseFloat),
		SaleTotalMax:     queryParam(q, "saleTotalMax", parseFloat),
		SaleDateMin:      queryParam(q, "saleDateMin", parseDate),
		SaleDateMax:      queryParam(q, "saleDateMax", parseDate),
		TotalCostMin:     queryParam(q, "totalCostMin", strconv.Atoi),
		TotalCostMax:     queryParam(q, "totalCostMax", strconv.Atoi),
		ReturnJPYMin:     queryParam(q, "returnJpyMin", strconv.Atoi),
		ReturnJPYMax:     queryParam(q, "returnJpyMax", strconv.Atoi),
		NetJPYMin:        queryParam(q, "netJpyMin", strconv.Atoi),
		NetJPYMax:        queryParam(q, "netJpyMax", strconv.Atoi),
		NetPercentMin:    queryParam(q, "netPercentMin", parseFloat),
		NetPercentMax:    queryParam(q, "netPercentMax", parseFloat),
	}
	if q.err != nil {
		return services.ItemSearch{}, q.err
	}
	return search, nil
}
