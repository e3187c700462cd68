package seed

import (
	"log"
	"time"

	"github.com/CardLedger/CardLedger-Backend/src/models"
	"github.com/CardLedger/CardLedger-Backend/src/services"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func demoItems() []models.ItemModel {
	return []models.ItemModel{
		{
			Name: "Charizard", SetName: "Base Set", Category: models.CategoryCard, Language: models.LanguageJapanese,
			Qualifiers:   []models.Qualifier{models.QualifierFirstEdition},
			PurchaseDate: day(2024, 1, 10), PurchasePrice: 45000, ImportFee: 1200,
			Status: models.StatusStorage, Intent: models.IntentGrade,
		},
		{
			Name: "Blastoise", SetName: "Base Set", Category: models.CategoryCard, Language: models.LanguageJapanese,
			Qualifiers:   []models.Qualifier{models.QualifierFirstEdition},
			PurchaseDate: day(2024, 1, 10), PurchasePrice: 18000, ImportFee: 600,
			Status: models.StatusStorage, Intent: models.IntentGrade,
		},
		{
			Name: "Lugia", SetName: "Neo Genesis", Category: models.CategoryCard, Language: models.LanguageEnglish,
			Qualifiers:   []models.Qualifier{models.QualifierUnlimited},
			PurchaseDate: day(2024, 2, 3), PurchasePrice: 30000,
			Status: models.StatusListed, Intent: models.IntentSell,
			ListPrice: lo.ToPtr(320.0), ListType: models.ListingTypeFixed, ListDate: lo.ToPtr(day(2024, 2, 20)),
		},
		{
			Name: "Gengar", SetName: "Fossil", Category: models.CategoryCard, Language: models.LanguageEnglish,
			Qualifiers:   []models.Qualifier{models.QualifierFirstEdition, models.QualifierNonHolo},
			PurchaseDate: day(2024, 2, 3), PurchasePrice: 6000,
			Status: models.StatusClosed, Intent: models.IntentSell,
			ListType: models.ListingTypeAuction, ListDate: lo.ToPtr(day(2024, 2, 10)),
			SaleTotal: lo.ToPtr(75.0), SaleDate: lo.ToPtr(day(2024, 2, 17)),
			Shipping: lo.ToPtr(4.5), SaleFee: lo.ToPtr(9.9), UsdToJpyRate: lo.ToPtr(149.8),
		},
		{
			Name: "Eevee Heroes Booster Box", SetName: "Eevee Heroes", Category: models.CategoryBox, Language: models.LanguageJapanese,
			Qualifiers:   []models.Qualifier{},
			PurchaseDate: day(2024, 3, 1), PurchasePrice: 52000, ImportFee: 2500,
			Status: models.StatusVault, Intent: models.IntentKeep,
		},
	}
}

// Seed fills an empty inventory with demo items and one graded submission. A database that
// already holds items is left alone.
func Seed(items *services.ItemService, submissions *services.SubmissionService, records *services.GradingRecordService) {
	count, err := items.CountItems()
	if err != nil {
		log.Printf("Failed to count items: %v\n", err)
		return
	}
	if count > 0 {
		log.Println("Inventory already has items, skipping seed")
		return
	}

	var graders []int
	for _, item := range demoItems() {
		created, err := items.CreateItem(&item)
		if err != nil {
			log.Printf("Failed to create item %s: %v\n", item.Name, err)
			continue
		}
		log.Printf("Item '%s' created\n", created.Name)
		if created.Intent == models.IntentGrade {
			graders = append(graders, created.ID)
		}
	}
	if len(graders) == 0 {
		return
	}

	submission := &models.SubmissionModel{
		SubmissionNumber:  1,
		SubmissionCompany: models.GradingCompanyPSA,
		SubmissionDate:    day(2024, 3, 5),
	}
	created, err := submissions.CreateSubmission(submission, graders)
	if err != nil {
		log.Printf("Failed to create submission: %v\n", err)
		return
	}
	log.Printf("Submission %d created with %d items\n", created.SubmissionNumber, len(graders))

	// the first slab comes back graded, the rest stay out
	record := created.GradingRecords[0]
	_, err = records.EditGradingRecord(record.ID, models.GradingRecordUpdate{
		GradingFee: mo.Some(lo.ToPtr(3300)),
		Grade:      mo.Some(lo.ToPtr(9.0)),
		Cert:       mo.Some(lo.ToPtr(84512337)),
	})
	if err != nil {
		log.Printf("Failed to grade record %d: %v\n", record.ID, err)
		return
	}
	log.Println("Seed data created")
}
