package configs

import (
	"time"

	"backend/entity"
	"backend/repository"
)

// SeedReports inserts a handful of sample reports when the table is empty,
// so a fresh dashboard has something to triage.
func SeedReports() error {
	count, err := repository.NewReportRepository(db).Count()
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	samples := []entity.CrimeReport{
		{
			ID:            "CR001",
			Title:         "Armed robbery at a convenience store",
			Description:   "Two armed men robbed the store on the corner of Broad Street.",
			Location:      "Lagos, Nigeria",
			CrimeType:     "Armed Robbery",
			Timestamp:     time.Date(2023, 5, 15, 9, 30, 0, 0, time.UTC),
			CrimeDateTime: time.Date(2023, 5, 15, 2, 15, 0, 0, time.UTC),
			Status:        entity.StatusPending,
			Coordinates:   entity.Coordinates{Lat: 6.5244, Lng: 3.3792},
		},
		{
			ID:            "CR002",
			Title:         "Physical assault in a public park",
			Description:   "A man was assaulted near the east gate of Millennium Park.",
			Location:      "Abuja, Nigeria",
			CrimeType:     "Assault",
			Timestamp:     time.Date(2023, 5, 20, 14, 0, 0, 0, time.UTC),
			CrimeDateTime: time.Date(2023, 5, 20, 13, 20, 0, 0, time.UTC),
			Status:        entity.StatusInvestigating,
			Coordinates:   entity.Coordinates{Lat: 9.0765, Lng: 7.3986},
		},
		{
			ID:            "CR003",
			Title:         "Online banking fraud",
			Description:   "Funds transferred out of a savings account through a phishing site.",
			Location:      "Port Harcourt, Nigeria",
			CrimeType:     "Fraud",
			Timestamp:     time.Date(2023, 6, 1, 11, 45, 0, 0, time.UTC),
			CrimeDateTime: time.Date(2023, 5, 30, 23, 0, 0, 0, time.UTC),
			Status:        entity.StatusResolved,
			Coordinates:   entity.Coordinates{Lat: 4.8156, Lng: 7.0498},
		},
		{
			ID:            "CR004",
			Title:         "Attempted kidnapping near a school",
			Description:   "A group attempted to abduct a student outside the gates.",
			Location:      "Kano, Nigeria",
			CrimeType:     "Kidnapping",
			Timestamp:     time.Date(2023, 6, 10, 8, 10, 0, 0, time.UTC),
			CrimeDateTime: time.Date(2023, 6, 10, 7, 45, 0, 0, time.UTC),
			Status:        entity.StatusClosed,
			Coordinates:   entity.Coordinates{Lat: 12.0022, Lng: 8.5920},
		},
		{
			ID:            "CR005",
			Title:         "Shoplifting at a mall",
			Description:   "Goods taken from a supermarket shelf during opening hours.",
			Location:      "Enugu, Nigeria",
			CrimeType:     "Theft",
			Timestamp:     time.Date(2023, 6, 15, 16, 30, 0, 0, time.UTC),
			CrimeDateTime: time.Date(2023, 6, 15, 16, 0, 0, 0, time.UTC),
			Status:        entity.StatusPending,
			Coordinates:   entity.Coordinates{Lat: 6.4698, Lng: 7.5804},
		},
	}
	return db.Create(&samples).Error
}
