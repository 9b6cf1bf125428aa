package store

import "github.com/dcyoung23/balance-web/internal/models"

// Lookup tables are reference data seeded out-of-band; the application only
// reads them.

func ListTypes() ([]models.Type, error) {
	var types []models.Type
	if err := DB.Order("id").Find(&types).Error; err != nil {
		return nil, err
	}
	return types, nil
}

func ListFrequencies() ([]models.Frequency, error) {
	var frequencies []models.Frequency
	if err := DB.Order("id").Find(&frequencies).Error; err != nil {
		return nil, err
	}
	return frequencies, nil
}

func ListCodes() ([]models.Code, error) {
	var codes []models.Code
	if err := DB.Order("cd_group, cd").Find(&codes).Error; err != nil {
		return nil, err
	}
	return codes, nil
}
