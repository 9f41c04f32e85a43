package config

import (
	"fmt"
	"os"

	"github.com/LilVoxy/usaid_awards/ETL/models"
	"github.com/LilVoxy/usaid_awards/ETL/rollup"
	"gopkg.in/yaml.v3"
)

// CategoriesFile - содержимое файла с наборами категорий.
// Категории задаются списком, порядок объявления сохраняется в выводе.
type CategoriesFile struct {
	Sector       rollup.Rollup `yaml:"sector"`
	Organization rollup.Rollup `yaml:"organization"`
}

// DefaultSectorRollup - отраслевая сводка по описанию контракта
func DefaultSectorRollup() rollup.Rollup {
	return rollup.Rollup{
		Name:  models.RollupSector,
		Field: models.FieldContract,
		Categories: []rollup.Category{
			{Name: "HIV/AIDS", Aliases: []string{"hiv", "aids", "pepfar", "antiretroviral"}},
			{Name: "Tuberculosis", Aliases: []string{"tb", "tuberculosis"}},
			{Name: "Malaria", Aliases: []string{"malaria", "bednet", "pmi"}},
			{Name: "Family Planning", Aliases: []string{"family planning", "reproductive", "contracepti"}},
			{Name: "Maternal & Child Health", Aliases: []string{"maternal", "child health", "newborn", "immuniz", "vaccin"}},
			{Name: "Nutrition", Aliases: []string{"nutrition", "food security", "feed the future"}},
			{Name: "WASH", Aliases: []string{"water", "sanitation", "hygiene", "wash"}},
			{Name: "Global Health Security", Aliases: []string{"ebola", "covid", "pandemic", "outbreak", "health security"}},
			{Name: "Agriculture", Aliases: []string{"agricultur", "farm", "crop", "livestock"}},
			{Name: "Education", Aliases: []string{"education", "school", "learning", "literacy"}},
			{Name: "Democracy & Governance", Aliases: []string{"democra", "governance", "election", "civil society", "rule of law"}},
			{Name: "Humanitarian Assistance", Aliases: []string{"humanitarian", "emergency", "disaster", "refugee"}},
			{Name: "Economic Growth", Aliases: []string{"economic", "trade", "private sector", "enterprise"}},
			{Name: "Environment & Energy", Aliases: []string{"climate", "environment", "energy", "biodiversity"}},
		},
	}
}

// DefaultOrganizationRollup - сводка по получателю (поле vendor)
func DefaultOrganizationRollup() rollup.Rollup {
	return rollup.Rollup{
		Name:  models.RollupOrganization,
		Field: models.FieldVendor,
		Categories: []rollup.Category{
			{Name: "Chemonics", Aliases: []string{"chemonics"}},
			{Name: "DAI", Aliases: []string{"dai global", "development alternatives"}},
			{Name: "FHI 360", Aliases: []string{"fhi 360", "family health international"}},
			{Name: "Abt Associates", Aliases: []string{"abt"}},
			{Name: "JSI", Aliases: []string{"john snow", "jsi"}},
			{Name: "Palladium", Aliases: []string{"palladium"}},
			{Name: "Tetra Tech", Aliases: []string{"tetra tech"}},
			{Name: "RTI International", Aliases: []string{"research triangle", "rti international"}},
			{Name: "PSI", Aliases: []string{"population services"}},
			{Name: "MSH", Aliases: []string{"management sciences for health"}},
			{Name: "Jhpiego", Aliases: []string{"jhpiego"}},
			{Name: "Save the Children", Aliases: []string{"save the children"}},
			{Name: "UN Agencies", Aliases: []string{"unicef", "world food programme", "undp", "unfpa", "who"}},
		},
	}
}

// LoadCategories читает наборы категорий из YAML-файла.
// Пустой путь - встроенные наборы. Отсутствующая в файле сводка тоже
// берется из встроенных наборов.
func LoadCategories(path string) (sector rollup.Rollup, organization rollup.Rollup, err error) {
	sector, organization = DefaultSectorRollup(), DefaultOrganizationRollup()
	if path == "" {
		return sector, organization, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return rollup.Rollup{}, rollup.Rollup{}, fmt.Errorf("ошибка чтения файла категорий %s: %w", path, err)
	}

	var file CategoriesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return rollup.Rollup{}, rollup.Rollup{}, fmt.Errorf("ошибка разбора файла категорий %s: %w", path, err)
	}

	if len(file.Sector.Categories) > 0 {
		sector = withDefaults(file.Sector, models.RollupSector, models.FieldContract)
	}
	if len(file.Organization.Categories) > 0 {
		organization = withDefaults(file.Organization, models.RollupOrganization, models.FieldVendor)
	}

	for _, r := range []rollup.Rollup{sector, organization} {
		if err := r.Validate(); err != nil {
			return rollup.Rollup{}, rollup.Rollup{}, fmt.Errorf("файл категорий %s: %w", path, err)
		}
	}

	return sector.Normalized(), organization.Normalized(), nil
}

func withDefaults(r rollup.Rollup, name string, field models.Field) rollup.Rollup {
	if r.Name == "" {
		r.Name = name
	}
	if r.Field == "" {
		r.Field = field
	}
	return r
}
