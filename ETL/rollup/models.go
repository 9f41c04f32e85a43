package rollup

import (
	"fmt"
	"strings"

	"github.com/LilVoxy/usaid_awards/ETL/models"
)

// Category - категория сводки и ее ключевые подстроки
type Category struct {
	Name    string   `yaml:"name"`
	Aliases []string `yaml:"aliases"`
}

// Rollup - набор категорий и поле записи, по которому ведется поиск
type Rollup struct {
	Name       string       `yaml:"name"`
	Field      models.Field `yaml:"field"`
	Categories []Category   `yaml:"categories"`
}

// Tags - результат классификации: Tags[запись][категория]
type Tags [][]bool

// Matches сообщает, отнесена ли запись к категории
func (t Tags) Matches(record, category int) bool {
	return t[record][category]
}

// Validate проверяет конфигурацию сводки
func (r Rollup) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("%w: пустое название сводки", models.ErrInvalidRollup)
	}
	if !r.Field.Known() || r.Field.Kind() != models.KindText {
		return fmt.Errorf("%w: сводка %s: поле %q не является текстовым полем записи", models.ErrInvalidRollup, r.Name, r.Field)
	}
	if len(r.Categories) == 0 {
		return fmt.Errorf("%w: сводка %s: нет категорий", models.ErrInvalidRollup, r.Name)
	}

	seen := make(map[string]bool, len(r.Categories))
	for _, category := range r.Categories {
		if strings.TrimSpace(category.Name) == "" {
			return fmt.Errorf("%w: сводка %s: категория без названия", models.ErrInvalidRollup, r.Name)
		}
		if seen[category.Name] {
			return fmt.Errorf("%w: сводка %s: категория %q объявлена дважды", models.ErrInvalidRollup, r.Name, category.Name)
		}
		seen[category.Name] = true

		if len(category.Aliases) == 0 {
			return fmt.Errorf("%w: сводка %s: у категории %q нет ключевых слов", models.ErrInvalidRollup, r.Name, category.Name)
		}
		for _, alias := range category.Aliases {
			if alias == "" {
				return fmt.Errorf("%w: сводка %s: пустое ключевое слово в категории %q", models.ErrInvalidRollup, r.Name, category.Name)
			}
		}
	}
	return nil
}

// Normalized возвращает копию сводки с ключевыми словами в нижнем регистре
func (r Rollup) Normalized() Rollup {
	out := Rollup{
		Name:       r.Name,
		Field:      r.Field,
		Categories: make([]Category, len(r.Categories)),
	}
	for i, category := range r.Categories {
		aliases := make([]string, len(category.Aliases))
		for j, alias := range category.Aliases {
			aliases[j] = strings.ToLower(alias)
		}
		out.Categories[i] = Category{Name: category.Name, Aliases: aliases}
	}
	return out
}

// CategoryNames возвращает названия категорий в порядке объявления
func (r Rollup) CategoryNames() []string {
	names := make([]string, len(r.Categories))
	for i, category := range r.Categories {
		names[i] = category.Name
	}
	return names
}
