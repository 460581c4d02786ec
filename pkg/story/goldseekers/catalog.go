package goldseekers

import (
	"embed"

	"github.com/jwebster45206/dungeon/pkg/l10n"
)

//go:embed catalogs/*.yaml
var catalogFS embed.FS

// Catalogs returns the story's translations, to be bundled after the
// engine's own.
func Catalogs() ([]*l10n.Catalog, error) {
	return l10n.LoadCatalogs(catalogFS, "catalogs")
}

// Bundle is the engine's builtin catalogs plus the story's.
func Bundle() (*l10n.Bundle, error) {
	cats, err := Catalogs()
	if err != nil {
		return nil, err
	}
	return l10n.DefaultBundle(cats...)
}
