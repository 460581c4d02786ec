package main

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"sort"
	"strings"

	"github.com/jwebster45206/dungeon/pkg/l10n"
	"github.com/jwebster45206/dungeon/pkg/story/goldseekers"
)

func main() {
	validator := &CatalogValidator{}

	if len(os.Args) < 2 {
		if err := validator.validateBuiltin(); err != nil {
			fmt.Fprintf(os.Stderr, "Validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Builtin catalogs are valid!")
		return
	}

	failed := false
	for _, filename := range os.Args[1:] {
		if err := validator.validateFile(filename); err != nil {
			fmt.Fprintf(os.Stderr, "Validation failed: %v\n", err)
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
	fmt.Println("Catalog files are valid!")
}

// CatalogValidator checks translation catalogs for mistakes the loader
// cannot catch: patterns that do not compile and messages whose format
// verbs do not line up with the source text.
type CatalogValidator struct {
	errors []string
}

func (v *CatalogValidator) validateBuiltin() error {
	engine, err := l10n.BuiltinCatalogs()
	if err != nil {
		return err
	}
	story, err := goldseekers.Catalogs()
	if err != nil {
		return err
	}

	v.errors = nil
	for _, c := range append(engine, story...) {
		v.validateCatalog(c)
	}
	if len(v.errors) > 0 {
		return fmt.Errorf("validation errors in builtin catalogs:\n%s", strings.Join(v.errors, "\n"))
	}
	return nil
}

func (v *CatalogValidator) validateFile(filename string) error {
	fmt.Printf("Validating %s...\n", filename)

	baseName := filepath.Base(filename)
	if !strings.HasSuffix(baseName, ".yaml") {
		return fmt.Errorf("catalog file must have .yaml extension: %s", baseName)
	}
	if !isValidCatalogFilename(strings.TrimSuffix(baseName, ".yaml")) {
		return fmt.Errorf("catalog filename '%s' must be a lowercase language code (e.g., ru.yaml, pt_br.yaml)", baseName)
	}

	f, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	defer func() {
		_ = f.Close()
	}()

	c, err := l10n.LoadCatalog(f)
	if err != nil {
		return fmt.Errorf("file %s: %w", filename, err)
	}

	v.errors = nil
	v.validateCatalog(c)

	if len(v.errors) > 0 {
		return fmt.Errorf("validation errors in %s:\n%s", filename, strings.Join(v.errors, "\n"))
	}
	return nil
}

func (v *CatalogValidator) validateCatalog(c *l10n.Catalog) {
	for _, key := range sortedKeys(c.Messages) {
		v.validateMessage(c.Language, key, c.Messages[key])
	}
	for _, key := range sortedKeys(c.Patterns) {
		v.validatePattern(c.Language, key, c.Patterns[key])
	}
}

func (v *CatalogValidator) validateMessage(lang, key, msg string) {
	if strings.TrimSpace(msg) == "" {
		v.addError(fmt.Sprintf("[%s] message %q has an empty translation", lang, key))
		return
	}
	if want, got := formatVerbs(key), formatVerbs(msg); !slices.Equal(want, got) {
		v.addError(fmt.Sprintf("[%s] message %q uses verbs %v, translation uses %v", lang, key, want, got))
	}
}

func (v *CatalogValidator) validatePattern(lang, key, pattern string) {
	src, err := regexp.Compile(key)
	if err != nil {
		v.addError(fmt.Sprintf("[%s] pattern key %q does not compile: %v", lang, key, err))
		return
	}
	dst, err := regexp.Compile(pattern)
	if err != nil {
		v.addError(fmt.Sprintf("[%s] pattern %q for %q does not compile: %v", lang, pattern, key, err))
		return
	}
	if want, got := groupNames(src), groupNames(dst); !slices.Equal(want, got) {
		v.addError(fmt.Sprintf("[%s] pattern %q for %q has named groups %v, want %v", lang, pattern, key, got, want))
	}
}

func (v *CatalogValidator) addError(msg string) {
	v.errors = append(v.errors, "  - "+msg)
}

var (
	validFilenameRegex = regexp.MustCompile(`^[a-z]{2,3}(_[a-z0-9]+)*$`)
	formatVerbRegex    = regexp.MustCompile(`%[-+# 0]*[0-9]*(?:\.[0-9]+)?[a-zA-Z]`)
)

func isValidCatalogFilename(name string) bool {
	return validFilenameRegex.MatchString(name)
}

// formatVerbs lists the fmt verbs of s in order, ignoring "%%".
func formatVerbs(s string) []string {
	return formatVerbRegex.FindAllString(strings.ReplaceAll(s, "%%", ""), -1)
}

func groupNames(re *regexp.Regexp) []string {
	var names []string
	for _, n := range re.SubexpNames() {
		if n != "" {
			names = append(names, n)
		}
	}
	sort.Strings(names)
	return names
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
