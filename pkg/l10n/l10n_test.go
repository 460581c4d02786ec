package l10n

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestLoadCatalog(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expectError string
		expectLang  string
	}{
		{
			name: "valid catalog",
			input: `language: ru
messages:
  "Goodbye!": "До свидания!"
patterns:
  'exit': 'выход'
`,
			expectLang: "ru",
		},
		{
			name:        "missing language",
			input:       "messages: {}\n",
			expectError: "catalog language is required",
		},
		{
			name:        "bad language",
			input:       "language: '!!'\n",
			expectError: "catalog language",
		},
		{
			name:        "unknown field",
			input:       "language: en\nstrings: {}\n",
			expectError: "failed to decode catalog",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := LoadCatalog(strings.NewReader(tt.input))
			if tt.expectError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectError)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectLang, c.Language)
		})
	}
}

func TestBuiltinCatalogs(t *testing.T) {
	cats, err := BuiltinCatalogs()
	require.NoError(t, err)

	langs := map[string]bool{}
	for _, c := range cats {
		langs[c.Language] = true
	}
	assert.True(t, langs["en"])
	assert.True(t, langs["ru"])
}

func TestBundle_Translator(t *testing.T) {
	b, err := DefaultBundle()
	require.NoError(t, err)

	tests := []struct {
		name         string
		locale       string
		expectLang   language.Tag
		expectText   string
		expectFormat string
		expectExit   string
	}{
		{
			name:         "empty locale is source language",
			locale:       "",
			expectLang:   language.English,
			expectText:   "Goodbye!",
			expectFormat: "Welcome, player James to the map Dungeon!",
			expectExit:   `(exit|quit)(\s+game)?`,
		},
		{
			name:         "posix russian locale",
			locale:       "ru_RU.UTF-8",
			expectLang:   language.Russian,
			expectText:   "До свидания!",
			expectFormat: "Добро пожаловать, игрок James, на карту Dungeon!",
			expectExit:   `(выход|выйти|конец)(\s+игры)?`,
		},
		{
			name:         "unsupported language falls back to english",
			locale:       "ja_JP",
			expectLang:   language.English,
			expectText:   "Goodbye!",
			expectFormat: "Welcome, player James to the map Dungeon!",
			expectExit:   `(exit|quit)(\s+game)?`,
		},
		{
			name:         "english region",
			locale:       "en_US",
			expectLang:   language.English,
			expectText:   "Goodbye!",
			expectFormat: "Welcome, player James to the map Dungeon!",
			expectExit:   `(exit|quit)(\s+game)?`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, err := b.Translator(tt.locale)
			require.NoError(t, err)
			assert.Equal(t, tt.expectLang, tr.Language())
			assert.Equal(t, tt.expectText, tr.Text("Goodbye!"))
			assert.Equal(t, tt.expectFormat, tr.Text("Welcome, player %s to the map %s!", "James", "Dungeon"))
			assert.Equal(t, tt.expectExit, tr.Pattern(`(exit|quit)(\s+game)?`))
		})
	}
}

func TestBundle_InvalidLocale(t *testing.T) {
	b, err := DefaultBundle()
	require.NoError(t, err)

	_, err = b.Translator("!!")
	assert.Error(t, err)
}

func TestBundle_LaterCatalogsOverride(t *testing.T) {
	base := &Catalog{Language: "ru", Messages: map[string]string{"Goodbye!": "Пока!"}}
	override := &Catalog{
		Language: "ru",
		Messages: map[string]string{"Goodbye!": "Прощайте!"},
		Patterns: map[string]string{"flee": "бежать"},
	}

	b, err := NewBundle(base, override)
	require.NoError(t, err)
	assert.Equal(t, []language.Tag{language.English, language.Russian}, b.Languages())

	tr, err := b.Translator("ru")
	require.NoError(t, err)
	assert.Equal(t, "Прощайте!", tr.Text("Goodbye!"))
	assert.Equal(t, "бежать", tr.Pattern("flee"))
	assert.Equal(t, "untranslated", tr.Pattern("untranslated"))
}

func TestLoadCatalogs_SkipsOtherFiles(t *testing.T) {
	fsys := fstest.MapFS{
		"l10n/ru.yaml":    {Data: []byte("language: ru\n")},
		"l10n/README.md":  {Data: []byte("not a catalog")},
		"l10n/sub/x.yaml": {Data: []byte("language: de\n")},
	}
	cats, err := LoadCatalogs(fsys, "l10n")
	require.NoError(t, err)
	require.Len(t, cats, 1)
	assert.Equal(t, "ru", cats[0].Language)
}

func TestSource(t *testing.T) {
	tr := Source()
	assert.Equal(t, "I don't understand that.", tr.Text("I don't understand that."))
	assert.Equal(t, "left", tr.Pattern("left"))
}

func TestParseLocale(t *testing.T) {
	tests := []struct {
		locale   string
		expected language.Tag
	}{
		{"ru_RU.UTF-8", language.MustParse("ru-RU")},
		{"en-US", language.AmericanEnglish},
		{"de_DE@euro", language.MustParse("de-DE")},
		{"C", language.English},
	}
	for _, tt := range tests {
		t.Run(tt.locale, func(t *testing.T) {
			tag, err := ParseLocale(tt.locale)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, tag)
		})
	}
}

func TestEncodingWriter(t *testing.T) {
	var buf bytes.Buffer
	w, err := EncodingWriter(&buf, "windows-1251")
	require.NoError(t, err)

	_, err = io.WriteString(w, "Привет")
	require.NoError(t, err)
	assert.Equal(t, []byte{0xCF, 0xF0, 0xE8, 0xE2, 0xE5, 0xF2}, buf.Bytes())

	r, err := EncodingReader(bytes.NewReader(buf.Bytes()), "windows-1251")
	require.NoError(t, err)
	back, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "Привет", string(back))
}

func TestEncodingWriter_UTF8Passthrough(t *testing.T) {
	var buf bytes.Buffer
	for _, name := range []string{"", "UTF-8", "utf8"} {
		w, err := EncodingWriter(&buf, name)
		require.NoError(t, err)
		assert.Same(t, &buf, w)
	}

	_, err := EncodingWriter(&buf, "no-such-encoding")
	assert.Error(t, err)
}
