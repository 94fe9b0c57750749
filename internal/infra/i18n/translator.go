package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"path"

	"gopkg.in/yaml.v3"
)

//go:embed locales
var LocalesFS embed.FS

// Translator resolves reply strings by key and carries the persona
// instruction for the same language.
type Translator struct {
	translations map[string]string
	personaText  string
}

// NewTranslator loads locales/<lang>.yaml and locales/persona-<lang>.txt from fsys.
func NewTranslator(fsys fs.FS, langCode string) (*Translator, error) {
	filePath := path.Join("locales", fmt.Sprintf("%s.yaml", langCode))
	data, err := fs.ReadFile(fsys, filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read translation file %s: %w", filePath, err)
	}

	personaPath := path.Join("locales", fmt.Sprintf("persona-%s.txt", langCode))
	persona, err := fs.ReadFile(fsys, personaPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read persona file %s: %w", personaPath, err)
	}

	return newTranslatorFromBytes(data, persona)
}

func newTranslatorFromBytes(catalog, persona []byte) (*Translator, error) {
	var translations map[string]string
	if err := yaml.Unmarshal(catalog, &translations); err != nil {
		return nil, fmt.Errorf("failed to parse translation file: %w", err)
	}
	return &Translator{translations: translations, personaText: string(persona)}, nil
}

// T returns the entry for key formatted with args, or key itself when the
// catalog has no such entry.
func (t *Translator) T(key string, args ...any) string {
	format, ok := t.translations[key]
	if !ok {
		return key
	}
	if len(args) > 0 {
		return fmt.Sprintf(format, args...)
	}
	return format
}

func (t *Translator) Persona() string {
	return t.personaText
}
