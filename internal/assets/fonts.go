// internal/assets/fonts.go
package assets

import (
	"fmt"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// FontManager кэширует шрифты по размеру.
type FontManager struct {
	mu    sync.Mutex
	faces map[fontKey]font.Face
}

type fontKey struct {
	bold bool
	size float64
}

// NewFontManager создает пустой менеджер шрифтов.
func NewFontManager() *FontManager {
	return &FontManager{faces: make(map[fontKey]font.Face)}
}

// Face возвращает шрифт Go Regular (или Go Bold) нужного размера.
func (m *FontManager) Face(size float64, bold bool) (font.Face, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := fontKey{bold: bold, size: size}
	if f, ok := m.faces[key]; ok {
		return f, nil
	}

	data := goregular.TTF
	if bold {
		data = gobold.TTF
	}
	tt, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	face, err := opentype.NewFace(tt, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("create face %.0fpt: %w", size, err)
	}
	m.faces[key] = face
	return face, nil
}

// MustFace как Face, но при ошибке отдает встроенный bitmap-шрифт.
func (m *FontManager) MustFace(size float64, bold bool) font.Face {
	f, err := m.Face(size, bold)
	if err != nil {
		return basicfont.Face7x13
	}
	return f
}
