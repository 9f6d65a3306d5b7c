package ui

import (
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// TextInput is a single-line entry box. OnSubmit returns an error to keep
// the text and show the message under the box.
type TextInput struct {
	Text        string
	Placeholder string
	Error       string
	IsActive    bool
	X, Y        int
	Width       int
	Height      int
	OnSubmit    func(string) error
}

func NewTextInput(x, y, width, height int, placeholder string, onSubmit func(string) error) *TextInput {
	return &TextInput{
		Placeholder: placeholder,
		X:           x,
		Y:           y,
		Width:       width,
		Height:      height,
		OnSubmit:    onSubmit,
	}
}

func (ti *TextInput) Update() {
	if !ti.IsActive {
		return
	}

	ti.Text += string(ebiten.AppendInputChars(nil))

	if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
		if len(ti.Text) > 0 {
			ti.Text = ti.Text[:len(ti.Text)-1]
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		ti.IsActive = false
		return
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		text := strings.TrimSpace(ti.Text)
		if text == "" {
			ti.IsActive = false
			return
		}
		if ti.OnSubmit != nil {
			if err := ti.OnSubmit(text); err != nil {
				ti.Error = err.Error()
				return
			}
		}
		ti.Text = ""
		ti.Error = ""
		ti.IsActive = false
	}
}

func (ti *TextInput) Draw(screen *ebiten.Image) {
	x, y, width, height := ti.X, ti.Y, ti.Width, ti.Height

	bgColor := color.RGBA{50, 50, 50, 255}
	if ti.IsActive {
		bgColor = color.RGBA{80, 80, 80, 255}
	}
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(width), float32(height), bgColor, false)
	vector.StrokeRect(screen, float32(x), float32(y), float32(width), float32(height), 1, color.White, false)

	displayTxt := ti.Text
	switch {
	case ti.IsActive:
		displayTxt += "_"
	case displayTxt == "":
		displayTxt = ti.Placeholder
	}
	ebitenutil.DebugPrintAt(screen, displayTxt, x+5, y+(height-16)/2)

	if ti.Error != "" {
		ebitenutil.DebugPrintAt(screen, ti.Error, x, y+height+2)
	}
}

// IsClicked checks if the mouse click is within the text input bounds
func (ti *TextInput) IsClicked(mouseX, mouseY int) bool {
	return mouseX >= ti.X && mouseX <= ti.X+ti.Width &&
		mouseY >= ti.Y && mouseY <= ti.Y+ti.Height
}
