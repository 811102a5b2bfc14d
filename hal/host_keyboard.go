//go:build !tinygo && cgo

package hal

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

var polledKeys = [...]struct {
	key  ebiten.Key
	code KeyCode
}{
	{ebiten.KeyArrowUp, KeyUp},
	{ebiten.KeyArrowDown, KeyDown},
	{ebiten.KeyArrowLeft, KeyLeft},
	{ebiten.KeyArrowRight, KeyRight},
	{ebiten.KeyEnter, KeyEnter},
	{ebiten.KeyEscape, KeyEscape},
	{ebiten.KeyBackspace, KeyBackspace},
	{ebiten.KeyTab, KeyTab},
	{ebiten.KeyDelete, KeyDelete},
	{ebiten.KeyHome, KeyHome},
	{ebiten.KeyEnd, KeyEnd},
}

func (k *hostKeyboard) poll() {
	ctrl := ebiten.IsKeyPressed(ebiten.KeyControlLeft) || ebiten.IsKeyPressed(ebiten.KeyControlRight)

	if ctrl {
		emitCtrl := func(key ebiten.Key, r rune) {
			if !inpututil.IsKeyJustPressed(key) {
				return
			}
			k.emit(KeyEvent{Press: true, Rune: r})
		}
		emitCtrl(ebiten.KeyD, 0x04)
		emitCtrl(ebiten.KeyH, 0x08)
		emitCtrl(ebiten.KeyP, 0x10)
		emitCtrl(ebiten.KeyU, 0x15)
	} else {
		for _, r := range ebiten.AppendInputChars(nil) {
			k.emit(KeyEvent{Press: true, Rune: r})
		}
	}

	// Use only arrow keys for navigation. Letter keys are treated as text input.
	for _, pk := range polledKeys {
		if inpututil.IsKeyJustPressed(pk.key) {
			k.emit(KeyEvent{Code: pk.code, Press: true})
		}
		if inpututil.IsKeyJustReleased(pk.key) {
			k.emit(KeyEvent{Code: pk.code, Press: false})
		}
	}
}
