//go:build !tinygo && !cgo

package hal

func (k *hostKeyboard) poll() {
	// No window keyboard without the ebiten backend; headless runs feed stdin.
}
