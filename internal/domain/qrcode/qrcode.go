package qrcode

// Renderer turns a payload string into a PNG image.
type Renderer interface {
	Render(payload string) ([]byte, error)
}
