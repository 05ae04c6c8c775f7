package modal

// Variant selects the modal's accent color.
type Variant int

const (
	VariantDefault Variant = iota
	VariantDanger
	VariantWarning
	VariantInfo
)

const (
	DefaultWidth  = 50
	MinModalWidth = 30
	ModalPadding  = 6 // border(2) + padding(4)
)

// Option configures a Modal.
type Option func(*Modal)

// WithWidth sets the preferred modal width. It is clamped to the screen.
func WithWidth(w int) Option {
	return func(m *Modal) {
		if w > 0 {
			m.width = w
		}
	}
}

// WithVariant sets the modal variant.
func WithVariant(v Variant) Option {
	return func(m *Modal) { m.variant = v }
}

// WithHints toggles the keyboard hint line.
func WithHints(show bool) Option {
	return func(m *Modal) { m.showHints = show }
}

// WithPrimaryAction sets the action returned when Enter is pressed on an
// element that has no action of its own, such as a text input.
func WithPrimaryAction(id string) Option {
	return func(m *Modal) { m.primaryAction = id }
}

// WithCloseOnBackdropClick controls whether clicking outside the modal cancels it.
func WithCloseOnBackdropClick(close bool) Option {
	return func(m *Modal) { m.closeOnBackdrop = close }
}
