package interfaces

// Confirmer asks the user a yes/no question
type Confirmer interface {
	// ConfirmOverwrite asks whether the existing file at path may be replaced
	ConfirmOverwrite(path string) (bool, error)
}
