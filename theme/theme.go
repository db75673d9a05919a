package theme

import (
	_ "embed"
)

//go:embed icon.svg
var appIcon []byte

//go:embed saved.svg
var savedIcon []byte

//go:embed unsaved.svg
var unsavedIcon []byte

var (
	AppIcon     = appIconResource{}
	SavedIcon   = savedIconResource{}
	UnsavedIcon = unsavedIconResource{}
)

type appIconResource struct{}

func (appIconResource) Name() string {
	return "hypernotic.svg"
}

func (appIconResource) Content() []byte {
	return appIcon
}

type savedIconResource struct{}

func (savedIconResource) Name() string {
	return "saved.svg"
}

func (savedIconResource) Content() []byte {
	return savedIcon
}

type unsavedIconResource struct{}

func (unsavedIconResource) Name() string {
	return "unsaved.svg"
}

func (unsavedIconResource) Content() []byte {
	return unsavedIcon
}
