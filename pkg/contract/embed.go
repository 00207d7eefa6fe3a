package contract

import (
	"embed"
	"io/fs"
)

//go:embed spec/*.yaml
var embeddedSpec embed.FS

// DefaultDocumentName is the embedded description of the message backend.
const DefaultDocumentName = "message-api.yaml"

// Operation identifiers declared by the default document.
const (
	OperationHome          = "home"
	OperationCreateMessage = "createMessage"
	OperationGetMessage    = "getMessage"
)

// SpecFS exposes the embedded contract bundle.
func SpecFS() fs.FS {
	sub, err := fs.Sub(embeddedSpec, "spec")
	if err != nil {
		return embeddedSpec
	}
	return sub
}

// DefaultDocument returns the embedded backend description.
func DefaultDocument() Document {
	raw, err := fs.ReadFile(SpecFS(), DefaultDocumentName)
	if err != nil {
		panic("contract: embedded document missing: " + err.Error())
	}
	return MustNewDocument(SourceFromFS(DefaultDocumentName), raw)
}
