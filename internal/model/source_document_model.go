package model

// FileKind is the declared kind of an uploaded presentation.
type FileKind string

const (
	KindUnknown FileKind = ""
	KindWord    FileKind = "word"
	KindPDF     FileKind = "pdf"
	KindSlides  FileKind = "slides"
)

type SourceDocument struct {
	Name string
	Kind FileKind
	Data []byte
}

type AudioClip struct {
	Name   string
	Format string // lowercase extension, e.g. ".mp3"
	Data   []byte
}
