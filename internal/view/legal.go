package view

import (
	_ "embed"
	"errors"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

type DocumentKind string

const (
	PrivacyPolicy  DocumentKind = "privacy"
	TermsOfService DocumentKind = "terms"
)

var ErrUnknownDocument = errors.New("unknown legal document")

type Section struct {
	Heading string `yaml:"heading" json:"heading"`
	Body    string `yaml:"body" json:"body"`
}

type Document struct {
	Kind        DocumentKind `yaml:"-" json:"kind"`
	Title       string       `yaml:"title" json:"title"`
	LastUpdated string       `yaml:"last_updated" json:"last_updated"`
	Sections    []Section    `yaml:"sections" json:"sections"`
}

//go:embed legal.yaml
var legalYAML []byte

var loadDocuments = sync.OnceValues(func() (map[DocumentKind]Document, error) {
	return parseDocuments(legalYAML)
})

func parseDocuments(raw []byte) (map[DocumentKind]Document, error) {
	docs := map[DocumentKind]Document{}
	if err := yaml.Unmarshal(raw, &docs); err != nil {
		return nil, fmt.Errorf("parse legal documents: %w", err)
	}
	for kind, doc := range docs {
		doc.Kind = kind
		docs[kind] = doc
	}
	return docs, nil
}

// LegalDocument returns the content of the privacy policy or terms modal.
func LegalDocument(kind DocumentKind) (Document, error) {
	docs, err := loadDocuments()
	if err != nil {
		return Document{}, err
	}
	doc, ok := docs[kind]
	if !ok {
		return Document{}, fmt.Errorf("%w: %q", ErrUnknownDocument, kind)
	}
	return doc, nil
}
