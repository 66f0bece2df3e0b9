package cv

import (
	"context"
	"fmt"
)

// Document is a rendered CV ready to serve.
type Document struct {
	PDF      []byte
	ETag     string
	FullName string
	Lang     string
}

type Generator struct {
	assembler *Assembler
	renderer  *Renderer
}

func NewGenerator(assembler *Assembler, renderer *Renderer) *Generator {
	return &Generator{assembler: assembler, renderer: renderer}
}

// Generate assembles and renders the CV for slug in lang. There is no
// partial output: any failure is returned as is.
func (g *Generator) Generate(ctx context.Context, slug, lang string) (*Document, error) {
	model, err := g.assembler.Assemble(ctx, slug, lang)
	if err != nil {
		return nil, fmt.Errorf("assemble cv: %w", err)
	}
	pdf, err := g.renderer.RenderPDF(ctx, model, LabelsFor(lang))
	if err != nil {
		return nil, fmt.Errorf("render cv: %w", err)
	}
	return &Document{
		PDF:      pdf,
		ETag:     ETag(pdf),
		FullName: model.FullName,
		Lang:     lang,
	}, nil
}
