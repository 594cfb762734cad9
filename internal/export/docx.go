package export

import (
	"bytes"

	"github.com/fumiama/go-docx"
)

// DocumentTitle heads every exported results document.
const DocumentTitle = "Quiz Results"

// WriteDOCX serializes document sections into a Word document byte stream.
// Each section gets an enlarged heading paragraph, its lines as plain
// paragraphs and a trailing page break.
func WriteDOCX(sections []DocumentSection) ([]byte, error) {
	doc := docx.New().WithDefaultTheme()

	title := doc.AddParagraph()
	title.AddText(DocumentTitle).Size("40")

	for _, section := range sections {
		heading := doc.AddParagraph()
		heading.AddText(section.Heading).Size("28")

		for _, line := range section.Lines {
			doc.AddParagraph().AddText(line)
		}

		doc.AddParagraph().AddPageBreaks()
	}

	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
