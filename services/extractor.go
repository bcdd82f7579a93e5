package services

import (
	"bytes"
	"fmt"
	"html"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"

	"docchat-backend/internal/logger"
	"docchat-backend/models"
)

// UploadedFile is one document received for processing.
type UploadedFile struct {
	Name        string
	ContentType string
	Data        []byte
}

var (
	paragraphBreakRegex = regexp.MustCompile(`</w:p>`)
	xmlTagRegex         = regexp.MustCompile(`<[^>]+>`)
)

// ExtractText dispatches on content type, falling back to the file
// extension. Image files are recognized but OCR is not implemented; they
// fail with an explicit unsupported error rather than yielding empty text.
func ExtractText(file UploadedFile) (string, error) {
	kind := strings.ToLower(strings.TrimSpace(strings.SplitN(file.ContentType, ";", 2)[0]))
	if kind == "" || kind == "application/octet-stream" {
		kind = kindFromExtension(file.Name)
	}

	switch {
	case kind == "application/pdf":
		return extractPDF(file)
	case kind == "application/vnd.openxmlformats-officedocument.wordprocessingml.document" ||
		kind == "application/msword":
		return extractDOCX(file)
	case kind == "text/plain":
		return string(file.Data), nil
	case strings.HasPrefix(kind, "image/"):
		return "", models.NewUnsupportedError(
			fmt.Sprintf("image text extraction (OCR) is not implemented, skipping %s", file.Name))
	default:
		return "", models.NewUnsupportedError(
			fmt.Sprintf("unsupported file type %q for %s", file.ContentType, file.Name))
	}
}

func kindFromExtension(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return "application/pdf"
	case ".docx", ".doc":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case ".txt", ".md":
		return "text/plain"
	case ".png", ".jpg", ".jpeg", ".gif", ".webp":
		return "image/unknown"
	default:
		return ""
	}
}

func extractPDF(file UploadedFile) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(file.Data), int64(len(file.Data)))
	if err != nil {
		return "", models.NewExtractionError(file.Name, err)
	}

	var textBuilder strings.Builder
	pages := reader.NumPage()
	for i := 1; i <= pages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			logger.Warn("Failed to extract text from PDF page", "file", file.Name, "page", i, "error", err)
			continue
		}
		textBuilder.WriteString(text)
		textBuilder.WriteString("\n")
	}

	if strings.TrimSpace(textBuilder.String()) == "" {
		return "", models.NewExtractionError(file.Name, fmt.Errorf("no text extracted from PDF"))
	}
	return textBuilder.String(), nil
}

func extractDOCX(file UploadedFile) (string, error) {
	reader, err := docx.ReadDocxFromMemory(bytes.NewReader(file.Data), int64(len(file.Data)))
	if err != nil {
		return "", models.NewExtractionError(file.Name, err)
	}
	defer reader.Close()

	content := reader.Editable().GetContent()
	text := stripDocumentXML(content)
	if strings.TrimSpace(text) == "" {
		return "", models.NewExtractionError(file.Name, fmt.Errorf("no text extracted from DOCX"))
	}
	return text, nil
}

// stripDocumentXML reduces WordprocessingML to plain text: paragraph ends
// become newlines, remaining tags are dropped, entities are decoded.
func stripDocumentXML(content string) string {
	text := paragraphBreakRegex.ReplaceAllString(content, "\n")
	text = xmlTagRegex.ReplaceAllString(text, "")
	return html.UnescapeString(text)
}
