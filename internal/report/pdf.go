package report

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
)

const (
	timeLayout = "2006-01-02 15:04 MST"
	lineHeight = 7.0
)

// PDFComposer renders reports as A4 PDF documents
type PDFComposer struct{}

// NewPDFComposer creates a PDF composer
func NewPDFComposer() *PDFComposer {
	return &PDFComposer{}
}

// Compose lays out the report and writes the document to w
func (c *PDFComposer) Compose(w io.Writer, r *Report) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(18, 18, 18)
	pdf.SetTitle("Post Performance Report", true)
	pdf.SetAuthor(r.AuthorName, true)
	pdf.SetCreationDate(r.GeneratedAt)
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d/{nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	// core fonts are cp1252; translate so accented names survive
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	heading := func(text string) {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "BU", 14)
		pdf.CellFormat(0, 9, tr(text), "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 12)
	}
	line := func(format string, args ...interface{}) {
		pdf.CellFormat(0, lineHeight, tr(fmt.Sprintf(format, args...)), "", 1, "L", false, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 12, "Post Performance Report", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 12)
	line("Author: %s", r.AuthorName)
	line("Generated on: %s", r.GeneratedAt.Format(timeLayout))

	heading("Post Overview")
	line("Post ID: %s", r.PostID)
	line("Published on: %s", r.PublishedAt.Format(timeLayout))
	line("Days since publication: %d", r.DaysSincePublication)
	line("Content preview:")
	pdf.SetFont("Helvetica", "I", 12)
	pdf.MultiCell(0, lineHeight, tr(r.ContentPreview), "", "L", false)
	pdf.SetFont("Helvetica", "", 12)

	heading("Engagement Metrics")
	line("Post likes: %d", r.Metrics.LikesCount)
	line("Comments: %d", r.Metrics.CommentCount)
	line("Replies: %d", r.Metrics.RepliesCount)
	line("Comment likes: %d", r.Metrics.CommentLikesTotal)
	line("Reply likes: %d", r.Metrics.ReplyLikesTotal)
	line("Total reactions (likes): %d", r.Metrics.TotalReactions)

	heading("Ranking")
	line("Ranking among your posts: %d of %d (by total reactions)", r.Rank, r.TotalPosts)
	line("Total authored posts analysed: %d", r.TotalPosts)

	pdf.Ln(6)
	pdf.MultiCell(0, lineHeight, "Note: Total reactions include post likes, comment likes, and reply likes.", "", "L", false)

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("failed to lay out report: %w", err)
	}
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
