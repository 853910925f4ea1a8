package pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"suilog/internal/contribution"
	"suilog/internal/wallet"
)

// Generator renders the project-completion certificate.
type Generator interface {
	GenerateCertificate(data CertificateData) (string, error)
}

// CertificateGenerator writes certificates under RootDir.
type CertificateGenerator struct {
	RootDir string
}

// CertificateData is the printable mirror of the minted completion proof.
type CertificateData struct {
	ProjectName string
	Recipient   string
	TxDigest    string
	CompletedAt time.Time
	Summary     contribution.Summary
	Filename    string // optional; derived from the project name when empty
}

func NewCertificateGenerator(rootDir string) *CertificateGenerator {
	return &CertificateGenerator{RootDir: filepath.Clean(rootDir)}
}

// GenerateCertificate renders the PDF and returns its absolute path.
func (g *CertificateGenerator) GenerateCertificate(data CertificateData) (string, error) {
	filename := data.Filename
	if filename == "" {
		filename = fmt.Sprintf("certificate_%s.pdf", slug(data.ProjectName))
	}
	absPath, err := g.ensureTarget(filename)
	if err != nil {
		return "", err
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Completion Certificate - %s", data.ProjectName), true)
	pdf.SetAuthor("Suilog", false)
	pdf.SetMargins(25, 25, 25)
	pdf.SetAutoPageBreak(true, 25)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 26)
	pdf.CellFormat(0, 14, "CERTIFICATE OF COMPLETION", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 8, "This certifies that the project", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, data.ProjectName, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 8,
		fmt.Sprintf("was completed on %s", data.CompletedAt.Format("January 2, 2006")),
		"", 1, "C", false, 0, "")
	g.hr(pdf)

	g.sectionTitle(pdf, "Contribution Summary")
	g.kvLine(pdf, "Completed tasks",
		fmt.Sprintf("%d of %d", data.Summary.CompletedTasks, data.Summary.TotalTasks))
	g.kvLine(pdf, "Estimated time", contribution.FormatMinutes(data.Summary.TotalEstimatedTime))
	g.kvLine(pdf, "Actual time", contribution.FormatMinutes(data.Summary.TotalActualTime))
	g.kvLine(pdf, "Contribution score", fmt.Sprintf("%.1f", data.Summary.ContributionScore))
	g.hr(pdf)

	g.sectionTitle(pdf, "On-chain Proof")
	if data.Recipient != "" {
		g.kvLine(pdf, "Recipient", wallet.Truncate(data.Recipient))
	}
	if data.TxDigest != "" {
		g.kvLine(pdf, "Transaction", data.TxDigest)
	}

	pdf.SetY(-35)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.CellFormat(0, 6,
		fmt.Sprintf("Issued by Suilog on %s", time.Now().Format("2006-01-02")),
		"", 1, "C", false, 0, "")

	if err := pdf.OutputFileAndClose(absPath); err != nil {
		return "", err
	}
	return absPath, nil
}

func (g *CertificateGenerator) ensureTarget(filename string) (string, error) {
	// filename must not escape RootDir
	clean := filepath.Base(filepath.Clean(filename))
	if clean == "." || clean == ".." || clean == "" {
		return "", fmt.Errorf("bad filename %q", filename)
	}
	if err := os.MkdirAll(g.RootDir, 0o755); err != nil {
		return "", fmt.Errorf("create files root: %w", err)
	}
	return filepath.Join(g.RootDir, clean), nil
}

func (g *CertificateGenerator) sectionTitle(pdf *gofpdf.Fpdf, s string) {
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 8, s, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
}

func (g *CertificateGenerator) kvLine(pdf *gofpdf.Fpdf, key, val string) {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(55, 6, key+":", "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 6, val, "", 1, "L", false, 0, "")
}

func (g *CertificateGenerator) hr(pdf *gofpdf.Fpdf) {
	y := pdf.GetY() + 2
	pdf.SetLineWidth(0.2)
	pdf.Line(25, y, 272, y)
	pdf.SetY(y + 3)
}

func slug(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "project"
	}
	return b.String()
}
