package export

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/dealboard/internal/deal"
	"github.com/MrJamesThe3rd/dealboard/internal/document"
	"github.com/MrJamesThe3rd/dealboard/internal/entity"
)

// SummaryFile is the name of the plain-text index written next to the documents.
const SummaryFile = "summary.txt"

type DocumentLister interface {
	ListByOwner(ctx context.Context, owner entity.Ref) ([]*document.Document, error)
}

type DealGetter interface {
	Get(ctx context.Context, id uuid.UUID) (*deal.Deal, error)
}

// Item links a deal document to the file it was downloaded to. FilePath is
// empty for documents without a URL.
type Item struct {
	Document *document.Document
	FilePath string
}

// Bundle is the downloaded data room of a single deal.
type Bundle struct {
	Deal  *deal.Deal
	Items []Item
}

// Service assembles data-room exports from the documents attached to a deal.
type Service struct {
	docs     DocumentLister
	deals    DealGetter
	client   *http.Client
	apiToken string
}

func NewService(docs DocumentLister, deals DealGetter, apiToken string) *Service {
	return &Service{
		docs:     docs,
		deals:    deals,
		client:   &http.Client{Timeout: 30 * time.Second},
		apiToken: apiToken,
	}
}

// Export downloads every document of the deal into outputDir and writes the
// summary file alongside them.
func (s *Service) Export(ctx context.Context, dealID uuid.UUID, outputDir string) (*Bundle, error) {
	d, err := s.deals.Get(ctx, dealID)
	if err != nil {
		return nil, err
	}

	docs, err := s.docs.ListByOwner(ctx, entity.Deal(dealID))
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	bundle := &Bundle{Deal: d, Items: make([]Item, 0, len(docs))}
	taken := map[string]bool{SummaryFile: true}

	for _, doc := range docs {
		item := Item{Document: doc}

		if doc.URL != "" {
			path, err := s.download(ctx, doc, outputDir, taken)
			if err != nil {
				return nil, fmt.Errorf("downloading document %s: %w", doc.ID, err)
			}

			item.FilePath = path
		}

		bundle.Items = append(bundle.Items, item)
	}

	summary := []byte(Summary(bundle))
	if err := os.WriteFile(filepath.Join(outputDir, SummaryFile), summary, 0o644); err != nil {
		return nil, fmt.Errorf("writing summary: %w", err)
	}

	return bundle, nil
}

func (s *Service) download(ctx context.Context, doc *document.Document, dir string, taken map[string]bool) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, doc.URL, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}

	if s.apiToken != "" {
		req.Header.Set("Authorization", "Token "+s.apiToken)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code %d for url %s", resp.StatusCode, doc.URL)
	}

	filename := unique(fileName(resp, doc), taken)
	path := filepath.Join(dir, filename)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, resp.Body); err != nil {
		return "", fmt.Errorf("writing file: %w", err)
	}

	return path, nil
}

func fileName(resp *http.Response, doc *document.Document) string {
	if cd := resp.Header.Get("Content-Disposition"); cd != "" {
		if _, params, err := mime.ParseMediaType(cd); err == nil {
			if name := params["filename"]; name != "" {
				return strings.ReplaceAll(filepath.Base(name), " ", "_")
			}
		}
	}

	name := sanitize(doc.Name)
	if filepath.Ext(name) != "" {
		return name
	}

	ext := ".pdf"

	if ct := resp.Header.Get("Content-Type"); ct != "" {
		if exts, _ := mime.ExtensionsByType(ct); len(exts) > 0 {
			ext = exts[0]
		}
	}

	return name + ext
}

func sanitize(name string) string {
	safe := strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') ||
			r == '-' || r == '_' || r == '.' {
			return r
		}

		return '_'
	}, strings.TrimSpace(name))

	if strings.Trim(safe, "_.") == "" {
		return "document"
	}

	return safe
}

// unique suffixes name with a counter until it no longer collides with an
// earlier file of the same export.
func unique(name string, taken map[string]bool) string {
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)

	candidate := name
	for i := 2; taken[candidate]; i++ {
		candidate = fmt.Sprintf("%s_%d%s", base, i, ext)
	}

	taken[candidate] = true

	return candidate
}

// Summary renders the plain-text index of a bundle.
func Summary(b *Bundle) string {
	var sb strings.Builder

	d := b.Deal

	fmt.Fprintf(&sb, "Data room: %s\n", d.CompanyName)
	fmt.Fprintf(&sb, "Stage: %s\n", d.Stage.Label())
	fmt.Fprintf(&sb, "Owner: %s\n", d.Owner)
	fmt.Fprintf(&sb, "Revenue: %s\n", d.Revenue.StringFixed(2))

	if d.ValuationMin.Valid || d.ValuationMax.Valid {
		fmt.Fprintf(&sb, "Valuation: %s - %s\n", bound(d.ValuationMin.Valid, d.ValuationMin.Decimal.StringFixed(2)),
			bound(d.ValuationMax.Valid, d.ValuationMax.Decimal.StringFixed(2)))
	}

	fmt.Fprintf(&sb, "\nDocuments (%d):\n", len(b.Items))

	for _, item := range b.Items {
		file := "no file"
		if item.FilePath != "" {
			file = filepath.Base(item.FilePath)
		}

		fmt.Fprintf(&sb, "* %s | %s | %s\n", item.Document.Name, item.Document.Status, file)
	}

	return sb.String()
}

func bound(valid bool, s string) string {
	if !valid {
		return "?"
	}

	return s
}

// WriteZip archives every regular file under dir into w, paths relative to dir.
func WriteZip(w io.Writer, dir string) error {
	zw := zip.NewWriter(w)

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return err
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}

		zf, err := zw.Create(filepath.ToSlash(rel))
		if err != nil {
			return err
		}

		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()

		_, err = io.Copy(zf, f)

		return err
	})
	if err != nil {
		zw.Close()
		return fmt.Errorf("creating zip: %w", err)
	}

	return zw.Close()
}
