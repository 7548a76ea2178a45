package printout

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// Default PDF parameters: A4 portrait.
const (
	DefaultTimeout = 30 * time.Second
	a4WidthInches  = 8.27
	a4HeightInches = 11.69
)

// PDFOptions configures a Chromium PDF export.
type PDFOptions struct {
	// ChromePath overrides the browser binary. Empty uses chromedp's lookup.
	ChromePath string

	// Timeout bounds the whole export. If zero, DefaultTimeout is used.
	Timeout time.Duration

	Landscape bool
}

// PDF loads html into a headless Chromium and prints it to PDF.
func PDF(parentCtx context.Context, html []byte, opts PDFOptions) ([]byte, error) {
	if len(html) == 0 {
		return nil, fmt.Errorf("pdf: empty document")
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}

	allocOpts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	if opts.ChromePath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(opts.ChromePath))
	}
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(parentCtx, allocOpts...)
	defer cancelAlloc()

	ctx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	ctx, timeoutCancel := context.WithTimeout(ctx, opts.Timeout)
	defer timeoutCancel()

	var pdf []byte
	tasks := chromedp.Tasks{
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, string(html)).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithPreferCSSPageSize(true).
				WithLandscape(opts.Landscape).
				WithPaperWidth(a4WidthInches).
				WithPaperHeight(a4HeightInches).
				Do(ctx)
			if err != nil {
				return err
			}
			pdf = buf
			return nil
		}),
	}

	if err := chromedp.Run(ctx, tasks); err != nil {
		return nil, fmt.Errorf("pdf: chromedp run failed: %w", err)
	}
	return pdf, nil
}
