package service

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"

	"catalogo-tienda/logx"
)

// PageExporter turns an HTML catalog into one PNG per page
type PageExporter interface {
	ExportPNG(ctx context.Context, html []byte, expectedPages int) (map[int][]byte, error)
}

// ChromePageExporter screenshots each .page element in headless Chrome
type ChromePageExporter struct {
	chromePath string
}

// NewChromePageExporter creates an exporter. An empty chromePath means the
// usual install locations are probed.
func NewChromePageExporter(chromePath string) *ChromePageExporter {
	return &ChromePageExporter{chromePath: chromePath}
}

// detectChromePath detects the path to Chrome/Chromium executable
// Checks the configured path first, then common installation paths
func detectChromePath(configured string) string {
	if configured != "" {
		if _, err := os.Stat(configured); err == nil {
			return configured
		}
	}

	// Common paths to check
	paths := []string{
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
		"/usr/bin/google-chrome",
		"/usr/bin/google-chrome-stable",
		"/snap/bin/chromium",
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// exportTimeout gives PNG export a per-page budget, capped to keep
// requests bounded
func exportTimeout(pages int) time.Duration {
	if pages <= 1 {
		return 30 * time.Second
	}
	timeout := time.Duration(20+pages*10) * time.Second
	if timeout > 3*time.Minute {
		timeout = 3 * time.Minute
	}
	return timeout
}

const waitForImagesJS = `
(function() {
	return Promise.all([
		document.fonts.ready,
		Promise.all(Array.from(document.querySelectorAll('img')).map(img => {
			return new Promise((resolve) => {
				if (img.complete && img.naturalWidth > 0 && img.naturalHeight > 0) {
					resolve();
					return;
				}
				const timeout = setTimeout(() => resolve(), 5000);
				img.onload = () => { clearTimeout(timeout); resolve(); };
				img.onerror = () => { clearTimeout(timeout); resolve(); };
			});
		}))
	]);
})();
`

// ExportPNG implements PageExporter. The document is loaded with
// Page.setDocumentContent, so no HTTP round trip back to this service is
// needed. Returns a map of page number to PNG data.
func (e *ChromePageExporter) ExportPNG(ctx context.Context, html []byte, expectedPages int) (map[int][]byte, error) {
	timeout := exportTimeout(expectedPages)
	logx.Info().Int("expectedPages", expectedPages).Dur("timeout", timeout).Msg("📸 Exporting catalog pages to PNG")

	ctxTimeout, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox, // Required for running in Docker/containers
	)
	if chromePath := detectChromePath(e.chromePath); chromePath != "" {
		opts = append(opts, chromedp.ExecPath(chromePath))
	}
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctxTimeout, opts...)
	defer allocCancel()

	chromedpCtx, chromedpCancel := chromedp.NewContext(allocCtx)
	defer chromedpCancel()

	var pageCountVal float64
	err := chromedp.Run(chromedpCtx,
		chromedp.EmulateViewport(1240, 1754),
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, string(html)).Do(ctx)
		}),
		chromedp.WaitReady("body"),
		// Wait for fonts and images to load
		chromedp.Evaluate(waitForImagesJS, nil, func(p *runtime.EvaluateParams) *runtime.EvaluateParams {
			return p.WithAwaitPromise(true)
		}),
		chromedp.Evaluate(`document.querySelectorAll('.page').length`, &pageCountVal),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog html: %w", err)
	}

	pageCount := int(pageCountVal)
	if pageCount == 0 {
		return nil, fmt.Errorf("no pages found in HTML")
	}
	if expectedPages > 0 && pageCount != expectedPages {
		logx.Warn().Int("detected", pageCount).Int("expected", expectedPages).Msg("⚠️  Page count mismatch, using detected count")
	}

	pngs := make(map[int][]byte, pageCount)
	for i := 1; i <= pageCount; i++ {
		var buf []byte
		sel := fmt.Sprintf("body > div.page:nth-of-type(%d)", i)
		if err := chromedp.Run(chromedpCtx,
			chromedp.ScrollIntoView(sel, chromedp.ByQuery),
			chromedp.Screenshot(sel, &buf, chromedp.NodeVisible, chromedp.ByQuery),
		); err != nil {
			return nil, fmt.Errorf("failed to capture page %d: %w", i, err)
		}
		pngs[i] = buf
	}

	logx.Info().Int("pages", len(pngs)).Msg("✓ PNG export finished")
	return pngs, nil
}
