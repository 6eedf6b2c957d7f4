// Package stitch assembles PDF files, raster images and office documents
// into a single PDF with consistent page geometry.
//
// # Quick Start
//
// Discover the inputs, then merge them:
//
//	catalog, err := stitch.NewCatalog(stitch.CatalogOptions{RecursionLimit: 5})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	found, err := catalog.Collect([]string{"scans", "cover.pdf"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	m := stitch.NewMerger()
//	defer m.Close()
//
//	report, err := m.Merge(ctx, found.Entries, "bundle.pdf", stitch.DefaultMergeConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(report.Summary())
//
// # Discovery
//
// Each root is either a file or a directory. Directories are listed with
// files before subdirectories, both in natural order ("page2" before
// "page10"). Subdirectories are expanded while their depth stays below
// CatalogOptions.RecursionLimit. Missing roots and files with an
// unrecognized extension are reported in CatalogResult.Dropped.
//
// # Page Geometry
//
// Sizes are Dimension values parsed from text such as "A4", "letter-l",
// "21cm x 29.7cm" or "1in". The output page size is the first page of the
// first PDF in the entry list. Without a PDF, or with
// MergeConfig.ForceFallback, MergeConfig.FallbackPageSize is used. Images
// are scaled to fit the page inset by MergeConfig.Margin and centered.
//
// # Office Documents
//
// Office documents and Markdown are converted by the LibreOffice command line
// (soffice), located from MergeConfig.OfficeExecutables. When no executable
// is found, or a conversion fails, the entry is skipped and the report says
// why. Use WithOfficeConverter to plug in another converter.
package stitch
