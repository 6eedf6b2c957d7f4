package stitch_test

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	stitch "github.com/alnah/go-stitch"
)

func ExampleParseDimension() {
	d, err := stitch.ParseDimension("1in")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(d.Format(stitch.UnitPoint))

	page, err := stitch.ParseDimension("21cm x 29.7cm")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(page)
	fmt.Println(page.Format(stitch.UnitMillimeter))
	// Output:
	// 72pt x 72pt
	// 21cm x 29.7cm
	// 210mm x 297mm
}

func ExampleCatalog_Collect() {
	dir, err := os.MkdirTemp("", "stitch-example-")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(dir)

	for _, name := range []string{"page10.png", "page2.png", "notes.xyz", "cover.pdf"} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0o600); err != nil {
			log.Fatal(err)
		}
	}

	catalog, err := stitch.NewCatalog(stitch.CatalogOptions{RecursionLimit: 1})
	if err != nil {
		log.Fatal(err)
	}
	found, err := catalog.Collect([]string{dir})
	if err != nil {
		log.Fatal(err)
	}
	for _, e := range found.Entries {
		fmt.Println(e.Name())
	}
	// Output:
	// cover.pdf
	// page2.png
	// page10.png
}

func ExampleMerger_Merge() {
	catalog, err := stitch.NewCatalog(stitch.CatalogOptions{RecursionLimit: 5})
	if err != nil {
		log.Fatal(err)
	}
	found, err := catalog.Collect([]string{"scans", "cover.pdf"})
	if err != nil {
		log.Fatal(err)
	}

	m := stitch.NewMerger()
	defer m.Close()

	report, err := m.Merge(context.Background(), found.Entries, "bundle.pdf", stitch.DefaultMergeConfig())
	if err != nil {
		log.Fatal(err)
	}
	for _, skipped := range report.Skipped() {
		fmt.Println(skipped.Entry.Path, skipped.Err)
	}
	fmt.Println(report.Summary())
}
