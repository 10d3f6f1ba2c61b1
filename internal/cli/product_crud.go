package cli

import (
	"context"
	"flag"
	"fmt"

	"store-catalog/internal/catalog"
	"store-catalog/internal/store"
)

// RunProductCreate handles the 'product-create' command.
func RunProductCreate(ctx context.Context, s *store.Store, args []string) error {
	fs := flag.NewFlagSet("product-create", flag.ExitOnError)
	productID := fs.Int("id", 0, "External product id (required)")
	name := fs.String("name", "", "Product name, globally unique (required)")
	rank := fs.Int("rank", 0, "Position within the aisle")
	size := fs.String("size", "", "Package size display string")
	src := fs.String("src", "", "Image source URL")
	alt := fs.String("alt", "", "Image alt text")
	price := fs.String("price", "", "Price display string")
	pricePer := fs.String("price-per", "", "Unit price display string")
	affix := fs.String("affix", "", "Unit label, e.g. \"each\"")
	aisleID := fs.Int("aisle", 0, "Owning aisle id (required)")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("failed to parse flags: %w", err)
	}
	if *productID == 0 || *name == "" || *aisleID == 0 {
		fs.Usage()
		return fmt.Errorf("error: --id, --name and --aisle flags are required")
	}

	p := catalog.Product{
		ProductID: *productID,
		Name:      *name,
		Rank:      *rank,
		Size:      *size,
		ImageSrc:  *src,
		ImageAlt:  *alt,
		Price:     *price,
		PricePer:  *pricePer,
		Affix:     *affix,
		AisleID:   *aisleID,
	}
	if err := s.CreateProduct(ctx, &p); err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	fmt.Printf("Created product %d (%s)\n", p.ProductID, p.Name)
	return nil
}

// RunProductList handles the 'product-list' command. --aisle and
// --department filter by parent; --department resolves products via the
// aisle join.
func RunProductList(ctx context.Context, s *store.Store, args []string) error {
	fs := flag.NewFlagSet("product-list", flag.ExitOnError)
	aisleID := fs.Int("aisle", 0, "Filter by owning aisle id")
	departmentID := fs.Int("department", 0, "Filter by owning department id")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("failed to parse flags: %w", err)
	}
	if *aisleID != 0 && *departmentID != 0 {
		return fmt.Errorf("error: --aisle and --department are mutually exclusive")
	}

	var products []catalog.Product
	var err error
	switch {
	case *aisleID != 0:
		products, err = s.ListProductsByAisle(ctx, *aisleID)
	case *departmentID != 0:
		products, err = s.ListProductsByDepartment(ctx, *departmentID)
	default:
		products, err = s.ListProducts(ctx)
	}
	if err != nil {
		return fmt.Errorf("failed to list products: %w", err)
	}
	if len(products) == 0 {
		fmt.Println("No products found.")
		return nil
	}
	return printJSON(products)
}

// RunProductGet handles the 'product-get' command. --with-sections attaches
// the grouped section children.
func RunProductGet(ctx context.Context, s *store.Store, args []string) error {
	fs := flag.NewFlagSet("product-get", flag.ExitOnError)
	productID := fs.Int("id", 0, "External product id")
	name := fs.String("name", "", "Product name (alternative to --id)")
	withSections := fs.Bool("with-sections", false, "Attach grouped section children")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("failed to parse flags: %w", err)
	}
	if *productID == 0 && *name == "" {
		fs.Usage()
		return fmt.Errorf("error: --id or --name flag is required")
	}

	if *name != "" {
		p, err := s.GetProductByName(ctx, *name)
		if err != nil {
			return fmt.Errorf("failed to get product: %w", err)
		}
		return printJSON(p)
	}

	depth := catalog.DepthFromFlags(*withSections, false)
	view, err := s.HydrateProduct(ctx, *productID, depth)
	if err != nil {
		return fmt.Errorf("failed to get product: %w", err)
	}
	return printJSON(view)
}

// RunProductUpdate handles the 'product-update' command (full replace of
// the mutable fields).
func RunProductUpdate(ctx context.Context, s *store.Store, args []string) error {
	fs := flag.NewFlagSet("product-update", flag.ExitOnError)
	productID := fs.Int("id", 0, "External product id (required)")
	name := fs.String("name", "", "Product name (required)")
	rank := fs.Int("rank", 0, "Position within the aisle")
	size := fs.String("size", "", "Package size display string")
	src := fs.String("src", "", "Image source URL")
	alt := fs.String("alt", "", "Image alt text")
	price := fs.String("price", "", "Price display string")
	pricePer := fs.String("price-per", "", "Unit price display string")
	affix := fs.String("affix", "", "Unit label")
	aisleID := fs.Int("aisle", 0, "Owning aisle id (required)")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("failed to parse flags: %w", err)
	}
	if *productID == 0 || *name == "" || *aisleID == 0 {
		fs.Usage()
		return fmt.Errorf("error: --id, --name and --aisle flags are required")
	}

	p := catalog.Product{
		Name:     *name,
		Rank:     *rank,
		Size:     *size,
		ImageSrc: *src,
		ImageAlt: *alt,
		Price:    *price,
		PricePer: *pricePer,
		Affix:    *affix,
		AisleID:  *aisleID,
	}
	if err := s.UpdateProduct(ctx, *productID, &p); err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	fmt.Printf("Updated product %d\n", *productID)
	return nil
}

// RunProductPatch handles the 'product-patch' command. Only flags that were
// set on the command line are applied.
func RunProductPatch(ctx context.Context, s *store.Store, args []string) error {
	fs := flag.NewFlagSet("product-patch", flag.ExitOnError)
	productID := fs.Int("id", 0, "External product id (required)")
	name := fs.String("name", "", "Product name")
	rank := fs.Int("rank", 0, "Position within the aisle")
	size := fs.String("size", "", "Package size display string")
	src := fs.String("src", "", "Image source URL")
	alt := fs.String("alt", "", "Image alt text")
	price := fs.String("price", "", "Price display string")
	pricePer := fs.String("price-per", "", "Unit price display string")
	affix := fs.String("affix", "", "Unit label")
	aisleID := fs.Int("aisle", 0, "Owning aisle id")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("failed to parse flags: %w", err)
	}
	if *productID == 0 {
		fs.Usage()
		return fmt.Errorf("error: --id flag is required")
	}

	var patch store.ProductPatch
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "name":
			patch.Name = name
		case "rank":
			patch.Rank = rank
		case "size":
			patch.Size = size
		case "src":
			patch.ImageSrc = src
		case "alt":
			patch.ImageAlt = alt
		case "price":
			patch.Price = price
		case "price-per":
			patch.PricePer = pricePer
		case "affix":
			patch.Affix = affix
		case "aisle":
			patch.AisleID = aisleID
		}
	})

	if err := s.PatchProduct(ctx, *productID, patch); err != nil {
		return fmt.Errorf("failed to patch product: %w", err)
	}
	fmt.Printf("Patched product %d\n", *productID)
	return nil
}

// RunProductDelete handles the 'product-delete' command. Section edges
// referencing the product as parent or child are removed with it.
func RunProductDelete(ctx context.Context, s *store.Store, args []string) error {
	fs := flag.NewFlagSet("product-delete", flag.ExitOnError)
	productID := fs.Int("id", 0, "External product id (required)")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("failed to parse flags: %w", err)
	}
	if *productID == 0 {
		fs.Usage()
		return fmt.Errorf("error: --id flag is required")
	}

	if err := s.DeleteProduct(ctx, *productID); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	fmt.Printf("Deleted product %d\n", *productID)
	return nil
}
