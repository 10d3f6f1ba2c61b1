package cli

import (
	"context"
	"flag"
	"fmt"

	"store-catalog/internal/catalog"
	"store-catalog/internal/store"
)

func parseSectionKey(fs *flag.FlagSet, sectionType *string, parentID, childID *int) (catalog.SectionType, error) {
	if *sectionType == "" || *parentID == 0 || *childID == 0 {
		fs.Usage()
		return "", fmt.Errorf("error: --type, --parent and --child flags are required")
	}
	st, err := catalog.ParseSectionType(*sectionType)
	if err != nil {
		return "", err
	}
	return st, nil
}

// RunSectionAdd handles the 'section-add' command.
func RunSectionAdd(ctx context.Context, s *store.Store, args []string) error {
	fs := flag.NewFlagSet("section-add", flag.ExitOnError)
	sectionType := fs.String("type", "", "Section type: featured_products, related_items, often_bought_with")
	parentID := fs.Int("parent", 0, "Parent product id")
	childID := fs.Int("child", 0, "Child product id")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("failed to parse flags: %w", err)
	}
	st, err := parseSectionKey(fs, sectionType, parentID, childID)
	if err != nil {
		return err
	}

	edge := catalog.Section{SectionType: st, ParentProductID: *parentID, ChildProductID: *childID}
	if err := s.AddSection(ctx, &edge); err != nil {
		return fmt.Errorf("failed to add section edge: %w", err)
	}
	fmt.Printf("Added %s edge %d -> %d\n", st, *parentID, *childID)
	return nil
}

// RunSectionGet handles the 'section-get' command. The edge is addressed by
// its full composite key.
func RunSectionGet(ctx context.Context, s *store.Store, args []string) error {
	fs := flag.NewFlagSet("section-get", flag.ExitOnError)
	sectionType := fs.String("type", "", "Section type")
	parentID := fs.Int("parent", 0, "Parent product id")
	childID := fs.Int("child", 0, "Child product id")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("failed to parse flags: %w", err)
	}
	st, err := parseSectionKey(fs, sectionType, parentID, childID)
	if err != nil {
		return err
	}

	edge, err := s.GetSection(ctx, st, *parentID, *childID)
	if err != nil {
		return fmt.Errorf("failed to get section edge: %w", err)
	}
	return printJSON(edge)
}

// RunSectionList handles the 'section-list' command.
func RunSectionList(ctx context.Context, s *store.Store, args []string) error {
	edges, err := s.ListSections(ctx)
	if err != nil {
		return fmt.Errorf("failed to list section edges: %w", err)
	}
	if len(edges) == 0 {
		fmt.Println("No section edges found.")
		return nil
	}
	return printJSON(edges)
}

// RunSectionRemove handles the 'section-remove' command.
func RunSectionRemove(ctx context.Context, s *store.Store, args []string) error {
	fs := flag.NewFlagSet("section-remove", flag.ExitOnError)
	sectionType := fs.String("type", "", "Section type")
	parentID := fs.Int("parent", 0, "Parent product id")
	childID := fs.Int("child", 0, "Child product id")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("failed to parse flags: %w", err)
	}
	st, err := parseSectionKey(fs, sectionType, parentID, childID)
	if err != nil {
		return err
	}

	if err := s.RemoveSection(ctx, st, *parentID, *childID); err != nil {
		return fmt.Errorf("failed to remove section edge: %w", err)
	}
	fmt.Printf("Removed %s edge %d -> %d\n", st, *parentID, *childID)
	return nil
}

// RunSectionsFor handles the 'sections-for' command: the grouped child
// products of one parent, all three types always present.
func RunSectionsFor(ctx context.Context, s *store.Store, args []string) error {
	fs := flag.NewFlagSet("sections-for", flag.ExitOnError)
	parentID := fs.Int("parent", 0, "Parent product id (required)")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("failed to parse flags: %w", err)
	}
	if *parentID == 0 {
		fs.Usage()
		return fmt.Errorf("error: --parent flag is required")
	}

	sections, err := s.SectionsFor(ctx, *parentID)
	if err != nil {
		return fmt.Errorf("failed to resolve sections: %w", err)
	}
	return printJSON(sections)
}
