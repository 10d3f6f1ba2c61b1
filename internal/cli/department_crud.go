package cli

import (
	"context"
	"flag"
	"fmt"

	"store-catalog/internal/catalog"
	"store-catalog/internal/store"
)

// RunDepartmentCreate handles the 'department-create' command.
func RunDepartmentCreate(ctx context.Context, s *store.Store, args []string) error {
	fs := flag.NewFlagSet("department-create", flag.ExitOnError)
	departmentID := fs.Int("id", 0, "External department id (required)")
	name := fs.String("name", "", "Department name (required)")
	rank := fs.Int("rank", 0, "Position among departments")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("failed to parse flags: %w", err)
	}
	if *departmentID == 0 || *name == "" {
		fs.Usage()
		return fmt.Errorf("error: --id and --name flags are required")
	}

	d := catalog.Department{DepartmentID: *departmentID, Name: *name, Rank: *rank}
	if err := s.CreateDepartment(ctx, &d); err != nil {
		return fmt.Errorf("failed to create department: %w", err)
	}
	fmt.Printf("Created department %d (%s)\n", d.DepartmentID, d.Name)
	return nil
}

// RunDepartmentList handles the 'department-list' command. Departments are
// printed in rank order.
func RunDepartmentList(ctx context.Context, s *store.Store, args []string) error {
	departments, err := s.ListDepartments(ctx)
	if err != nil {
		return fmt.Errorf("failed to list departments: %w", err)
	}
	if len(departments) == 0 {
		fmt.Println("No departments found.")
		return nil
	}
	return printJSON(departments)
}

// RunDepartmentGet handles the 'department-get' command. The hydration
// depth follows the --with-aisles / --with-aisles-and-products flags.
func RunDepartmentGet(ctx context.Context, s *store.Store, args []string) error {
	fs := flag.NewFlagSet("department-get", flag.ExitOnError)
	departmentID := fs.Int("id", 0, "External department id (required)")
	withAisles := fs.Bool("with-aisles", false, "Attach the department's aisles")
	withAislesAndProducts := fs.Bool("with-aisles-and-products", false, "Attach aisles and their products")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("failed to parse flags: %w", err)
	}
	if *departmentID == 0 {
		fs.Usage()
		return fmt.Errorf("error: --id flag is required")
	}

	depth := catalog.DepthFromFlags(*withAisles, *withAislesAndProducts)
	view, err := s.HydrateDepartment(ctx, *departmentID, depth)
	if err != nil {
		return fmt.Errorf("failed to get department: %w", err)
	}
	return printJSON(view)
}

// RunDepartmentUpdate handles the 'department-update' command (full
// replace of the mutable fields).
func RunDepartmentUpdate(ctx context.Context, s *store.Store, args []string) error {
	fs := flag.NewFlagSet("department-update", flag.ExitOnError)
	departmentID := fs.Int("id", 0, "External department id (required)")
	name := fs.String("name", "", "Department name (required)")
	rank := fs.Int("rank", 0, "Position among departments")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("failed to parse flags: %w", err)
	}
	if *departmentID == 0 || *name == "" {
		fs.Usage()
		return fmt.Errorf("error: --id and --name flags are required")
	}

	if err := s.UpdateDepartment(ctx, *departmentID, *name, *rank); err != nil {
		return fmt.Errorf("failed to update department: %w", err)
	}
	fmt.Printf("Updated department %d\n", *departmentID)
	return nil
}

// RunDepartmentPatch handles the 'department-patch' command. Only flags
// that were set on the command line are applied.
func RunDepartmentPatch(ctx context.Context, s *store.Store, args []string) error {
	fs := flag.NewFlagSet("department-patch", flag.ExitOnError)
	departmentID := fs.Int("id", 0, "External department id (required)")
	name := fs.String("name", "", "Department name")
	rank := fs.Int("rank", 0, "Position among departments")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("failed to parse flags: %w", err)
	}
	if *departmentID == 0 {
		fs.Usage()
		return fmt.Errorf("error: --id flag is required")
	}

	var patch store.DepartmentPatch
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "name":
			patch.Name = name
		case "rank":
			patch.Rank = rank
		}
	})

	if err := s.PatchDepartment(ctx, *departmentID, patch); err != nil {
		return fmt.Errorf("failed to patch department: %w", err)
	}
	fmt.Printf("Patched department %d\n", *departmentID)
	return nil
}

// RunDepartmentDelete handles the 'department-delete' command. The delete
// cascades to aisles, products, and section edges.
func RunDepartmentDelete(ctx context.Context, s *store.Store, args []string) error {
	fs := flag.NewFlagSet("department-delete", flag.ExitOnError)
	departmentID := fs.Int("id", 0, "External department id (required)")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("failed to parse flags: %w", err)
	}
	if *departmentID == 0 {
		fs.Usage()
		return fmt.Errorf("error: --id flag is required")
	}

	if err := s.DeleteDepartment(ctx, *departmentID); err != nil {
		return fmt.Errorf("failed to delete department: %w", err)
	}
	fmt.Printf("Deleted department %d\n", *departmentID)
	return nil
}
