package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"store-catalog/internal/cli"
	"store-catalog/internal/config"
	"store-catalog/internal/store"
)

func main() {
	os.Exit(run())
}

func run() int {
	if len(os.Args) < 2 {
		printUsage()
		return 1
	}

	command := os.Args[1]
	args := os.Args[2:]

	// Handle help command without DB connection
	if command == "help" {
		printUsage()
		return 0
	}

	cfg := config.GetDBConfig()
	s, err := store.Open(cfg.Driver, cfg.ConnString)
	if err != nil {
		log.Printf("Failed to open catalog database: %v", err)
		return 1
	}
	defer s.Close()

	ctx := context.Background()

	switch command {
	case "init-db":
		err = s.InitDB(ctx)
		if err != nil {
			log.Printf("Failed to initialize database: %v", err)
			return 1
		}
		fmt.Println("Database initialized successfully.")

	case "load-catalog":
		err = cli.RunLoadCatalog(ctx, s, args)

	// DEPARTMENT CRUD COMMANDS
	case "department-create":
		err = cli.RunDepartmentCreate(ctx, s, args)
	case "department-list":
		err = cli.RunDepartmentList(ctx, s, args)
	case "department-get":
		err = cli.RunDepartmentGet(ctx, s, args)
	case "department-update":
		err = cli.RunDepartmentUpdate(ctx, s, args)
	case "department-patch":
		err = cli.RunDepartmentPatch(ctx, s, args)
	case "department-delete":
		err = cli.RunDepartmentDelete(ctx, s, args)

	// AISLE CRUD COMMANDS
	case "aisle-create":
		err = cli.RunAisleCreate(ctx, s, args)
	case "aisle-list":
		err = cli.RunAisleList(ctx, s, args)
	case "aisle-get":
		err = cli.RunAisleGet(ctx, s, args)
	case "aisle-update":
		err = cli.RunAisleUpdate(ctx, s, args)
	case "aisle-patch":
		err = cli.RunAislePatch(ctx, s, args)
	case "aisle-delete":
		err = cli.RunAisleDelete(ctx, s, args)

	// PRODUCT CRUD COMMANDS
	case "product-create":
		err = cli.RunProductCreate(ctx, s, args)
	case "product-list":
		err = cli.RunProductList(ctx, s, args)
	case "product-get":
		err = cli.RunProductGet(ctx, s, args)
	case "product-update":
		err = cli.RunProductUpdate(ctx, s, args)
	case "product-patch":
		err = cli.RunProductPatch(ctx, s, args)
	case "product-delete":
		err = cli.RunProductDelete(ctx, s, args)

	// SECTION EDGE COMMANDS
	case "section-add":
		err = cli.RunSectionAdd(ctx, s, args)
	case "section-get":
		err = cli.RunSectionGet(ctx, s, args)
	case "section-list":
		err = cli.RunSectionList(ctx, s, args)
	case "section-remove":
		err = cli.RunSectionRemove(ctx, s, args)
	case "sections-for":
		err = cli.RunSectionsFor(ctx, s, args)

	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		printUsage()
		return 1
	}

	if err != nil {
		log.Printf("Command failed: %v", err)
		return 1
	}
	return 0
}

func printUsage() {
	fmt.Println("Usage: store-catalog <command> [flags]")
	fmt.Println()
	fmt.Println("Database:")
	fmt.Println("  init-db        Create the catalog tables")
	fmt.Println("  load-catalog   Bulk-load a scraped JSON snapshot (--snapshot, --dry-run)")
	fmt.Println()
	fmt.Println("Departments:")
	fmt.Println("  department-create --id=N --name=S [--rank=N]")
	fmt.Println("  department-list")
	fmt.Println("  department-get --id=N [--with-aisles] [--with-aisles-and-products]")
	fmt.Println("  department-update --id=N --name=S [--rank=N]")
	fmt.Println("  department-patch --id=N [--name=S] [--rank=N]")
	fmt.Println("  department-delete --id=N")
	fmt.Println()
	fmt.Println("Aisles:")
	fmt.Println("  aisle-create --id=N --name=S --department=N [--rank=N]")
	fmt.Println("  aisle-list [--department=N]")
	fmt.Println("  aisle-get --id=N [--with-products]")
	fmt.Println("  aisle-update --id=N --name=S --department=N [--rank=N]")
	fmt.Println("  aisle-patch --id=N [--name=S] [--rank=N] [--department=N]")
	fmt.Println("  aisle-delete --id=N")
	fmt.Println()
	fmt.Println("Products:")
	fmt.Println("  product-create --id=N --name=S --aisle=N [--rank=N] [--size=S] [--src=S]")
	fmt.Println("                 [--alt=S] [--price=S] [--price-per=S] [--affix=S]")
	fmt.Println("  product-list [--aisle=N | --department=N]")
	fmt.Println("  product-get --id=N [--with-sections] | --name=S")
	fmt.Println("  product-update --id=N --name=S --aisle=N [field flags]")
	fmt.Println("  product-patch --id=N [field flags]")
	fmt.Println("  product-delete --id=N")
	fmt.Println()
	fmt.Println("Sections:")
	fmt.Println("  section-add --type=T --parent=N --child=N")
	fmt.Println("  section-get --type=T --parent=N --child=N")
	fmt.Println("  section-list")
	fmt.Println("  section-remove --type=T --parent=N --child=N")
	fmt.Println("  sections-for --parent=N")
	fmt.Println()
	fmt.Println("Environment:")
	fmt.Println("  CATALOG_DB_DRIVER   sqlite (default) or postgres")
	fmt.Println("  CATALOG_DB_CONN     Connection string or SQLite file path")
	fmt.Println("  CATALOG_SNAPSHOT    Default snapshot path for load-catalog")
}
