package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spec-kit/storefront-service/pkg/client"
)

// adminctl is a small back-office CLI over the storefront client.
//
// Usage:
//
//	adminctl -server http://localhost:8080 login -u admin -p secret
//	adminctl products
//	adminctl upload -title Shoe -price 699 -category Footwear -image http://x/1.png -stock 5
//	adminctl delete -id <productId>
func main() {
	serverURL := flag.String("server", envOr("STOREFRONT_URL", "http://localhost:8080"), "storefront base URL")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "expected a command: login, logout, verify, products, upload, delete, messages")
		os.Exit(2)
	}

	store := client.NewFileTokenStore(tokenPath())
	session, err := client.NewSession(store)
	if err != nil {
		fatal(err)
	}

	c := client.New(*serverURL, session)
	c.OnUnauthorized(func() {
		fmt.Fprintln(os.Stderr, "session expired, please log in again")
	})

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	switch args[0] {
	case "login":
		fs := flag.NewFlagSet("login", flag.ExitOnError)
		username := fs.String("u", "", "username")
		password := fs.String("p", "", "password")
		_ = fs.Parse(args[1:])
		if err := c.Login(ctx, *username, *password); err != nil {
			fatal(err)
		}
		fmt.Println("logged in")
	case "logout":
		if err := c.Logout(); err != nil {
			fatal(err)
		}
		fmt.Println("logged out")
	case "verify":
		valid, err := c.Verify(ctx)
		if err != nil {
			fatal(err)
		}
		fmt.Printf("token valid: %v\n", valid)
	case "products":
		products, err := c.Products(ctx)
		if err != nil {
			fatal(err)
		}
		for _, p := range products {
			fmt.Printf("%s  %-24s %8.2f  %-12s stock=%d\n", p.ID, p.Title, p.Price, p.Category, p.Stock)
		}
		fmt.Printf("%d product(s)\n", len(products))
	case "upload":
		fs := flag.NewFlagSet("upload", flag.ExitOnError)
		title := fs.String("title", "", "title")
		description := fs.String("description", "", "description")
		price := fs.Float64("price", 0, "price")
		category := fs.String("category", "", "category")
		images := fs.String("image", "", "comma-separated image URLs")
		stock := fs.Int("stock", 0, "stock")
		_ = fs.Parse(args[1:])

		created, err := c.UploadProduct(ctx, client.Product{
			Title:       *title,
			Description: *description,
			Price:       *price,
			Category:    *category,
			ImageURLs:   splitNonEmpty(*images),
			Stock:       *stock,
		})
		if err != nil {
			fatal(err)
		}
		fmt.Printf("created %s\n", created.ID)
	case "delete":
		fs := flag.NewFlagSet("delete", flag.ExitOnError)
		id := fs.String("id", "", "product id")
		_ = fs.Parse(args[1:])
		if err := c.DeleteProduct(ctx, *id); err != nil {
			fatal(err)
		}
		fmt.Printf("deleted %s\n", *id)
	case "messages":
		messages, err := c.Messages(ctx)
		if err != nil {
			fatal(err)
		}
		for _, m := range messages {
			fmt.Printf("%s <%s>: %s\n", m.Name, m.Email, m.Message)
		}
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", args[0])
		os.Exit(2)
	}
}

func tokenPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".adminctl-token"
	}
	return filepath.Join(home, ".adminctl-token")
}

func envOr(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func splitNonEmpty(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(1)
}
