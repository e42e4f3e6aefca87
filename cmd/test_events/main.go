// Command test_events drives a running cart server through one add, update, remove and
// clear so that each operation leaves an event in the outbox.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	cartgrpc "github.com/light-bringer/cartsync-service/internal/transport/grpc/cart"
)

func main() {
	addr := flag.String("addr", "localhost:9090", "Cart server address")
	userID := flag.String("user", "events-demo", "User whose cart is used")
	productID := flag.String("product", "p1", "Catalog product to add")
	sizeID := flag.String("size", "", "Size of the product, if it has sizes")
	flag.Parse()

	conn, err := grpc.NewClient(*addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer conn.Close()

	client := cartgrpc.NewClient(conn, *userID)
	ctx := context.Background()

	res, err := client.Add(ctx, *productID, 1, *sizeID)
	if err != nil {
		log.Fatalf("Failed to add item: %v", err)
	}
	if !res.Persisted() {
		log.Fatalf("Server did not persist the line for user %q", *userID)
	}
	itemID := res.Item.ID().Value()
	fmt.Printf("Added %s as %s\n", *productID, itemID)

	if err := client.UpdateQuantity(ctx, itemID, 3); err != nil {
		log.Fatalf("Failed to update quantity: %v", err)
	}
	fmt.Println("Updated quantity to 3")

	if err := client.Remove(ctx, itemID); err != nil {
		log.Fatalf("Failed to remove item: %v", err)
	}
	fmt.Println("Removed item")

	if err := client.ClearAll(ctx); err != nil {
		log.Fatalf("Failed to clear cart: %v", err)
	}
	fmt.Println("Cleared cart")

	fmt.Println("\nTest data created successfully!")
	fmt.Println("Now inspect the outbox:")
	fmt.Printf("  go run ./cmd/check_events -user %s\n", *userID)
	fmt.Printf("  curl -H 'X-User-Id: %s' 'http://localhost:8080/api/v1/cart'\n", *userID)
}
