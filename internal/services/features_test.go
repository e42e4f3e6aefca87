package services_test

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/cucumber/godog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/test/bufconn"

	"github.com/light-bringer/cartsync-service/internal/app/cart/contracts"
	"github.com/light-bringer/cartsync-service/internal/app/cart/domain"
	"github.com/light-bringer/cartsync-service/internal/app/cart/queries/get_cart"
	"github.com/light-bringer/cartsync-service/internal/app/cart/usecases/add_item"
	"github.com/light-bringer/cartsync-service/internal/app/cart/usecases/remove_item"
	"github.com/light-bringer/cartsync-service/internal/app/cart/usecases/update_quantity"
	"github.com/light-bringer/cartsync-service/internal/pkg/clock"
	"github.com/light-bringer/cartsync-service/internal/pkg/kvstore"
	"github.com/light-bringer/cartsync-service/internal/services"
	"github.com/light-bringer/cartsync-service/internal/testutil"
	cartgrpc "github.com/light-bringer/cartsync-service/internal/transport/grpc/cart"
)

type cartTestContext struct {
	clock   *clock.MockClock
	catalog *testutil.Catalog
	repo    *testutil.CartRepo
	store   *kvstore.MemoryStore

	server *grpc.Server
	conn   *grpc.ClientConn
	remote *cartgrpc.Client // nil for offline sessions
	client *services.CartClient
	err    error
}

func (c *cartTestContext) reset() {
	c.clock = clock.NewMockClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	c.catalog = testutil.NewCatalog()
	c.repo = testutil.NewCartRepo(c.clock)
	c.store = kvstore.NewMemoryStore()
	c.server, c.conn, c.remote, c.client, c.err = nil, nil, nil, nil, nil
}

func (c *cartTestContext) close() {
	if c.client != nil {
		_ = c.client.Close(context.Background())
	}
	if c.conn != nil {
		c.conn.Close()
	}
	if c.server != nil {
		c.server.Stop()
	}
}

func (c *cartTestContext) dial() error {
	lis := bufconn.Listen(1024 * 1024)
	c.server = grpc.NewServer()
	cartgrpc.RegisterCartServiceServer(c.server, cartgrpc.NewHandler(c.repo, c.catalog, nil))
	go func() { _ = c.server.Serve(lis) }()

	conn, err := grpc.NewClient(
		"passthrough:///bufnet",
		grpc.WithContextDialer(func(context.Context, string) (net.Conn, error) {
			return lis.Dial()
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return err
	}
	c.conn = conn
	return nil
}

func (c *cartTestContext) open() error {
	var remote contracts.RemoteCartService
	if c.remote != nil {
		remote = c.remote
	}
	c.client = services.NewCartClientWith(context.Background(), services.CartClientDeps{
		CartID:        "cart-1",
		Store:         c.store,
		Products:      c.catalog,
		Remote:        remote,
		RemoteTimeout: time.Second,
		Clock:         c.clock,
	})
	_, err := c.client.LoadCart.Execute(context.Background())
	return err
}

func (c *cartTestContext) view() (*get_cart.CartDTO, error) {
	return c.client.GetCart.Execute(context.Background())
}

func (c *cartTestContext) line(productID, sizeID string) (*get_cart.ItemDTO, error) {
	dto, err := c.view()
	if err != nil {
		return nil, err
	}
	for _, item := range dto.Items {
		if item.ProductID == productID && item.SizeID == sizeID {
			return item, nil
		}
	}
	return nil, fmt.Errorf("no line for %s/%s", productID, sizeID)
}

func (c *cartTestContext) theCatalogHasProductPricedInSizes(id string, price int64, sizes string) error {
	c.catalog.Put(testutil.SizedProduct(id, id, price, strings.Split(sizes, ",")...))
	return nil
}

func (c *cartTestContext) theCatalogHasProductPriced(id string, price int64) error {
	c.catalog.Put(testutil.Product(id, id, price))
	return nil
}

func (c *cartTestContext) aCartSession(kind string) error {
	switch kind {
	case "signed-in", "anonymous":
		if err := c.dial(); err != nil {
			return err
		}
		user := ""
		if kind == "signed-in" {
			user = "user-1"
		}
		c.remote = cartgrpc.NewClient(c.conn, user)
	case "offline":
	default:
		return fmt.Errorf("unknown session kind %q", kind)
	}
	return c.open()
}

func (c *cartTestContext) iAddOfInSize(qty int, productID, sizeID string) error {
	_, err := c.client.AddItem.Execute(context.Background(), &add_item.Request{
		ProductID: productID,
		Quantity:  qty,
		SizeID:    sizeID,
	})
	return err
}

func (c *cartTestContext) iAddOf(qty int, productID string) error {
	return c.iAddOfInSize(qty, productID, "")
}

func (c *cartTestContext) iRemoveTheLineForInSize(productID, sizeID string) error {
	item, err := c.line(productID, sizeID)
	if err != nil {
		return err
	}
	return c.client.RemoveItem.Execute(context.Background(), &remove_item.Request{ItemID: item.ID})
}

func (c *cartTestContext) iSetTheQuantityOfTo(productID string, qty int) error {
	item, err := c.line(productID, "")
	if err != nil {
		return err
	}
	c.err = c.client.UpdateQuantity.Execute(context.Background(), &update_quantity.Request{ItemID: item.ID, Quantity: qty})
	return nil
}

func (c *cartTestContext) iClearTheCart() error {
	return c.client.ClearCart.Execute(context.Background())
}

func (c *cartTestContext) iSignInAsAndMigrate(userID string) error {
	if c.remote == nil {
		return errors.New("session has no remote")
	}
	c.remote.SetUserID(userID)
	_, err := c.client.MigrateCart.Execute(context.Background())
	return err
}

func (c *cartTestContext) iSignInAsAndReload(userID string) error {
	if c.remote == nil {
		return errors.New("session has no remote")
	}
	c.remote.SetUserID(userID)
	_, err := c.client.LoadCart.Execute(context.Background())
	return err
}

func (c *cartTestContext) iRestartTheSession() error {
	if err := c.client.Close(context.Background()); err != nil {
		return err
	}
	return c.open()
}

func (c *cartTestContext) theServerAlreadyHasOfInSizeFor(qty int, productID, sizeID, userID string) error {
	product, err := c.catalog.Snapshot(context.Background(), productID)
	if err != nil {
		return err
	}
	_, err = c.repo.Add(context.Background(), userID, product, qty, sizeID)
	return err
}

func (c *cartTestContext) theServerHoldsOfFor(qty int, productID, userID string) error {
	items, err := c.repo.List(context.Background(), userID)
	if err != nil {
		return err
	}
	for _, item := range items {
		if item.ProductID() == productID {
			if item.Quantity() != qty {
				return fmt.Errorf("server holds %d of %s, want %d", item.Quantity(), productID, qty)
			}
			return nil
		}
	}
	return fmt.Errorf("server holds no %s for %s", productID, userID)
}

func (c *cartTestContext) theCartHasLine(n int) error {
	dto, err := c.view()
	if err != nil {
		return err
	}
	if len(dto.Items) != n {
		return fmt.Errorf("cart has %d lines, want %d", len(dto.Items), n)
	}
	return nil
}

func (c *cartTestContext) theLineForInSizeHasQuantityAndLineTotal(productID, sizeID string, qty int, total int64) error {
	item, err := c.line(productID, sizeID)
	if err != nil {
		return err
	}
	if item.Quantity != qty {
		return fmt.Errorf("quantity is %d, want %d", item.Quantity, qty)
	}
	if !item.LineTotal.Equals(domain.MustMoney(total, 1)) {
		return fmt.Errorf("line total is %s, want %d", item.LineTotal.RatString(), total)
	}
	return nil
}

func (c *cartTestContext) theCartHasItemsTotalling(count int, total int64) error {
	dto, err := c.view()
	if err != nil {
		return err
	}
	if dto.ItemCount != count {
		return fmt.Errorf("item count is %d, want %d", dto.ItemCount, count)
	}
	if !dto.Total.Equals(domain.MustMoney(total, 1)) {
		return fmt.Errorf("total is %s, want %d", dto.Total.RatString(), total)
	}
	return nil
}

func (c *cartTestContext) theCartIsEmpty() error {
	dto, err := c.view()
	if err != nil {
		return err
	}
	if len(dto.Items) != 0 || dto.ItemCount != 0 || !dto.Total.IsZero() {
		return fmt.Errorf("cart not empty: %d lines, count %d, total %s", len(dto.Items), dto.ItemCount, dto.Total.RatString())
	}
	return nil
}

func (c *cartTestContext) theLineForHasState(productID, state string) error {
	item, err := c.line(productID, "")
	if err != nil {
		return err
	}
	if string(item.State) != state {
		return fmt.Errorf("state is %s, want %s", item.State, state)
	}
	return nil
}

func (c *cartTestContext) theLastOperationFailed() error {
	if c.err == nil {
		return errors.New("expected the operation to fail but it succeeded")
	}
	return nil
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	tc := &cartTestContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc.reset()
		return ctx, nil
	})
	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		tc.close()
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^the catalog has product "([^"]*)" priced (\d+) in sizes "([^"]*)"$`, tc.theCatalogHasProductPricedInSizes)
	ctx.Step(`^the catalog has product "([^"]*)" priced (\d+)$`, tc.theCatalogHasProductPriced)
	ctx.Step(`^an? (signed-in|anonymous|offline) cart session$`, tc.aCartSession)
	ctx.Step(`^the server already has (\d+) of "([^"]*)" in size "([^"]*)" for "([^"]*)"$`, tc.theServerAlreadyHasOfInSizeFor)

	// When steps
	ctx.Step(`^I add (\d+) of "([^"]*)" in size "([^"]*)"$`, tc.iAddOfInSize)
	ctx.Step(`^I add (\d+) of "([^"]*)"$`, tc.iAddOf)
	ctx.Step(`^I remove the line for "([^"]*)" in size "([^"]*)"$`, tc.iRemoveTheLineForInSize)
	ctx.Step(`^I set the quantity of "([^"]*)" to (\d+)$`, tc.iSetTheQuantityOfTo)
	ctx.Step(`^I clear the cart$`, tc.iClearTheCart)
	ctx.Step(`^I sign in as "([^"]*)" and migrate$`, tc.iSignInAsAndMigrate)
	ctx.Step(`^I sign in as "([^"]*)" and reload$`, tc.iSignInAsAndReload)
	ctx.Step(`^I restart the session$`, tc.iRestartTheSession)

	// Then steps
	ctx.Step(`^the cart has (\d+) lines?$`, tc.theCartHasLine)
	ctx.Step(`^the line for "([^"]*)" in size "([^"]*)" has quantity (\d+) and line total (\d+)$`, tc.theLineForInSizeHasQuantityAndLineTotal)
	ctx.Step(`^the cart has (\d+) items totalling (\d+)$`, tc.theCartHasItemsTotalling)
	ctx.Step(`^the cart is empty$`, tc.theCartIsEmpty)
	ctx.Step(`^the line for "([^"]*)" has state "([^"]*)"$`, tc.theLineForHasState)
	ctx.Step(`^the server holds (\d+) of "([^"]*)" for "([^"]*)"$`, tc.theServerHoldsOfFor)
	ctx.Step(`^the last operation failed$`, tc.theLastOperationFailed)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features/cart.feature"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
