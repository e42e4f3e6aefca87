package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/light-bringer/cartsync-service/internal/app/cart/domain"
	"github.com/light-bringer/cartsync-service/internal/pkg/logging"
	"github.com/light-bringer/cartsync-service/internal/services"
)

// cartAction runs against a loaded cart.
type cartAction func(ctx context.Context, c *services.CartClient) error

// withCart opens and loads the cart, runs action, then prints the cart and closes it.
// Sync errors are reported as warnings: the command's effect is visible in the cart.
func withCart(cmd *cobra.Command, opts *RootOptions, action cartAction) error {
	return runCart(cmd, opts, false, action)
}

// withLocalCart is withCart with the load done anonymously, so the local lines are
// adopted even when the user's remote cart is not empty.
func withLocalCart(cmd *cobra.Command, opts *RootOptions, action cartAction) error {
	return runCart(cmd, opts, true, action)
}

func runCart(cmd *cobra.Command, opts *RootOptions, loadAnonymously bool, action cartAction) (err error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	logger, err := logging.New(opts.Config.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	client, err := services.NewCartClient(ctx, opts.Config, logger)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := client.Close(ctx); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("failed to save cart: %w", closeErr))
		}
	}()

	if loadAnonymously {
		client.SetUserID("")
	}
	_, loadErr := client.LoadCart.Execute(ctx)
	client.SetUserID(opts.Config.UserID)
	if err := tolerateSync(cmd, loadErr); err != nil {
		return err
	}

	if action != nil {
		if err := tolerateSync(cmd, action(ctx, client)); err != nil {
			return err
		}
	}

	dto, err := client.GetCart.Execute(ctx)
	if err != nil {
		return err
	}
	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	return out.Cart(dto)
}

// tolerateSync prints sync errors as warnings and passes any other error through.
func tolerateSync(cmd *cobra.Command, err error) error {
	if err == nil || !domain.IsSyncError(err) {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
	return nil
}
