package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/light-bringer/cartsync-service/internal/app/cart/domain"
	"github.com/light-bringer/cartsync-service/internal/app/cart/usecases/add_item"
	"github.com/light-bringer/cartsync-service/internal/app/cart/usecases/remove_item"
	"github.com/light-bringer/cartsync-service/internal/app/cart/usecases/update_quantity"
	"github.com/light-bringer/cartsync-service/internal/services"
)

// NewShowCommand creates the show command.
func NewShowCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCart(cmd, opts, nil)
		},
	}
}

// AddOptions holds flags for the add command.
type AddOptions struct {
	*RootOptions
	Quantity int
	SizeID   string
}

// NewAddCommand creates the add command.
func NewAddCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AddOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "add <product-id>",
		Short: "Add a product, merging into an existing line",
		Example: `  cartctl add p1 --qty 2
  cartctl add p3 --size 42`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCart(cmd, opts.RootOptions, func(ctx context.Context, c *services.CartClient) error {
				_, err := c.AddItem.Execute(ctx, &add_item.Request{
					ProductID: args[0],
					Quantity:  opts.Quantity,
					SizeID:    opts.SizeID,
				})
				return err
			})
		},
	}

	cmd.Flags().IntVar(&opts.Quantity, "qty", 1, "quantity to add")
	cmd.Flags().StringVar(&opts.SizeID, "size", "", "size option id")

	return cmd
}

// NewUpdateCommand creates the update command.
func NewUpdateCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "update <item-id> <quantity>",
		Short: "Set the quantity of a line",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := domain.ParseItemID(args[0])
			if err != nil {
				return err
			}
			qty, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid quantity %q", args[1])
			}
			return withCart(cmd, opts, func(ctx context.Context, c *services.CartClient) error {
				return c.UpdateQuantity.Execute(ctx, &update_quantity.Request{ItemID: id, Quantity: qty})
			})
		},
	}
}

// NewRemoveCommand creates the remove command.
func NewRemoveCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <item-id>",
		Short: "Remove a line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := domain.ParseItemID(args[0])
			if err != nil {
				return err
			}
			return withCart(cmd, opts, func(ctx context.Context, c *services.CartClient) error {
				return c.RemoveItem.Execute(ctx, &remove_item.Request{ItemID: id})
			})
		},
	}
}

// NewClearCommand creates the clear command.
func NewClearCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Empty the cart in every store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCart(cmd, opts, func(ctx context.Context, c *services.CartClient) error {
				return c.ClearCart.Execute(ctx)
			})
		},
	}
}

// NewMigrateCommand creates the migrate command.
func NewMigrateCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Push anonymous lines to the signed-in remote cart",
		Long: `Push every local line to the Remote Cart Service as the --user given.

Lines the remote stores become remote lines; the rest stay local. Run this right
after signing in: a later load adopts a non-empty remote cart and drops local lines.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.Config.UserID == "" || opts.Config.RemoteAddr == "" {
				return fmt.Errorf("migrate needs --user and --remote")
			}
			return withLocalCart(cmd, opts, func(ctx context.Context, c *services.CartClient) error {
				resp, err := c.MigrateCart.Execute(ctx)
				if resp != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "promoted %d, remaining %d\n", resp.Promoted, resp.Remaining)
				}
				return err
			})
		},
	}
}
