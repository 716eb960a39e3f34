package main

import (
	"context"
	"fmt"

	"clothing-shop-api/internal/repository"
	"clothing-shop-api/internal/service"

	"github.com/spf13/cobra"
)

var pinCmd = &cobra.Command{
	Use:   "pin",
	Short: "Manage order payment PINs",
}

func init() {
	pinCmd.AddCommand(pinGenerateCmd)
	pinCmd.AddCommand(pinResetCmd)
	pinCmd.AddCommand(pinConfirmCmd)
}

// resolveOrder turns an order number into the payment service plus order ID.
func resolveOrder(orderNumber string) (service.PaymentService, uint, error) {
	db, err := openDB()
	if err != nil {
		return nil, 0, err
	}

	orders := repository.NewOrderRepository(db)
	order, err := orders.FindByNumber(context.Background(), orderNumber)
	if err != nil {
		return nil, 0, fmt.Errorf("find order %s: %w", orderNumber, err)
	}

	return service.NewPaymentService(orders), order.ID, nil
}

var pinGenerateCmd = &cobra.Command{
	Use:   "generate <order-number>",
	Short: "Generate a payment PIN for an order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		payments, orderID, err := resolveOrder(args[0])
		if err != nil {
			return err
		}

		pin, err := payments.GeneratePin(context.Background(), orderID, "shopctl")
		if err != nil {
			return err
		}

		fmt.Printf("PIN for %s: %s (valid 24h)\n", args[0], pin)
		return nil
	},
}

var pinResetCmd = &cobra.Command{
	Use:   "reset <order-number>",
	Short: "Clear the payment PIN and attempt counter",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		payments, orderID, err := resolveOrder(args[0])
		if err != nil {
			return err
		}

		if err := payments.ResetPin(context.Background(), orderID); err != nil {
			return err
		}

		fmt.Printf("PIN reset for %s\n", args[0])
		return nil
	},
}

var pinConfirmCmd = &cobra.Command{
	Use:   "confirm <order-number>",
	Short: "Force-confirm payment without a PIN",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		payments, orderID, err := resolveOrder(args[0])
		if err != nil {
			return err
		}

		_, message, err := payments.ConfirmPayment(context.Background(), orderID, "shopctl")
		if err != nil {
			return err
		}

		fmt.Println(message)
		return nil
	},
}
