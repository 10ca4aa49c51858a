package main

import (
	"github.com/spf13/cobra"

	applocation "github.com/xiebiao/library-inventory/internal/application/location"
)

func newRackCmd(getApp func() *app) *cobra.Command {
	var (
		locationBarcode string
		bookBarcode     string
		quantity        int
	)

	cmd := &cobra.Command{
		Use:   "rack",
		Short: "上架:记录台账,并覆盖图书的位置和数量",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := getApp()
			uc, err := a.useCases()
			if err != nil {
				return err
			}

			req := applocation.RackBookRequest{
				LocationBarcode: locationBarcode,
				BookBarcode:     bookBarcode,
			}
			// 未传--quantity时由用例返回缺少字段
			if cmd.Flags().Changed("quantity") {
				req.Quantity = &quantity
			}

			if err := uc.rackBook.Execute(cmd.Context(), req); err != nil {
				return err
			}
			a.printOK("已上架")
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&locationBarcode, "location", "", "位置条码")
	flags.StringVar(&bookBarcode, "book", "", "图书条码")
	flags.IntVar(&quantity, "quantity", 0, "上架数量(可以为0)")
	return cmd
}
