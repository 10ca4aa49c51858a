package main

import (
	"github.com/spf13/cobra"

	applocation "github.com/xiebiao/library-inventory/internal/application/location"
)

func newLocationsCmd(getApp func() *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "locations",
		Short: "位置台账",
	}
	cmd.AddCommand(newLocationsHistoryCmd(getApp))
	return cmd
}

func newLocationsHistoryCmd(getApp func() *app) *cobra.Command {
	var req applocation.ListAssignmentsRequest

	cmd := &cobra.Command{
		Use:   "history",
		Short: "按图书或位置查询上架记录(最新的在前)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := getApp()
			uc, err := a.useCases()
			if err != nil {
				return err
			}
			items, err := uc.listAssignments.Execute(cmd.Context(), req)
			if err != nil {
				return err
			}
			return a.printJSON(items)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&req.BookBarcode, "book", "", "图书条码")
	flags.StringVar(&req.LocationBarcode, "location", "", "位置条码")
	return cmd
}
