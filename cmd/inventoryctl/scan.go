package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	appscan "github.com/xiebiao/library-inventory/internal/application/scan"
)

func newScanCmd(getApp func() *app) *cobra.Command {
	var (
		timeout  time.Duration
		retrieve bool
	)

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "从摄像头画面识别一个条码",
		Long:  "持续读取scanner.frame_path的最新画面，直到识别出条码或超时。Ctrl+C取消。",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := getApp()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			resp, err := a.scanUseCase().Execute(ctx, appscan.ScanRequest{Timeout: timeout})
			if err != nil {
				return err
			}
			if !retrieve {
				return a.printJSON(resp)
			}
			return retrieveScanned(ctx, a, resp.Barcode)
		},
	}

	flags := cmd.Flags()
	flags.DurationVar(&timeout, "timeout", 0, "超时时间(默认使用scanner.default_timeout)")
	flags.BoolVar(&retrieve, "retrieve", false, "识别后直接查询该图书")
	return cmd
}

// retrieveScanned 用扫到的条码查询图书
func retrieveScanned(ctx context.Context, a *app, barcode string) error {
	uc, err := a.useCases()
	if err != nil {
		return err
	}
	view, err := uc.retrieveBook.Execute(ctx, barcode)
	if err != nil {
		return err
	}
	return a.printJSON(view)
}
