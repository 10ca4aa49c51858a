package main

import (
	"encoding/json"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/xiebiao/library-inventory/internal/application/port"
	"github.com/xiebiao/library-inventory/internal/infrastructure/messaging"
	"github.com/xiebiao/library-inventory/pkg/mq"
)

func newEventsCmd(getApp func() *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "库存事件(RabbitMQ)",
	}
	cmd.AddCommand(newEventsTailCmd(getApp))
	return cmd
}

func newEventsTailCmd(getApp func() *app) *cobra.Command {
	var (
		queue       string
		routingKeys []string
	)

	cmd := &cobra.Command{
		Use:   "tail",
		Short: "实时打印库存事件,Ctrl+C退出",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := getApp()
			cfg := a.cfg.MQ

			consumer, err := mq.NewConsumer(cfg.URL, cfg.Exchange, cfg.ExchangeType, queue, routingKeys, a.log)
			if err != nil {
				return err
			}
			defer consumer.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			out := cmd.OutOrStdout()
			return consumer.Consume(ctx, func(routingKey string, body []byte) error {
				var event port.InventoryEvent
				if err := json.Unmarshal(body, &event); err != nil {
					// 格式错误的消息重新入队也无法处理，打印后确认
					fmt.Fprintf(out, "%s\t(无法解析) %s\n", routingKey, body)
					return nil
				}
				fmt.Fprintln(out, formatEvent(event))
				return nil
			})
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&queue, "queue", "", "队列名(默认创建临时队列)")
	flags.StringSliceVar(&routingKeys, "key", messaging.EventRoutingKeys, "订阅的routing key")
	return cmd
}

// formatEvent 单行输出：时间 类型 图书 [位置 数量]
func formatEvent(e port.InventoryEvent) string {
	line := fmt.Sprintf("%s\t%s\t%s", e.OccurredAt.Local().Format("2006-01-02 15:04:05"), e.Type, e.Barcode)
	if e.LocationBarcode != "" {
		line += "\t" + e.LocationBarcode
	}
	if e.Quantity != nil {
		line += fmt.Sprintf("\t%d", *e.Quantity)
	}
	return line
}
