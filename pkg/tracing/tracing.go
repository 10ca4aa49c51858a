// Package tracing 提供基于OpenTelemetry的追踪
//
// 一次库存操作的追踪示例：
//
//	Trace: POST /api/v1/locations/rack
//	├─ Span: location.RackBook（事务）
//	│  ├─ Span: ledger.Append
//	│  └─ Span: book.ApplyRack
//	└─ Span: mq.Publish book.racked
//
// 使用示例：
//
//	shutdown, err := tracing.InitTracer("library-api", "localhost:4317")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer shutdown(context.Background())
//
//	ctx, span := tracing.StartSpan(ctx, "library-inventory", "RackBook")
//	defer span.End()
//
// 教学要点：
// - Span命名用操作名（RackBook），条码等动态值放在属性里
// - 必须使用StartSpan返回的ctx调用下游，才能构建调用树
// - 未调用InitTracer时otel使用全局no-op Provider，StartSpan依然安全
package tracing

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"
)

// InitTracer 初始化全局Tracer Provider
//
// 参数：
//   - serviceName: 服务名称（在Jaeger UI中显示）
//   - endpoint: OTLP gRPC端点，host:port 形式（如 localhost:4317）
//
// 返回：
//   - shutdown: 关闭函数（程序退出时调用，刷新未发送的Span）
//
// 设计要点：
// 1. 使用OTLP协议，Collector可以是Jaeger、Tempo等任意实现
// 2. 采样策略：AlwaysSample，库存服务请求量小
// 3. otlptracegrpc.New不会阻塞等待连接，Collector不可用时只在导出时报错
func InitTracer(serviceName, endpoint string) (func(context.Context) error, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	exporter, err := otlptracegrpc.New(
		ctx,
		otlptracegrpc.WithEndpoint(endpoint),
		otlptracegrpc.WithInsecure(), // 禁用TLS（内网Collector）
	)
	if err != nil {
		return nil, fmt.Errorf("创建OTLP exporter失败: %w", err)
	}

	res, err := resource.New(
		ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("创建资源属性失败: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(
		propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{},
			propagation.Baggage{},
		),
	)

	shutdown := func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return tp.Shutdown(ctx)
	}

	return shutdown, nil
}

// StartSpan 创建一个新的Span（便捷函数）
//
// 如果ctx包含父Span，新Span自动成为子Span
func StartSpan(ctx context.Context, tracerName, spanName string) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, spanName)
}

// EndSpan 根据err设置Span状态并结束Span
//
// 用法：
//
//	ctx, span := tracing.StartSpan(ctx, tracerName, "LendBook")
//	defer func() { tracing.EndSpan(span, err) }()
func EndSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// ExtractTraceID 从Context提取TraceID（用于关联日志）
func ExtractTraceID(ctx context.Context) string {
	span := trace.SpanFromContext(ctx)
	if !span.SpanContext().IsValid() {
		return ""
	}
	return span.SpanContext().TraceID().String()
}

// ExtractSpanID 从Context提取SpanID
func ExtractSpanID(ctx context.Context) string {
	span := trace.SpanFromContext(ctx)
	if !span.SpanContext().IsValid() {
		return ""
	}
	return span.SpanContext().SpanID().String()
}
